/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-08 14:26:50
 * @LastEditTime: 2026-02-26 22:04:31
 * @LastEditors: 安知鱼
 */
// pkg/domain/model/site.go
package model

// SiteInfo 是宿主站点的基础信息，桥接不可用时使用零值降级展示。
type SiteInfo struct {
	Name               string
	Subtitle           string
	Description        string
	Logo               string
	Footer             string
	PermalinkStructure string
}

// NavItem 是导航菜单项，内建项与宿主自定义项统一成这个形状。
type NavItem struct {
	ID         uint
	ParentID   *uint
	Title      string
	URL        string
	NavType    string
	OpenNewTab bool
	Children   []*NavItem
}

// Page 是宿主维护的自定义页面（如关于页）。
type Page struct {
	ID          uint
	Slug        string
	Title       string
	Content     string
	ContentHTML string
}
