/*
 * @Description: 主题侧共享常量
 * @Author: 安知鱼
 * @Date: 2026-02-08 11:25:03
 * @LastEditTime: 2026-03-20 10:12:55
 * @LastEditors: 安知鱼
 */
package constant

const (
	// RoleAdmin 宿主端管理员角色标识，viewer check 返回的 role 与其相等即视为管理员
	RoleAdmin = "admin"

	// DefaultSiteName 桥接不可用时的降级站点名
	DefaultSiteName = "NOTEVA"

	// DefaultPageSize 首页文章列表每页条数
	DefaultPageSize = 10

	// DefaultAvatarURL 评论者没有头像时的占位图
	DefaultAvatarURL = "https://www.gravatar.com/avatar/?d=retro&s=40"

	// TargetTypeComment 点赞接口的评论目标类型
	TargetTypeComment = "comment"
	// TargetTypeArticle 点赞接口的文章目标类型
	TargetTypeArticle = "article"

	// HookCommentAfterCreate 评论创建后触发的宿主钩子名
	HookCommentAfterCreate = "comment_after_create"
	// EventNameCommentCreate 评论创建后广播的宿主事件名
	EventNameCommentCreate = "comment:create"

	// VisitorCookieName 匿名访客标识 Cookie，点赞去重依赖它
	VisitorCookieName = "noteva-visitor"
)
