/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-09 11:02:58
 * @LastEditTime: 2026-03-22 15:14:30
 * @LastEditors: 安知鱼
 */
package normalize

import (
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
)

// ArticleFromRecord 把宿主返回的一条原始文章记录收敛为规范化领域模型。
// 发布时间按 published_at 优先、created_at 兜底，与宿主列表页的展示语义一致。
func ArticleFromRecord(r Record) *model.Article {
	if r == nil {
		return nil
	}
	a := &model.Article{
		ID:           r.Uint("id"),
		Slug:         r.Str("slug"),
		Title:        r.Str("title"),
		Content:      r.Str("content"),
		ContentHTML:  r.Str("content_html", "html"),
		PublishedAt:  r.Time("published_at", "created_at"),
		ViewCount:    r.Int("view_count"),
		LikeCount:    r.Int("like_count"),
		CommentCount: r.Int("comment_count"),
		IsPinned:     r.Bool("is_pinned"),
		Thumbnail:    r.Str("thumbnail"),
	}
	if cat := r.Sub("category"); cat != nil {
		a.Category = taxonomyFromRecord(cat)
	}
	for _, tag := range r.List("tags") {
		if t := taxonomyFromRecord(tag); t != nil {
			a.Tags = append(a.Tags, *t)
		}
	}
	return a
}

// ArticlesFromRecords 批量收敛文章记录。
func ArticlesFromRecords(records []Record) []*model.Article {
	out := make([]*model.Article, 0, len(records))
	for _, r := range records {
		if a := ArticleFromRecord(r); a != nil {
			out = append(out, a)
		}
	}
	return out
}

func taxonomyFromRecord(r Record) *model.Taxonomy {
	if r == nil {
		return nil
	}
	return &model.Taxonomy{
		ID:    r.Uint("id"),
		Name:  r.Str("name"),
		Slug:  r.Str("slug"),
		Count: r.Int("article_count", "count"),
	}
}

// SiteInfoFromRecord 收敛宿主的站点信息记录。
func SiteInfoFromRecord(r Record) model.SiteInfo {
	if r == nil {
		return model.SiteInfo{}
	}
	return model.SiteInfo{
		Name:               r.Str("name", "site_name"),
		Subtitle:           r.Str("subtitle", "site_subtitle"),
		Description:        r.Str("description", "site_description"),
		Logo:               r.Str("logo"),
		Footer:             r.Str("footer"),
		PermalinkStructure: r.Str("permalink_structure"),
	}
}

// NavItemFromRecord 收敛宿主自定义导航项，title 缺失时回退 name。
// nav_type 为 builtin 的项是内建菜单占位标记，没带 url 的直接丢弃，
// 不能渲染成空链接。
func NavItemFromRecord(r Record) *model.NavItem {
	if r == nil {
		return nil
	}
	item := &model.NavItem{
		ID:         r.Uint("id"),
		ParentID:   r.UintPtr("parent_id"),
		Title:      r.Str("title", "name"),
		URL:        r.Str("url", "target"),
		NavType:    r.Str("nav_type"),
		OpenNewTab: r.Bool("open_new_tab"),
	}
	if item.NavType == "builtin" && item.URL == "" {
		return nil
	}
	return item
}

// PageFromRecord 收敛宿主自定义页面记录。
func PageFromRecord(r Record) *model.Page {
	if r == nil {
		return nil
	}
	return &model.Page{
		ID:          r.Uint("id"),
		Slug:        r.Str("slug"),
		Title:       r.Str("title"),
		Content:     r.Str("content"),
		ContentHTML: r.Str("content_html", "html"),
	}
}
