/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-08 14:20:37
 * @LastEditTime: 2026-03-21 16:35:02
 * @LastEditors: 安知鱼
 */
// pkg/domain/model/article.go
package model

import "time"

// Article 是规范化后的文章领域模型。
type Article struct {
	ID   uint
	Slug string

	Title       string
	Content     string // Markdown 原文
	ContentHTML string // 宿主渲染好的 HTML（可能为空）

	PublishedAt time.Time

	ViewCount    int
	LikeCount    int
	CommentCount int

	IsPinned  bool
	Thumbnail string

	Category *Taxonomy
	Tags     []Taxonomy
}

// Taxonomy 表示文章的分类或标签。
type Taxonomy struct {
	ID    uint
	Name  string
	Slug  string
	Count int // 聚合页使用的文章数，列表接口可能不返回
}

// ArticleList 是分页的文章列表结果。
type ArticleList struct {
	Articles []*Article
	Total    int
}

// ArchiveGroup 是归档页按年份聚合后的一组文章，年内再按月份分组。
// 年份、月份都按新到旧排列，组内文章保持宿主返回的顺序。
type ArchiveGroup struct {
	Year   int
	Months []ArchiveMonth
}

// ArchiveMonth 是归档页一个月份下的文章。
type ArchiveMonth struct {
	Month    int
	Articles []*Article
}
