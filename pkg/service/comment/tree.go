/*
 * @Description: 评论回复树的构建
 * @Author: 安知鱼
 * @Date: 2026-02-11 10:22:14
 * @LastEditTime: 2026-03-23 14:30:09
 * @LastEditors: 安知鱼
 */
package comment

import (
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
)

// BuildTree 把一篇文章的评论列表组装成有序的回复树。
//
// 宿主可能返回两种形状：已经嵌套好 replies 的列表，或带 parent_id 的
// 平铺列表。前者直接信任原样返回；后者按 parent_id 分组：父评论为空
// 的按原始顺序做顶级，其余按原始顺序挂到各自父评论下。声明的父评论
// 不在集合里（被删除或不在本页）的评论提升为顶级展示，绝不丢弃。
//
// 顺序是稳定的：这里从不按时间或热度重排，排序是宿主的职责。
func BuildTree(comments []*model.Comment) []*model.Comment {
	if len(comments) == 0 {
		return []*model.Comment{}
	}

	// 任何一条已带 replies 即认为宿主返回的是嵌套形状
	for _, c := range comments {
		if len(c.Replies) > 0 {
			return comments
		}
	}

	// 先建全量索引再挂载，"父评论缺席"的判断以整个集合为准
	index := make(map[uint]*model.Comment, len(comments))
	for _, c := range comments {
		index[c.ID] = c
	}

	roots := make([]*model.Comment, 0, len(comments))
	for _, c := range comments {
		if c.IsTopLevel() {
			roots = append(roots, c)
			continue
		}
		parent, ok := index[*c.ParentID]
		if !ok || parent == c {
			// 孤儿评论提升为顶级
			roots = append(roots, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}
	return roots
}

// FlattenReplies 把一条顶级评论下的整棵回复子树按先序展开成一层。
// 树在逻辑上深度不限，但渲染只有两个视觉层级：顶级和"回复"，
// 回复的回复与直接回复缩进一致。
func FlattenReplies(c *model.Comment) []*model.Comment {
	var out []*model.Comment
	var walk func(replies []*model.Comment)
	walk = func(replies []*model.Comment) {
		for _, r := range replies {
			out = append(out, r)
			walk(r.Replies)
		}
	}
	walk(c.Replies)
	return out
}

// CountNodes 统计一片回复森林的总节点数（含所有层级的回复）。
func CountNodes(forest []*model.Comment) int {
	total := 0
	for _, c := range forest {
		total += 1 + len(FlattenReplies(c))
	}
	return total
}
