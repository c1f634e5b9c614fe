/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-09 10:40:21
 * @LastEditTime: 2026-03-22 15:10:47
 * @LastEditors: 安知鱼
 */
package normalize

import (
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
)

// CommentFromRecord 把宿主返回的一条原始评论记录收敛为规范化领域模型。
// 宿主可能直接返回嵌套好的 replies，这里递归收敛；树的重建交给
// service/comment 的 BuildTree。
func CommentFromRecord(r Record) *model.Comment {
	if r == nil {
		return nil
	}
	c := &model.Comment{
		ID:        r.Uint("id"),
		ArticleID: r.Uint("article_id"),
		ParentID:  r.UintPtr("parent_id"),
		UserID:    r.UintPtr("user_id"),
		Nickname:  r.Str("nickname"),
		Email:     r.Str("email"),
		AvatarURL: r.Str("avatar_url"),
		Content:   r.Str("content"),
		Status:    r.Str("status"),
		CreatedAt: r.Time("created_at"),
		LikeCount: r.Int("like_count"),
		IsLiked:   r.Bool("is_liked", "liked"),
		IsAuthor:  r.Bool("is_author"),
	}
	if c.AvatarURL == "" {
		c.AvatarURL = constant.DefaultAvatarURL
	}
	for _, child := range r.List("replies") {
		if reply := CommentFromRecord(child); reply != nil {
			c.Replies = append(c.Replies, reply)
		}
	}
	return c
}

// CommentsFromRecords 批量收敛评论记录，nil 记录会被跳过。
func CommentsFromRecords(records []Record) []*model.Comment {
	out := make([]*model.Comment, 0, len(records))
	for _, r := range records {
		if c := CommentFromRecord(r); c != nil {
			out = append(out, c)
		}
	}
	return out
}
