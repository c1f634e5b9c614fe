/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-08 14:12:09
 * @LastEditTime: 2026-03-21 16:33:48
 * @LastEditors: 安知鱼
 */
// pkg/domain/model/comment.go
package model

import "time"

// Comment 是规范化后的评论领域模型。
// 宿主桥接端返回的原始记录（snake_case 或 camelCase）统一经过
// normalize 包收敛成这一个形状，主题内部只消费它。
type Comment struct {
	ID        uint
	ArticleID uint

	// --- 关系 ---
	ParentID *uint // nil 表示顶级评论
	UserID   *uint // 注册用户评论时存在

	// --- 评论者信息 ---
	Nickname  string
	Email     string
	AvatarURL string

	// --- 内容与状态 ---
	Content   string
	Status    string
	CreatedAt time.Time

	// --- 点赞 ---
	LikeCount int
	IsLiked   bool // 当前访客是否已点赞

	// IsAuthor 标记该评论是否出自文章作者（宿主端判定）
	IsAuthor bool

	// Replies 仅在树构建之后填充，从不回传宿主
	Replies []*Comment
}

// IsTopLevel 检查是否为根评论。
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}
