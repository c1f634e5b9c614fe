/*
 * @Description: 评论接口的请求与响应结构
 * @Author: 安知鱼
 * @Date: 2026-02-14 14:20:11
 * @LastEditTime: 2026-03-25 14:08:52
 * @LastEditors: 安知鱼
 */
package dto

import "time"

// CreateRequest 是发表评论的请求体。
// 管理员登录态下 nickname/email 可以不填。
type CreateRequest struct {
	ArticleID uint   `json:"article_id" binding:"required"`
	Content   string `json:"content"`
	ParentID  *uint  `json:"parent_id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
}

// ToggleLikeRequest 是评论点赞切换的请求体。
type ToggleLikeRequest struct {
	ArticleID uint `json:"article_id" binding:"required"`
	CommentID uint `json:"comment_id" binding:"required"`
}

// ReplyTargetRequest 是切换回复表单目标的请求体，comment_id 为
// null 表示关闭当前表单。
type ReplyTargetRequest struct {
	ArticleID uint  `json:"article_id" binding:"required"`
	CommentID *uint `json:"comment_id"`
}

// DraftRequest 是更新草稿的请求体。
type DraftRequest struct {
	ArticleID uint   `json:"article_id" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Content   string `json:"content"`
}

// CommentResponse 是输出给页面的单条评论。
type CommentResponse struct {
	ID        uint               `json:"id"`
	ParentID  *uint              `json:"parent_id,omitempty"`
	Nickname  string             `json:"nickname"`
	AvatarURL string             `json:"avatar_url"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	LikeCount int                `json:"like_count"`
	IsLiked   bool               `json:"is_liked"`
	IsAuthor  bool               `json:"is_author"`
	Replies   []*CommentResponse `json:"replies,omitempty"`
}

// ListResponse 是评论列表响应。
type ListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int                `json:"total"`
}
