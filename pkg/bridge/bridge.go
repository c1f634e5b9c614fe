/*
 * @Description: 宿主桥接客户端的抽象契约
 * @Author: 安知鱼
 * @Date: 2026-02-09 14:06:12
 * @LastEditTime: 2026-03-23 11:20:05
 * @LastEditors: 安知鱼
 */
package bridge

import (
	"context"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
)

// Ref 是宿主注入的桥接客户端引用。
// 主题本身不实现这些能力，只通过这一组接口消费宿主：数据接口返回
// 未规范化的 Record（命名差异由 normalize 包吸收），通知类操作
// fire-and-forget，不返回错误。
type Ref interface {
	Viewer() ViewerAPI
	Site() SiteAPI
	Articles() ArticleAPI
	Comments() CommentAPI
	Reactions() ReactionAPI
	Notify() NotifyAPI
	UI() UIAPI
}

// ViewerAPI 是访客身份接口。
type ViewerAPI interface {
	// Check 返回指定访客的原始用户记录；未登录或校验失败时返回错误。
	// visitorID 是主题派发的访客标识，宿主按它解析访客各自的登录态，
	// 身份必须按访客隔离，绝不能把主题进程自己的凭证当成访客身份。
	Check(ctx context.Context, visitorID string) (normalize.Record, error)
}

// SiteAPI 是站点信息接口。
type SiteAPI interface {
	GetInfo(ctx context.Context) (normalize.Record, error)
	GetNav(ctx context.Context) ([]normalize.Record, error)
	// GetPage 按 slug 获取自定义页面。
	GetPage(ctx context.Context, slug string) (normalize.Record, error)
}

// ArticleListResult 是文章列表接口的原始返回。
type ArticleListResult struct {
	Articles []normalize.Record
	Total    int
}

// ListArticlesOptions 是文章列表查询参数。
// Category / Tag 按 slug 过滤，留空表示不过滤。
type ListArticlesOptions struct {
	Page     int
	PageSize int
	Category string
	Tag      string
}

// ArticleAPI 是文章数据接口。
type ArticleAPI interface {
	List(ctx context.Context, opts ListArticlesOptions) (*ArticleListResult, error)
	Get(ctx context.Context, slug string) (normalize.Record, error)
	Categories(ctx context.Context) ([]normalize.Record, error)
	Tags(ctx context.Context) ([]normalize.Record, error)
	// RecordView 上报一次浏览，失败无所谓。
	RecordView(ctx context.Context, articleID uint) error
}

// CreateCommentInput 是创建评论的入参。
// 管理员发表时 Nickname/Email 留空（宿主用其注册显示名）。
type CreateCommentInput struct {
	ArticleID uint
	Content   string
	ParentID  *uint
	Nickname  string
	Email     string
}

// CommentAPI 是评论数据接口。
type CommentAPI interface {
	List(ctx context.Context, articleID uint) ([]normalize.Record, error)
	// Create 创建评论并返回宿主落库后的原始记录。
	// 主题不做乐观插入，返回值只用于日志，权威数据靠重新拉取。
	Create(ctx context.Context, input CreateCommentInput) (normalize.Record, error)
}

// ToggleInput 是点赞切换的入参。
type ToggleInput struct {
	TargetType string // "comment" 或 "article"
	TargetID   uint
	VisitorID  string // 匿名访客去重标识
}

// ToggleResult 是点赞切换后宿主给出的权威结果。
type ToggleResult struct {
	Liked     bool
	LikeCount int
}

// ReactionAPI 是点赞接口。
type ReactionAPI interface {
	Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error)
	Check(ctx context.Context, targetType string, targetID uint, visitorID string) (bool, error)
}

// NotifyAPI 是宿主侧的通知接口，均为 fire-and-forget。
type NotifyAPI interface {
	// Hook 触发宿主的插件钩子，如 comment_after_create。
	Hook(name string, payload map[string]any)
	// Event 在宿主事件总线上广播，如 comment:create。
	Event(name string, payload map[string]any)
}

// UIAPI 是宿主侧的界面提示接口。
type UIAPI interface {
	// Toast 展示一条瞬时提示，kind 为 "success" 或 "error"。
	Toast(message, kind string)
}
