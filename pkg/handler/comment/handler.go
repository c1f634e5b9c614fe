/*
 * @Description: 评论组件的接口层
 * @Author: 安知鱼
 * @Date: 2026-02-14 14:35:06
 * @LastEditTime: 2026-03-25 14:40:19
 * @LastEditors: 安知鱼
 */
package comment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/app/middleware"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/comment/dto"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/response"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/comment"
)

type Handler struct {
	registry *comment.Registry
}

func NewHandler(registry *comment.Registry) *Handler {
	return &Handler{registry: registry}
}

// List 获取一篇文章的评论树。
// 桥接未就绪时返回上一次的结果（可能为空），不报错。
func (h *Handler) List(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("articleID"), 10, 32)
	if err != nil || articleID == 0 {
		response.Fail(c, http.StatusBadRequest, "文章ID无效")
		return
	}

	ctrl := h.registry.GetOrCreate(uint(articleID), middleware.GetVisitorID(c))
	ctrl.Load(c.Request.Context())

	tree := ctrl.Comments()
	response.Success(c, dto.ListResponse{
		Comments: toResponses(tree),
		Total:    comment.CountNodes(tree),
	}, "获取成功")
}

// Create 发表一条评论或回复。
// 本地校验失败返回 400；桥接未就绪返回 503（草稿保留）；宿主拒绝时
// 透传宿主的错误文案。
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	ctrl := h.registry.GetOrCreate(req.ArticleID, middleware.GetVisitorID(c))
	ctrl.UpdateDraft(req.ParentID, comment.Draft{
		Nickname: req.Nickname,
		Email:    req.Email,
		Content:  req.Content,
	})

	if err := ctrl.Submit(c.Request.Context(), req.Content, req.ParentID); err != nil {
		h.failSubmit(c, err)
		return
	}

	tree := ctrl.Comments()
	response.Success(c, dto.ListResponse{
		Comments: toResponses(tree),
		Total:    comment.CountNodes(tree),
	}, "评论发表成功")
}

// ToggleLike 切换一条评论的点赞状态。
func (h *Handler) ToggleLike(c *gin.Context) {
	var req dto.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	ctrl := h.registry.GetOrCreate(req.ArticleID, middleware.GetVisitorID(c))
	if err := ctrl.ToggleLike(c.Request.Context(), req.CommentID); err != nil {
		if errors.Is(err, bridge.ErrNotReady) {
			response.Fail(c, http.StatusServiceUnavailable, "评论服务尚未就绪，请稍后再试")
			return
		}
		response.Fail(c, http.StatusBadGateway, "点赞失败，请稍后再试")
		return
	}

	tree := ctrl.Comments()
	response.Success(c, dto.ListResponse{
		Comments: toResponses(tree),
		Total:    comment.CountNodes(tree),
	}, "操作成功")
}

// SetReplyTarget 切换回复表单的目标评论。
func (h *Handler) SetReplyTarget(c *gin.Context) {
	var req dto.ReplyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	ctrl := h.registry.GetOrCreate(req.ArticleID, middleware.GetVisitorID(c))
	ctrl.SetReplyTarget(req.CommentID)

	response.Success(c, gin.H{"reply_target": ctrl.ReplyTarget()}, "操作成功")
}

// SaveDraft 暂存访客正在输入的草稿。
func (h *Handler) SaveDraft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	ctrl := h.registry.GetOrCreate(req.ArticleID, middleware.GetVisitorID(c))
	ctrl.UpdateDraft(req.ParentID, comment.Draft{
		Nickname: req.Nickname,
		Email:    req.Email,
		Content:  req.Content,
	})

	response.Success(c, nil, "草稿已保存")
}

// failSubmit 把提交错误翻译成接口响应。
func (h *Handler) failSubmit(c *gin.Context, err error) {
	var validation *comment.ValidationError
	if errors.As(err, &validation) {
		response.Fail(c, http.StatusBadRequest, validation.Message)
		return
	}
	if errors.Is(err, bridge.ErrNotReady) {
		response.Fail(c, http.StatusServiceUnavailable, "评论服务尚未就绪，请稍后再试")
		return
	}
	var submission *comment.SubmissionError
	if errors.As(err, &submission) {
		response.Fail(c, http.StatusBadGateway, submission.Message)
		return
	}
	response.Fail(c, http.StatusInternalServerError, "评论发表失败")
}

// toResponses 把评论树转成输出结构。逻辑深度不限的回复子树在这里
// 展开成一层，与页面"顶级 + 回复"两个视觉层级对应。
func toResponses(tree []*model.Comment) []*dto.CommentResponse {
	out := make([]*dto.CommentResponse, 0, len(tree))
	for _, top := range tree {
		item := toResponse(top)
		for _, reply := range comment.FlattenReplies(top) {
			item.Replies = append(item.Replies, toResponse(reply))
		}
		out = append(out, item)
	}
	return out
}

func toResponse(c *model.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Nickname:  c.Nickname,
		AvatarURL: c.AvatarURL,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		LikeCount: c.LikeCount,
		IsLiked:   c.IsLiked,
		IsAuthor:  c.IsAuthor,
		Replies:   nil,
	}
}
