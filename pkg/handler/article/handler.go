/*
 * @Description: 文章接口层：点赞切换
 * @Author: 安知鱼
 * @Date: 2026-03-25 19:02:11
 * @LastEditTime: 2026-03-26 09:12:30
 * @LastEditors: 安知鱼
 */
package article

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/app/middleware"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/response"
	article_service "github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/article"
)

type Handler struct {
	articles *article_service.Service
}

func NewHandler(articles *article_service.Service) *Handler {
	return &Handler{articles: articles}
}

// ToggleLikeRequest 是文章点赞切换的请求体。
type ToggleLikeRequest struct {
	ArticleID uint `json:"article_id" binding:"required"`
}

// ToggleLike 切换当前访客对一篇文章的点赞，宿主返回的结果是权威的。
func (h *Handler) ToggleLike(c *gin.Context) {
	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.articles.ToggleLike(c.Request.Context(), req.ArticleID, middleware.GetVisitorID(c))
	if err != nil {
		if errors.Is(err, bridge.ErrNotReady) {
			response.Fail(c, http.StatusServiceUnavailable, "服务尚未就绪，请稍后再试")
			return
		}
		response.Fail(c, http.StatusBadGateway, "点赞失败，请稍后再试")
		return
	}

	response.Success(c, gin.H{
		"liked":      result.Liked,
		"like_count": result.LikeCount,
	}, "操作成功")
}
