/*
 * @Description: Noteva 宿主桥接客户端的 HTTP 实现
 * @Author: 安知鱼
 * @Date: 2026-02-13 09:18:02
 * @LastEditTime: 2026-03-25 10:12:47
 * @LastEditors: 安知鱼
 */
package noteva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
)

// Client 通过宿主的 REST 接口实现 bridge.Ref。
// 宿主响应统一是 {code, message, data} 信封：code 非 200 转成
// *bridge.RemoteError 抛给上层，data 原样交给 normalize 层收敛。
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient 创建宿主桥接客户端。baseURL 形如 http://127.0.0.1:8091。
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Viewer() bridge.ViewerAPI      { return viewerAPI{c} }
func (c *Client) Site() bridge.SiteAPI          { return siteAPI{c} }
func (c *Client) Articles() bridge.ArticleAPI   { return articleAPI{c} }
func (c *Client) Comments() bridge.CommentAPI   { return commentAPI{c} }
func (c *Client) Reactions() bridge.ReactionAPI { return reactionAPI{c} }
func (c *Client) Notify() bridge.NotifyAPI      { return notifyAPI{c} }
func (c *Client) UI() bridge.UIAPI              { return uiAPI{c} }

// Ping 探测宿主是否可达，连接器握手用。
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/site/info", nil, nil)
	return err
}

// envelope 是宿主的统一响应信封。
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do 发起一次宿主请求并解开信封，返回 data 段的原始 JSON。
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("序列化请求体失败: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("构造宿主请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求宿主 %s 失败: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("读取宿主响应失败: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("解析宿主响应失败 (HTTP %d): %w", resp.StatusCode, err)
	}
	if env.Code != http.StatusOK {
		return nil, &bridge.RemoteError{Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}

// dataRecord 把 data 段解成单条记录。
func (c *Client) dataRecord(ctx context.Context, method, path string, query url.Values, body any) (normalize.Record, error) {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	return normalize.Decode(raw), nil
}

// dataRecords 把 data 段解成记录切片。
func (c *Client) dataRecords(ctx context.Context, method, path string, query url.Values) ([]normalize.Record, error) {
	raw, err := c.do(ctx, method, path, query, nil)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("解析宿主列表响应失败: %w", err)
	}
	out := make([]normalize.Record, 0, len(items))
	for _, item := range items {
		out = append(out, normalize.Decode(item))
	}
	return out, nil
}

type viewerAPI struct{ c *Client }

// Check 按访客标识向宿主查询登录态。visitor_id 必须带上：主题进程
// 自己的 Token 只是接口凭证，访客是谁由宿主按 visitor_id 解析。
func (a viewerAPI) Check(ctx context.Context, visitorID string) (normalize.Record, error) {
	query := url.Values{"visitor_id": {visitorID}}
	return a.c.dataRecord(ctx, http.MethodGet, "/api/viewer/check", query, nil)
}

type siteAPI struct{ c *Client }

func (a siteAPI) GetInfo(ctx context.Context) (normalize.Record, error) {
	return a.c.dataRecord(ctx, http.MethodGet, "/api/site/info", nil, nil)
}

func (a siteAPI) GetNav(ctx context.Context) ([]normalize.Record, error) {
	return a.c.dataRecords(ctx, http.MethodGet, "/api/site/nav", nil)
}

func (a siteAPI) GetPage(ctx context.Context, slug string) (normalize.Record, error) {
	return a.c.dataRecord(ctx, http.MethodGet, "/api/pages/"+url.PathEscape(slug), nil, nil)
}

type articleAPI struct{ c *Client }

func (a articleAPI) List(ctx context.Context, opts bridge.ListArticlesOptions) (*bridge.ArticleListResult, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Tag != "" {
		query.Set("tag", opts.Tag)
	}

	raw, err := a.c.do(ctx, http.MethodGet, "/api/articles", query, nil)
	if err != nil {
		return nil, err
	}

	var page struct {
		List  []json.RawMessage `json:"list"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("解析文章列表响应失败: %w", err)
	}

	result := &bridge.ArticleListResult{Total: page.Total}
	for _, item := range page.List {
		result.Articles = append(result.Articles, normalize.Decode(item))
	}
	return result, nil
}

func (a articleAPI) Get(ctx context.Context, slug string) (normalize.Record, error) {
	return a.c.dataRecord(ctx, http.MethodGet, "/api/articles/"+url.PathEscape(slug), nil, nil)
}

func (a articleAPI) Categories(ctx context.Context) ([]normalize.Record, error) {
	return a.c.dataRecords(ctx, http.MethodGet, "/api/categories", nil)
}

func (a articleAPI) Tags(ctx context.Context) ([]normalize.Record, error) {
	return a.c.dataRecords(ctx, http.MethodGet, "/api/tags", nil)
}

func (a articleAPI) RecordView(ctx context.Context, articleID uint) error {
	_, err := a.c.do(ctx, http.MethodPost, fmt.Sprintf("/api/articles/%d/view", articleID), nil, nil)
	return err
}

type commentAPI struct{ c *Client }

func (a commentAPI) List(ctx context.Context, articleID uint) ([]normalize.Record, error) {
	query := url.Values{"article_id": {strconv.FormatUint(uint64(articleID), 10)}}
	return a.c.dataRecords(ctx, http.MethodGet, "/api/comments", query)
}

func (a commentAPI) Create(ctx context.Context, input bridge.CreateCommentInput) (normalize.Record, error) {
	body := map[string]any{
		"article_id": input.ArticleID,
		"content":    input.Content,
	}
	if input.ParentID != nil {
		body["parent_id"] = *input.ParentID
	}
	if input.Nickname != "" {
		body["nickname"] = input.Nickname
	}
	if input.Email != "" {
		body["email"] = input.Email
	}
	return a.c.dataRecord(ctx, http.MethodPost, "/api/comments", nil, body)
}

type reactionAPI struct{ c *Client }

func (a reactionAPI) Toggle(ctx context.Context, input bridge.ToggleInput) (*bridge.ToggleResult, error) {
	rec, err := a.c.dataRecord(ctx, http.MethodPost, "/api/reactions/toggle", nil, map[string]any{
		"target_type": input.TargetType,
		"target_id":   input.TargetID,
		"visitor_id":  input.VisitorID,
	})
	if err != nil {
		return nil, err
	}
	return &bridge.ToggleResult{
		Liked:     rec.Bool("liked", "is_liked"),
		LikeCount: rec.Int("like_count"),
	}, nil
}

func (a reactionAPI) Check(ctx context.Context, targetType string, targetID uint, visitorID string) (bool, error) {
	query := url.Values{
		"target_type": {targetType},
		"target_id":   {strconv.FormatUint(uint64(targetID), 10)},
		"visitor_id":  {visitorID},
	}
	rec, err := a.c.dataRecord(ctx, http.MethodGet, "/api/reactions/check", query, nil)
	if err != nil {
		return false, err
	}
	return rec.Bool("liked", "is_liked"), nil
}

type notifyAPI struct{ c *Client }

// Hook 触发宿主插件钩子。fire-and-forget：后台发送，失败只记日志。
func (a notifyAPI) Hook(name string, payload map[string]any) {
	go a.post("/api/hooks/"+url.PathEscape(name), payload)
}

// Event 在宿主事件总线上广播。
func (a notifyAPI) Event(name string, payload map[string]any) {
	go a.post("/api/events/"+url.PathEscape(name), payload)
}

func (a notifyAPI) post(path string, payload map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := a.c.do(ctx, http.MethodPost, path, nil, payload); err != nil {
		log.Printf("[Bridge] 警告: 宿主通知 %s 发送失败: %v", path, err)
	}
}

type uiAPI struct{ c *Client }

// Toast 让宿主壳层展示一条瞬时提示。
func (a uiAPI) Toast(message, kind string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := a.c.do(ctx, http.MethodPost, "/api/ui/toast", nil, map[string]any{
			"message": message,
			"kind":    kind,
		})
		if err != nil {
			log.Printf("[Bridge] 警告: 发送 toast 失败: %v", err)
		}
	}()
}
