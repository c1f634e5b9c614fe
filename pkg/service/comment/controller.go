/*
 * @Description: 评论组件的状态编排：加载、提交、点赞、回复目标
 * @Author: 安知鱼
 * @Date: 2026-02-11 14:09:45
 * @LastEditTime: 2026-03-24 19:21:36
 * @LastEditors: 安知鱼
 */
package comment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
)

// LoadState 是评论列表的加载状态。
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadLoaded
)

// SubmitState 是草稿/提交流程的状态。
type SubmitState int

const (
	DraftEmpty SubmitState = iota
	DraftFilled
	Submitting
	SubmitSucceeded
	SubmitFailed
)

// Draft 是一份评论草稿。临时数据，提交成功或取消后重置，从不持久化。
type Draft struct {
	Nickname string
	Email    string
	Content  string
}

// IsEmpty 检查草稿内容是否为空。
func (d Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Content) == ""
}

// Controller 编排一篇文章评论组件的全部状态变化。
//
// 一致性策略是"权威优先"：提交和点赞成功后都整体重新拉取列表，
// 不做乐观的本地插入或计数增减，避免本地猜测与宿主权威结果漂移。
// 同一实例上的操作不做显式串行化，重叠的刷新是幂等的，最后落地的
// 拉取结果胜出，最坏只是一次瞬时的旧渲染。
type Controller struct {
	articleID uint
	visitorID string

	provider *bridge.Provider
	session  *Session
	bus      *event.EventBus
	tr       *i18n.Translator

	mu          sync.Mutex
	loadState   LoadState
	submitState SubmitState
	comments    []*model.Comment
	replyTarget *uint
	lastError   string

	// 顶级草稿与各回复目标的草稿互相独立，切换回复目标不会互相覆盖正文
	topDraft    Draft
	replyDrafts map[uint]*Draft
}

// NewController 创建一篇文章的评论状态控制器。
func NewController(articleID uint, visitorID string, provider *bridge.Provider, session *Session, bus *event.EventBus, tr *i18n.Translator) *Controller {
	return &Controller{
		articleID:   articleID,
		visitorID:   visitorID,
		provider:    provider,
		session:     session,
		bus:         bus,
		tr:          tr,
		replyDrafts: make(map[uint]*Draft),
	}
}

// ArticleID 返回控制器绑定的文章。
func (c *Controller) ArticleID() uint {
	return c.articleID
}

// Load 拉取评论列表、规范化并重建回复树。
// 列表加载失败是非致命的：吞掉错误并保留上一次的结果（从未成功过
// 则保持为空），界面最多少展示一些内容，绝不因此报错阻塞页面。
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.loadState = LoadLoading
	c.mu.Unlock()

	// 与加载结果无关，最终都会离开 Loading
	defer func() {
		c.mu.Lock()
		c.loadState = LoadLoaded
		c.mu.Unlock()
	}()

	ref, err := c.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		log.Printf("[CommentController] 桥接未就绪，文章 %d 的评论保持上次结果", c.articleID)
		return
	}

	records, err := ref.Comments().List(ctx, c.articleID)
	if err != nil {
		log.Printf("[CommentController] 警告: 拉取文章 %d 评论失败: %v", c.articleID, err)
		return
	}

	tree := BuildTree(normalize.CommentsFromRecords(records))
	c.mu.Lock()
	c.comments = tree
	c.mu.Unlock()
}

// Submit 提交一条评论。parentID 为 nil 时是顶级评论，否则是回复。
//
// 本地校验先行：内容为空/全空白返回 ErrContentRequired，非管理员
// 没填昵称返回 ErrNicknameRequired，两者都不会触达桥接。校验通过后
// 调用宿主创建接口（管理员发表时不带昵称/邮箱）。成功：清空对应
// 草稿、关闭回复表单、整体重载一次列表，并向宿主发出钩子与事件两路
// 通知。失败：保留草稿，展示宿主给出的错误文案（没有则用通用文案）。
func (c *Controller) Submit(ctx context.Context, content string, parentID *uint) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}

	identity := c.session.ResolveIdentity(ctx)

	c.mu.Lock()
	draft := c.draftSlotLocked(parentID)
	draft.Content = content
	c.submitState = DraftFilled
	nickname := strings.TrimSpace(draft.Nickname)
	email := draft.Email
	c.mu.Unlock()

	if !identity.IsAdmin && nickname == "" {
		return ErrNicknameRequired
	}

	// 桥接出现之前提交是空操作（降级策略），草稿原样保留
	ref, ok := c.provider.Get()
	if !ok {
		return bridge.ErrNotReady
	}

	c.setSubmitState(Submitting)

	input := bridge.CreateCommentInput{
		ArticleID: c.articleID,
		Content:   content,
		ParentID:  parentID,
	}
	if !identity.IsAdmin {
		input.Nickname = nickname
		input.Email = email
	}

	// 返回的记录只用于日志：新评论的 ID 和作者解析以重新拉取为准
	if _, err := ref.Comments().Create(ctx, input); err != nil {
		msg := c.tr.T("comment.submitFailed")
		var remote *bridge.RemoteError
		if errors.As(err, &remote) && remote.Message != "" {
			msg = remote.Message
		}

		c.mu.Lock()
		c.submitState = SubmitFailed
		c.lastError = msg
		c.mu.Unlock()

		ref.UI().Toast(msg, "error")
		return &SubmissionError{Message: msg}
	}

	ref.UI().Toast(c.tr.T("comment.submitSuccess"), "success")

	c.mu.Lock()
	c.resetDraftLocked(parentID)
	c.replyTarget = nil
	c.submitState = SubmitSucceeded
	c.lastError = ""
	c.mu.Unlock()

	c.Load(ctx)

	payload := map[string]any{"articleId": c.articleID, "parentId": parentID}
	ref.Notify().Hook(constant.HookCommentAfterCreate, payload)
	ref.Notify().Event(constant.EventNameCommentCreate, payload)
	c.bus.Publish(event.CommentCreated, payload)
	return nil
}

// ToggleLike 切换一条评论的点赞。
// 宿主返回的 liked 布尔值是权威结果：成功后整体重载列表而不是本地
// 增减计数。失败时不改动任何状态，只冒一条提示。
func (c *Controller) ToggleLike(ctx context.Context, commentID uint) error {
	ref, ok := c.provider.Get()
	if !ok {
		return bridge.ErrNotReady
	}

	result, err := ref.Reactions().Toggle(ctx, bridge.ToggleInput{
		TargetType: constant.TargetTypeComment,
		TargetID:   commentID,
		VisitorID:  c.visitorID,
	})
	if err != nil {
		ref.UI().Toast(c.tr.T("comment.likeFailed"), "error")
		return fmt.Errorf("切换评论 %d 点赞失败: %w", commentID, err)
	}

	if result.Liked {
		ref.UI().Toast(c.tr.T("comment.liked"), "success")
	} else {
		ref.UI().Toast(c.tr.T("comment.unliked"), "success")
	}

	c.Load(ctx)
	return nil
}

// SetReplyTarget 切换某条评论下回复表单的开合。
// 同一时刻至多一个回复表单打开：选中新目标会隐式关闭旧的；传入当前
// 目标等价于关闭。顶级草稿不受影响。
func (c *Controller) SetReplyTarget(commentID *uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if commentID == nil {
		c.replyTarget = nil
		return
	}
	if c.replyTarget != nil && *c.replyTarget == *commentID {
		c.replyTarget = nil
		return
	}
	id := *commentID
	c.replyTarget = &id
}

// UpdateDraft 更新指定槽位的草稿（parentID 为 nil 时是顶级草稿）。
func (c *Controller) UpdateDraft(parentID *uint, draft Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot := c.draftSlotLocked(parentID)
	*slot = draft
	if draft.IsEmpty() {
		c.submitState = DraftEmpty
	} else {
		c.submitState = DraftFilled
	}
}

// Draft 返回指定槽位草稿的副本。
func (c *Controller) Draft(parentID *uint) Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.draftSlotLocked(parentID)
}

// Comments 返回当前的评论树（顶级评论的有序切片）。
func (c *Controller) Comments() []*model.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.comments
}

// ReplyTarget 返回当前打开回复表单的评论 ID，没有则为 nil。
func (c *Controller) ReplyTarget() *uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replyTarget == nil {
		return nil
	}
	id := *c.replyTarget
	return &id
}

// LoadState 返回列表加载状态。
func (c *Controller) LoadState() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadState
}

// SubmitState 返回草稿/提交状态。
func (c *Controller) SubmitState() SubmitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitState
}

// LastError 返回最近一次提交失败的文案。
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Identity 返回当前访客身份。
func (c *Controller) Identity(ctx context.Context) model.ViewerIdentity {
	return c.session.ResolveIdentity(ctx)
}

func (c *Controller) setSubmitState(s SubmitState) {
	c.mu.Lock()
	c.submitState = s
	c.mu.Unlock()
}

// draftSlotLocked 取草稿槽位，调用方必须持有 c.mu。
func (c *Controller) draftSlotLocked(parentID *uint) *Draft {
	if parentID == nil {
		return &c.topDraft
	}
	slot, ok := c.replyDrafts[*parentID]
	if !ok {
		slot = &Draft{}
		c.replyDrafts[*parentID] = slot
	}
	return slot
}

// resetDraftLocked 重置草稿槽位，调用方必须持有 c.mu。
func (c *Controller) resetDraftLocked(parentID *uint) {
	if parentID == nil {
		c.topDraft = Draft{}
		return
	}
	delete(c.replyDrafts, *parentID)
}
