/*
 * @Description: 评论子系统的错误分类
 * @Author: 安知鱼
 * @Date: 2026-02-11 10:08:26
 * @LastEditTime: 2026-03-23 14:17:40
 * @LastEditors: 安知鱼
 */
package comment

// ValidationError 表示提交前的本地校验失败。
// 它在触达桥接之前就拦截请求，没有重试的意义。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// 预定义的本地校验错误
var (
	// ErrContentRequired 评论内容为空或全空白
	ErrContentRequired = &ValidationError{Field: "content", Message: "评论内容不能为空"}

	// ErrNicknameRequired 非管理员访客没有填昵称
	ErrNicknameRequired = &ValidationError{Field: "nickname", Message: "请填写昵称"}
)

// SubmissionError 表示评论提交被宿主拒绝。
// Message 优先取宿主返回的错误文案，草稿会被保留以便访客重试。
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}
