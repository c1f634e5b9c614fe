/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-09 15:02:33
 * @LastEditTime: 2026-02-09 15:04:10
 * @LastEditors: 安知鱼
 */
package bridge

import "fmt"

// RemoteError 表示宿主明确拒绝了一次操作。
// Message 是宿主给出的文案，可以直接展示给访客（如"评论包含敏感词"）。
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("宿主返回错误 (code=%d): %s", e.Code, e.Message)
}
