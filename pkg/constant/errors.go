/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-08 11:23:40
 * @LastEditTime: 2026-03-02 17:41:19
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrInternalServer 表示服务器内部错误，可以由 Handler 转换为 500
	ErrInternalServer = errors.New("内部服务器错误")

	// ErrBridgeUnavailable 表示宿主桥接客户端不可用，可以由 Handler 转换为 503
	ErrBridgeUnavailable = errors.New("宿主桥接客户端不可用")
)
