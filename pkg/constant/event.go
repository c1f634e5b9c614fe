/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-07 19:50:12
 * @LastEditTime: 2026-02-07 19:50:26
 * @LastEditors: 安知鱼
 */
package constant

import "github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"

// EventTopic 事件主题类型
type EventTopic = event.Topic

// 导出事件主题常量，供外部使用
const (
	// EventCommentCreated 评论创建成功事件
	EventCommentCreated EventTopic = event.CommentCreated
	// EventBridgeReady 桥接客户端就绪事件
	EventBridgeReady EventTopic = event.BridgeReady
	// EventSiteInfoRefreshed 站点信息缓存刷新事件
	EventSiteInfoRefreshed EventTopic = event.SiteInfoRefreshed
)
