/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-08 14:30:15
 * @LastEditTime: 2026-03-02 17:48:20
 * @LastEditors: 安知鱼
 */
// pkg/domain/model/viewer.go
package model

// ViewerIdentity 是当前访客的身份，由桥接端的 viewer check 解析而来。
// 对评论子系统是只读的：管理员身份会隐藏昵称/邮箱输入并解锁作者徽标。
type ViewerIdentity struct {
	IsAuthenticated bool
	IsAdmin         bool
	DisplayName     string
}

// AnonymousViewer 返回匿名访客身份。
// 任何身份解析失败（包括桥接未就绪）都降级到它，绝不向上抛错。
func AnonymousViewer() ViewerIdentity {
	return ViewerIdentity{}
}
