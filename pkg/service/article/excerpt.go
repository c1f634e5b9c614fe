/*
 * @Description: 列表页摘要与首图提取
 * @Author: 安知鱼
 * @Date: 2026-02-12 15:08:33
 * @LastEditTime: 2026-03-24 21:02:19
 * @LastEditors: 安知鱼
 */
package article

import (
	"regexp"
	"strings"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
)

const excerptRuneLimit = 120

var (
	// 短代码是 [tag attr]…[/tag] 的方括号语法，三种形态依次剥离：
	// 成对标签连同内容、自闭合标签、残留的孤立开/闭标签（只去标签留内容）
	shortcodePairRe  = regexp.MustCompile(`(?s)\[([a-zA-Z0-9_-]+)(?:\s+[^\]]*)?\](.*?)\[/([a-zA-Z0-9_-]+)\]`)
	shortcodeSelfRe  = regexp.MustCompile(`\[[a-zA-Z0-9_-]+(?:\s+[^\]]*)?/\]`)
	shortcodeStrayRe = regexp.MustCompile(`\[/?\w+[^\]]*\]`)

	htmlTagRe   = regexp.MustCompile(`<[^>]+>`)
	mdImageRe   = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)[^)]*\)`)
	mdLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	codeFenceRe = regexp.MustCompile("(?s)```.*?```|`[^`]*`")
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisRe  = regexp.MustCompile(`[*_~]{1,3}`)
	blockquote  = regexp.MustCompile(`(?m)^>\s?`)
	htmlImageRe = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Excerpt 从文章正文生成列表页摘要：剥掉短代码、图片、链接标记、
// 代码块和 HTML 标签后取前 120 个字符，被截断时补省略号。
// 文章自带摘要时直接用自带的。
func Excerpt(a *model.Article) string {
	src := a.Content
	if src == "" {
		src = a.ContentHTML
	}

	text := stripShortcodes(src)
	text = codeFenceRe.ReplaceAllString(text, "")
	text = mdImageRe.ReplaceAllString(text, "")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = blockquote.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) <= excerptRuneLimit {
		return text
	}
	return string(runes[:excerptRuneLimit]) + "..."
}

// stripShortcodes 剥离方括号短代码。
// 成对标签要求开闭同名才连内容一起移除；对不上号的留给孤立标签
// 这一步处理，只去掉标签本身、保留中间的正文。
func stripShortcodes(src string) string {
	text := shortcodePairRe.ReplaceAllStringFunc(src, func(m string) string {
		sub := shortcodePairRe.FindStringSubmatch(m)
		if sub[1] == sub[3] {
			return ""
		}
		return m
	})
	text = shortcodeSelfRe.ReplaceAllString(text, "")
	return shortcodeStrayRe.ReplaceAllString(text, "")
}

// FirstImage 返回正文里的第一张图片地址，Markdown 与 HTML 两种写法
// 都认；正文没有图时回退文章缩略图，仍然没有则返回空串。
func FirstImage(a *model.Article) string {
	if m := mdImageRe.FindStringSubmatch(a.Content); len(m) > 1 {
		return m[1]
	}
	if m := htmlImageRe.FindStringSubmatch(a.Content); len(m) > 1 {
		return m[1]
	}
	if m := htmlImageRe.FindStringSubmatch(a.ContentHTML); len(m) > 1 {
		return m[1]
	}
	return a.Thumbnail
}
