/*
 * @Description: 主题文案的多语言查找（zh-CN / zh-TW / en）
 * @Author: 安知鱼
 * @Date: 2026-02-10 09:31:27
 * @LastEditTime: 2026-03-23 12:05:16
 * @LastEditors: 安知鱼
 */
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale 是缺省语言，与宿主保持一致。
const DefaultLocale = "zh-CN"

// supportedLocales 是主题内置的语言包列表。
var supportedLocales = []string{"zh-CN", "zh-TW", "en"}

// Translator 绑定一种语言，提供点分路径的文案查找。
type Translator struct {
	locale   string
	messages map[string]string
}

// New 加载指定语言的翻译器，未知语言回退到 DefaultLocale。
func New(locale string) *Translator {
	if !isSupported(locale) {
		if locale != "" {
			log.Printf("[i18n] 警告: 不支持的语言 %q，回退到 %s", locale, DefaultLocale)
		}
		locale = DefaultLocale
	}

	messages, err := loadLocale(locale)
	if err != nil {
		log.Printf("[i18n] 警告: 加载语言包 %s 失败: %v", locale, err)
		messages = map[string]string{}
	}
	return &Translator{locale: locale, messages: messages}
}

// Locale 返回当前语言代码。
func (t *Translator) Locale() string {
	return t.locale
}

// T 按点分路径查找文案，支持 {name} 形式的占位符替换。
// 找不到时返回 key 本身，保证页面不会因缺词条而开天窗。
func (t *Translator) T(key string, args ...map[string]string) string {
	msg, ok := t.messages[key]
	if !ok {
		return key
	}
	for _, m := range args {
		for name, value := range m {
			msg = strings.ReplaceAll(msg, "{"+name+"}", value)
		}
	}
	return msg
}

func isSupported(locale string) bool {
	for _, l := range supportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// loadLocale 读取语言包并把嵌套 JSON 展平成点分键。
func loadLocale(locale string) (map[string]string, error) {
	raw, err := localeFS.ReadFile("locales/" + locale + ".json")
	if err != nil {
		return nil, fmt.Errorf("读取语言包失败: %w", err)
	}
	var nested map[string]any
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("解析语言包失败: %w", err)
	}
	flat := make(map[string]string)
	flatten("", nested, flat)
	return flat, nil
}

func flatten(prefix string, nested map[string]any, out map[string]string) {
	for key, value := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}
