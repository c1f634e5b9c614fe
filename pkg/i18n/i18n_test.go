package i18n

import "testing"

func TestTranslator_点分路径查找(t *testing.T) {
	tr := New("zh-CN")
	if got := tr.T("comment.submit"); got != "发表评论" {
		t.Fatalf("期望 '发表评论', 得到 %q", got)
	}
}

func TestTranslator_占位符替换(t *testing.T) {
	tr := New("zh-CN")
	got := tr.T("comment.postingAsAdmin", map[string]string{"name": "安知鱼"})
	if got != "正在以管理员身份 安知鱼 发表" {
		t.Fatalf("占位符替换失败: %q", got)
	}
}

func TestTranslator_缺失词条返回键本身(t *testing.T) {
	tr := New("en")
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("缺词条应返回键本身, 得到 %q", got)
	}
}

func TestTranslator_未知语言回退默认(t *testing.T) {
	tr := New("fr")
	if tr.Locale() != DefaultLocale {
		t.Fatalf("未知语言应回退到 %s, 得到 %s", DefaultLocale, tr.Locale())
	}
}

func TestTranslator_三种语言词条齐全(t *testing.T) {
	keys := []string{
		"nav.home", "nav.archive", "nav.categories", "nav.tags",
		"comment.title", "comment.submit", "comment.noComments",
		"common.empty", "archive.empty", "error.notFound",
	}
	for _, locale := range []string{"zh-CN", "zh-TW", "en"} {
		tr := New(locale)
		for _, key := range keys {
			if tr.T(key) == key {
				t.Errorf("语言 %s 缺少词条 %s", locale, key)
			}
		}
	}
}
