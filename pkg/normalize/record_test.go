package normalize

import (
	"testing"
	"time"
)

func TestRecord_Int_命名差异收敛(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
		want   int
	}{
		{"snake_case命名", Record{"like_count": float64(3)}, 3},
		{"camelCase命名", Record{"likeCount": float64(3)}, 3},
		{"两种拼写同时存在时camelCase优先", Record{"likeCount": float64(5), "like_count": float64(3)}, 5},
		{"字段缺失返回零值", Record{}, 0},
		{"值为null返回零值", Record{"like_count": nil}, 0},
		{"字符串数字也能解析", Record{"like_count": "7"}, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.Int("like_count"); got != tc.want {
				t.Errorf("期望 %d, 得到 %d", tc.want, got)
			}
		})
	}
}

func TestRecord_Str_依次尝试候选键(t *testing.T) {
	r := Record{"html": "<p>hi</p>"}
	if got := r.Str("content_html", "html"); got != "<p>hi</p>" {
		t.Errorf("候选键兜底失败, 得到 %q", got)
	}
	if got := r.Str("title"); got != "" {
		t.Errorf("缺失键应返回空串, 得到 %q", got)
	}
	// 空串不算命中，继续尝试后续候选
	r2 := Record{"title": "", "name": "备用"}
	if got := r2.Str("title", "name"); got != "备用" {
		t.Errorf("空串应继续尝试后续候选, 得到 %q", got)
	}
}

func TestRecord_UintPtr_可空关联字段(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
		want   *uint
	}{
		{"正常值", Record{"parent_id": float64(12)}, uintPtr(12)},
		{"camelCase拼写", Record{"parentId": float64(12)}, uintPtr(12)},
		{"缺失返回nil", Record{}, nil},
		{"null返回nil", Record{"parent_id": nil}, nil},
		{"零值按顶级处理返回nil", Record{"parent_id": float64(0)}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.record.UintPtr("parent_id")
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("期望 nil, 得到 %d", *got)
			case tc.want != nil && (got == nil || *got != *tc.want):
				t.Errorf("期望 %d, 得到 %v", *tc.want, got)
			}
		})
	}
}

func TestRecord_Bool_多形态解析(t *testing.T) {
	r := Record{"is_liked": true, "pinned": float64(1), "flag": "true"}
	if !r.Bool("is_liked") {
		t.Error("布尔 true 解析失败")
	}
	if !r.Bool("pinned") {
		t.Error("数字 1 应视为 true")
	}
	if !r.Bool("flag") {
		t.Error("字符串 true 解析失败")
	}
	if r.Bool("missing") {
		t.Error("缺失键应返回 false")
	}
}

func TestRecord_Time_多格式解析(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		check func(time.Time) bool
	}{
		{"RFC3339", "2026-03-01T10:30:00Z", func(tt time.Time) bool { return tt.Year() == 2026 && tt.Month() == 3 }},
		{"日期时间", "2026-03-01 10:30:00", func(tt time.Time) bool { return tt.Hour() == 10 }},
		{"纯日期", "2026-03-01", func(tt time.Time) bool { return tt.Day() == 1 }},
		{"秒级时间戳", float64(1770000000), func(tt time.Time) bool { return !tt.IsZero() }},
		{"非法格式返回零值", "昨天", func(tt time.Time) bool { return tt.IsZero() }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := Record{"created_at": tc.value}
			if got := r.Time("created_at"); !tc.check(got) {
				t.Errorf("解析结果不符合预期: %v", got)
			}
		})
	}
}

func TestDecode_非法JSON返回空Record(t *testing.T) {
	r := Decode([]byte("{not json"))
	if r == nil {
		t.Fatal("Decode 不应返回 nil")
	}
	if got := r.Int("anything"); got != 0 {
		t.Errorf("空 Record 应全零值, 得到 %d", got)
	}
}

func TestRecord_嵌套对象与数组(t *testing.T) {
	r := Decode([]byte(`{
		"category": {"id": 2, "name": "日常"},
		"tags": [{"id": 1, "name": "像素"}, {"id": 2, "name": "复古"}]
	}`))

	cat := r.Sub("category")
	if cat == nil || cat.Str("name") != "日常" {
		t.Fatalf("嵌套对象解析失败: %v", cat)
	}

	tags := r.List("tags")
	if len(tags) != 2 || tags[1].Str("name") != "复古" {
		t.Fatalf("嵌套数组解析失败: %v", tags)
	}
}

func uintPtr(v uint) *uint { return &v }
