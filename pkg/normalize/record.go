/*
 * @Description: 字段规范化器：吸收宿主各接口 snake_case / camelCase 命名差异的唯一接缝
 * @Author: 安知鱼
 * @Date: 2026-02-09 10:17:33
 * @LastEditTime: 2026-03-22 15:02:18
 * @LastEditors: 安知鱼
 */
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record 是宿主返回的一条未规范化的 JSON 记录。
// 宿主各接口的字段命名并不稳定（同一个字段可能是 like_count 也可能是
// likeCount）。所有取值方法接受 snake_case 键名，内部先尝试对应的
// camelCase 拼写、再尝试 snake_case 本身，取不到就返回类型零值，绝不
// 报错。主题其余部分只消费规范化之后的领域模型。
type Record map[string]any

// Decode 将原始 JSON 字节解析为一条 Record。
// 解析失败时返回空 Record 而不是错误，调用方拿到的是全零值字段。
func Decode(raw []byte) Record {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}
	}
	return r
}

// lookup 按 camelCase 优先、snake_case 兜底的顺序查找第一个非 nil 值。
func (r Record) lookup(keys []string) (any, bool) {
	for _, key := range keys {
		if camel := snakeToCamel(key); camel != key {
			if v, ok := r[camel]; ok && v != nil {
				return v, true
			}
		}
		if v, ok := r[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Str 依次尝试候选键，返回第一个非空字符串，否则返回 ""。
func (r Record) Str(keys ...string) string {
	for _, key := range keys {
		v, ok := r.lookup([]string{key})
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Int 依次尝试候选键，返回第一个可解析的整数，否则返回 0。
// JSON 解码出的数字是 float64，这里统一收敛。
func (r Record) Int(keys ...string) int {
	v, ok := r.lookup(keys)
	if !ok {
		return 0
	}
	return toInt(v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}

// Uint 是 Int 的无符号版本，负数同样收敛为 0。
func (r Record) Uint(keys ...string) uint {
	n := r.Int(keys...)
	if n < 0 {
		return 0
	}
	return uint(n)
}

// UintPtr 用于可空的关联字段（如 parent_id）。
// 键不存在、值为 null 或为 0 时返回 nil。
func (r Record) UintPtr(keys ...string) *uint {
	v, ok := r.lookup(keys)
	if !ok {
		return nil
	}
	n := toInt(v)
	if n <= 0 {
		return nil
	}
	u := uint(n)
	return &u
}

// Bool 依次尝试候选键，返回第一个可解析的布尔值，否则返回 false。
func (r Record) Bool(keys ...string) bool {
	v, ok := r.lookup(keys)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return false
}

// Time 依次尝试候选键，按常见格式解析时间，全部失败返回零值时间。
func (r Record) Time(keys ...string) time.Time {
	for _, key := range keys {
		v, ok := r.lookup([]string{key})
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
			for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if parsed, err := time.Parse(layout, t); err == nil {
					return parsed
				}
			}
		case float64:
			// 秒级时间戳
			return time.Unix(int64(t), 0)
		}
	}
	return time.Time{}
}

// Sub 返回嵌套对象字段（如 category），不存在时返回 nil。
func (r Record) Sub(keys ...string) Record {
	v, ok := r.lookup(keys)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// List 返回嵌套数组字段（如 replies、tags），不存在时返回 nil。
func (r Record) List(keys ...string) []Record {
	v, ok := r.lookup(keys)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// snakeToCamel 把 snake_case 键转换为 camelCase 候选拼写。
func snakeToCamel(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) == 1 {
		return key
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
