package scoring

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidAnswers = errors.New("invalid payload. Provide { answers: {...} }")

// AnswerSet 一次提交的原始答案，值为字符串、字符串数组或其它 JSON 标量
type AnswerSet map[string]any

// NewAnswerSet 校验解码后的 answers 字段，只接受 JSON 对象
func NewAnswerSet(raw any) (AnswerSet, error) {
	switch v := raw.(type) {
	case map[string]any:
		return AnswerSet(v), nil
	case AnswerSet:
		return v, nil
	}
	return nil, ErrInvalidAnswers
}

// Keys 返回排序后的键，保证遍历结果可复现
func (a AnswerSet) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text 答案的文本形式，数组按逗号拼接
func (a AnswerSet) Text(key string) string {
	return valueText(a[key])
}

// String 仅当答案本身是字符串时返回 true
func (a AnswerSet) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

func valueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = valueText(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	}
	return ""
}
