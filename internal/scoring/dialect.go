package scoring

import "regexp"

// Dialect 答案键的命名方言
type Dialect string

const (
	DialectLegacy    Dialect = "legacy"
	DialectInterests Dialect = "interests-based"
	DialectSubject   Dialect = "subject-based"
)

var (
	legacyKeyPattern   = regexp.MustCompile(`^q[1-5]$`)
	interestKeyPattern = regexp.MustCompile(`^(ai|web|ds|cyber|mobile|cloud|devops|uiux|bc)_q\d+$`)
)

// Detect 按 legacy > interests-based > subject-based 的优先级识别方言
func Detect(keys []string) Dialect {
	interests := false
	for _, k := range keys {
		if legacyKeyPattern.MatchString(k) {
			return DialectLegacy
		}
		if interestKeyPattern.MatchString(k) {
			interests = true
		}
	}
	if interests {
		return DialectInterests
	}
	return DialectSubject
}

// interestOf 返回键所属的兴趣前缀，不匹配时返回空串
func interestOf(key string) string {
	m := interestKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return ""
	}
	return m[1]
}
