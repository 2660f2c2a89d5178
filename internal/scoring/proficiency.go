package scoring

import (
	"math"
	"regexp"
)

// Proficiency 某个技能的百分制熟练度
type Proficiency struct {
	Label string `json:"label" bson:"label"`
	Value int    `json:"value" bson:"value"`
}

// ProficiencyRule 文本答案 -> 分值，按顺序匹配，先命中者生效
type ProficiencyRule struct {
	Pattern *regexp.Regexp
	Score   int
}

const DefaultProficiency = 60

var ProficiencyRules = []ProficiencyRule{
	{regexp.MustCompile(`(?i)expert|advanced|extensive|very high|10\+|strong`), 90},
	{regexp.MustCompile(`(?i)intermediate|comfortable|good|high|5-10|some projects`), 70},
	{regexp.MustCompile(`(?i)beginner|basic|moderate|learning|2-5|heard of it`), 50},
	{regexp.MustCompile(`(?i)none|low|new to me|< 2|not yet|not interested`), 30},
}

// 通用技能标签及其缺省值
const (
	LabelCoding         = "Coding"
	LabelLogic          = "Logic"
	LabelProblemSolving = "Problem Solving"
)

var baselineSkills = []Proficiency{
	{LabelCoding, 65},
	{LabelLogic, 60},
	{LabelProblemSolving, 70},
}

// BaselineSkills 非 interests-based 方言使用的固定技能集
func BaselineSkills() []Proficiency {
	out := make([]Proficiency, len(baselineSkills))
	copy(out, baselineSkills)
	return out
}

// EstimateProficiency 启发式地把答案文本映射为 0-100 的分值
func EstimateProficiency(text string) int {
	for _, r := range ProficiencyRules {
		if r.Pattern.MatchString(text) {
			return r.Score
		}
	}
	return DefaultProficiency
}

// interestProficiency 按兴趣分组求平均，并补齐通用技能
func interestProficiency(answers AnswerSet) []Proficiency {
	groups := make(map[string][]int)
	for key := range answers {
		prefix := interestOf(key)
		if prefix == "" {
			continue
		}
		groups[prefix] = append(groups[prefix], EstimateProficiency(answers.Text(key)))
	}

	skills := make([]Proficiency, 0, len(groups)+len(baselineSkills))
	for _, prefix := range InterestPrefixes {
		scores, ok := groups[prefix]
		if !ok {
			continue
		}
		skills = append(skills, Proficiency{Label: InterestLabel(prefix), Value: average(scores)})
	}

	derived := map[string]int{}
	if text := answers.Text(KeyExperienceLevel); text != "" {
		derived[LabelCoding] = EstimateProficiency(text)
	}
	if text := answers.Text(KeyTimeCommitment); text != "" {
		derived[LabelProblemSolving] = EstimateProficiency(text)
	}
	for _, base := range baselineSkills {
		if v, ok := derived[base.Label]; ok {
			skills = append(skills, Proficiency{Label: base.Label, Value: v})
			continue
		}
		skills = append(skills, base)
	}
	return skills
}

func average(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Floor(float64(sum)/float64(len(scores)) + 0.5))
}
