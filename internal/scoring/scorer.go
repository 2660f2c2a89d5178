package scoring

import "strings"

// Outcome 一次纯计分的结果
type Outcome struct {
	Dialect         Dialect
	Scores          TrackScores
	Skills          []Proficiency
	Ranking         []RankedTrack
	Message         string
	Recommendations []string
}

// Evaluate 识别方言、计分、排名并生成推荐。无副作用，可在任意 goroutine 调用
func Evaluate(answers AnswerSet, selectedInterests []string) Outcome {
	dialect := Detect(answers.Keys())

	var scores TrackScores
	var skills []Proficiency
	switch dialect {
	case DialectLegacy:
		scores = scoreLegacy(answers)
		skills = BaselineSkills()
	case DialectInterests:
		scores = scoreInterests(answers)
		skills = interestProficiency(answers)
	default:
		scores = scoreSubjects(answers)
		skills = BaselineSkills()
	}
	applyInterestBias(&scores, selectedInterests)

	ranking := scores.Rank()
	return Outcome{
		Dialect:         dialect,
		Scores:          scores,
		Skills:          skills,
		Ranking:         ranking,
		Message:         Summary(ranking),
		Recommendations: Recommend(ranking),
	}
}

func scoreLegacy(answers AnswerSet) TrackScores {
	var scores TrackScores
	for key, table := range legacyQuestions {
		applyOption(&scores, table, answers, key)
	}
	return scores
}

func scoreSubjects(answers AnswerSet) TrackScores {
	var scores TrackScores
	for _, key := range answers.Keys() {
		if table, ok := commonQuestions[key]; ok {
			applyOption(&scores, table, answers, key)
			continue
		}
		for _, rule := range subjectRules {
			if !strings.HasPrefix(key, rule.Prefix) {
				continue
			}
			applySubject(&scores, rule, answers, key)
			break
		}
	}
	return scores
}

func applySubject(scores *TrackScores, rule subjectRule, answers AnswerSet, key string) {
	if key == mlMathKey {
		if text, ok := answers.String(key); ok {
			for _, g := range mlMathGrades {
				if g.Pattern.MatchString(text) {
					scores.Add(TrackML, g.Points)
					break
				}
			}
			return
		}
	}

	scores.Add(rule.Track, 1)
	bonus, ok := rule.Bonuses[key]
	if !ok {
		return
	}
	text := answers.Text(key)
	if bonus.StringOnly {
		s, isString := answers.String(key)
		if !isString {
			return
		}
		text = s
	}
	if bonus.Pattern.MatchString(text) {
		scores.Add(rule.Track, 1)
	}
}

func scoreInterests(answers AnswerSet) TrackScores {
	var scores TrackScores
	for _, key := range answers.Keys() {
		if table, ok := commonQuestions[key]; ok {
			applyOption(&scores, table, answers, key)
			continue
		}
		prefix := interestOf(key)
		if prefix == "" {
			continue
		}
		rule := interestRules[prefix]
		for _, d := range rule.Base {
			scores.Add(d.Track, d.Points)
		}
		text := answers.Text(key)
		for _, b := range rule.Bonuses {
			if b.Pattern.MatchString(text) {
				scores.Add(b.Delta.Track, b.Delta.Points)
			}
		}
	}
	return scores
}

// applyOption 单选题按原文精确匹配，非字符串答案不计分
func applyOption(scores *TrackScores, table optionTable, answers AnswerSet, key string) {
	text, ok := answers.String(key)
	if !ok {
		return
	}
	if d, ok := table[text]; ok {
		scores.Add(d.Track, d.Points)
	}
}

func applyInterestBias(scores *TrackScores, selected []string) {
	for _, interest := range selected {
		for _, d := range interestBias[interest] {
			scores.Add(d.Track, d.Points)
		}
	}
}
