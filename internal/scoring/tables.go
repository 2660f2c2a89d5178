package scoring

import "regexp"

// 所有计分规则都以只读查找表的形式维护，便于审计和单独测试

type trackDelta struct {
	Track  Track
	Points int
}

// optionTable 单选题：选项原文 -> 加分
type optionTable map[string]trackDelta

// legacyQuestions q1..q5 的固定选项表
var legacyQuestions = map[string]optionTable{
	"q1": {
		"Building scripts/automation":    {TrackPython, 2},
		"Working with databases/queries": {TrackSQL, 2},
		"Training ML models/analytics":   {TrackML, 2},
	},
	"q2": {
		"Low":    {TrackPython, 1},
		"Medium": {TrackSQL, 1},
		"High":   {TrackML, 2},
	},
	"q3": {
		"Web scraping/automation":             {TrackPython, 2},
		"Reporting/BI dashboards":             {TrackSQL, 2},
		"Predictive analytics/classification": {TrackML, 2},
	},
	"q4": experienceLevels,
	"q5": timeCommitments,
}

var experienceLevels = optionTable{
	"Beginner":     {TrackPython, 2},
	"Intermediate": {TrackSQL, 2},
	"Advanced":     {TrackML, 1},
}

var timeCommitments = optionTable{
	"< 3 hrs/week": {TrackPython, 1},
	"3-6 hrs/week": {TrackSQL, 1},
	"> 6 hrs/week": {TrackML, 1},
}

// 通用问题键，subject-based 与 interests-based 共用
const (
	KeyExperienceLevel = "exp_lvl"
	KeyTimeCommitment  = "time_commit"
)

var commonQuestions = map[string]optionTable{
	KeyExperienceLevel: experienceLevels,
	KeyTimeCommitment:  timeCommitments,
}

// keyBonus 指定子题命中正则后额外加分
type keyBonus struct {
	Pattern    *regexp.Regexp
	StringOnly bool
}

type subjectRule struct {
	Prefix  string
	Track   Track
	Bonuses map[string]keyBonus
}

var subjectRules = []subjectRule{
	{
		Prefix: "python_",
		Track:  TrackPython,
		Bonuses: map[string]keyBonus{
			"python_q2": {Pattern: regexp.MustCompile(`(?i)a lot`), StringOnly: true},
			"python_q7": {Pattern: regexp.MustCompile(`(?i)high`)},
			"python_q8": {Pattern: regexp.MustCompile(`(?i)high`)},
		},
	},
	{
		Prefix: "sql_",
		Track:  TrackSQL,
		Bonuses: map[string]keyBonus{
			"sql_q3": {Pattern: regexp.MustCompile(`(?i)often`)},
			"sql_q4": {Pattern: regexp.MustCompile(`(?i)high`)},
			"sql_q7": {Pattern: regexp.MustCompile(`(?i)yes`)},
		},
	},
	{
		Prefix: "ml_",
		Track:  TrackML,
		Bonuses: map[string]keyBonus{
			"ml_q4": {Pattern: regexp.MustCompile(`(?i)good`)},
			"ml_q7": {Pattern: regexp.MustCompile(`(?i)high`)},
			"ml_q8": {Pattern: regexp.MustCompile(`(?i)comfortable`)},
		},
	},
}

// ml_q2 数学基础题按等级给分，替代基础分
const mlMathKey = "ml_q2"

var mlMathGrades = []struct {
	Pattern *regexp.Regexp
	Points  int
}{
	{regexp.MustCompile(`(?i)strong`), 2},
	{regexp.MustCompile(`(?i)average`), 1},
}

type patternBonus struct {
	Pattern *regexp.Regexp
	Delta   trackDelta
}

type interestRule struct {
	Label   string
	Base    []trackDelta
	Bonuses []patternBonus
}

// InterestPrefixes 兴趣前缀，顺序决定熟练度输出顺序
var InterestPrefixes = []string{"ai", "web", "ds", "cyber", "mobile", "cloud", "devops", "uiux", "bc"}

var interestRules = map[string]interestRule{
	"ai": {
		Label: "AI & Machine Learning",
		Base:  []trackDelta{{TrackML, 2}},
		Bonuses: []patternBonus{
			{regexp.MustCompile(`(?i)expert|advanced|extensive|very high|strong`), trackDelta{TrackML, 1}},
		},
	},
	"web": {
		Label: "Web Development",
		Base:  []trackDelta{{TrackPython, 2}},
		Bonuses: []patternBonus{
			{regexp.MustCompile(`(?i)backend|full-stack|node\.js|python`), trackDelta{TrackPython, 1}},
			{regexp.MustCompile(`(?i)database|sql`), trackDelta{TrackSQL, 1}},
		},
	},
	"ds": {
		Label: "Data Science",
		Base:  []trackDelta{{TrackML, 2}, {TrackSQL, 1}},
		Bonuses: []patternBonus{
			{regexp.MustCompile(`(?i)expert|advanced|strong`), trackDelta{TrackML, 1}},
		},
	},
	"cyber": {
		Label: "Cybersecurity",
		Base:  []trackDelta{{TrackPython, 1}},
		Bonuses: []patternBonus{
			{regexp.MustCompile(`(?i)scripting|python|automation`), trackDelta{TrackPython, 1}},
		},
	},
	"mobile": {
		Label: "Mobile Development",
		Base:  []trackDelta{{TrackPython, 1}},
	},
	"cloud": {
		Label: "Cloud Computing",
		Base:  []trackDelta{{TrackSQL, 1}, {TrackPython, 1}},
	},
	"devops": {
		Label: "DevOps",
		Base:  []trackDelta{{TrackPython, 1}, {TrackSQL, 1}},
	},
	"uiux": {
		Label: "UI/UX Design",
		Base:  []trackDelta{{TrackPython, 1}},
	},
	"bc": {
		Label: "Blockchain",
		Base:  []trackDelta{{TrackPython, 2}},
		Bonuses: []patternBonus{
			{regexp.MustCompile(`(?i)solidity|smart contract|web3`), trackDelta{TrackPython, 1}},
		},
	},
}

// InterestLabel 兴趣前缀对应的技能展示名
func InterestLabel(prefix string) string {
	return interestRules[prefix].Label
}

// interestBias selectedInterests 中每个可识别的兴趣对总分的偏置
var interestBias = map[string][]trackDelta{
	"AI":              {{TrackML, 1}},
	"Data Science":    {{TrackML, 1}},
	"Web Development": {{TrackPython, 1}},
	"DevOps":          {{TrackPython, 1}, {TrackSQL, 1}},
	"Cloud":           {{TrackPython, 1}, {TrackSQL, 1}},
	"Blockchain":      {{TrackPython, 1}},
	"Cybersecurity":   {{TrackPython, 1}},
	"Mobile Apps":     {{TrackPython, 1}},
	"UI/UX":           {{TrackPython, 1}},
}

// Courses 每个方向固定推荐的三门课程
var Courses = map[Track][]string{
	TrackPython: {"Python Basics", "Automate Boring Stuff", "NumPy & Pandas"},
	TrackSQL:    {"SQL Joins & Aggregations", "Data Modeling", "BI Dashboards"},
	TrackML:     {"Supervised Learning", "Model Evaluation", "scikit-learn Projects"},
}
