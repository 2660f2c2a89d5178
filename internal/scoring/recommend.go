package scoring

import "fmt"

const noSecondary = "N/A"

// Summary 生成 "Top fit: X. Secondary: Y." 概要。第二名没有得分时视为不存在
func Summary(ranking []RankedTrack) string {
	if len(ranking) == 0 {
		return ""
	}
	secondary := noSecondary
	if len(ranking) > 1 && ranking[1].Total > 0 {
		secondary = string(ranking[1].Track)
	}
	return fmt.Sprintf("Top fit: %s. Secondary: %s.", ranking[0].Track, secondary)
}

// Recommend 取排名前二的方向，按枚举顺序拼接各自的课程
func Recommend(ranking []RankedTrack) []string {
	top := make(map[Track]bool, 2)
	for i := 0; i < len(ranking) && i < 2; i++ {
		top[ranking[i].Track] = true
	}

	recs := make([]string, 0, 6)
	for _, t := range Tracks {
		if top[t] {
			recs = append(recs, Courses[t]...)
		}
	}
	return recs
}
