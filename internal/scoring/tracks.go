package scoring

import "sort"

// Track 固定的三个技能方向，顺序即枚举顺序（排名并列时按此顺序）
type Track string

const (
	TrackPython Track = "Python"
	TrackSQL    Track = "SQL"
	TrackML     Track = "Machine Learning"
)

// Tracks 枚举顺序
var Tracks = []Track{TrackPython, TrackSQL, TrackML}

// TrackScores 三个方向的整数累计分
type TrackScores struct {
	Python          int `json:"Python" bson:"Python"`
	SQL             int `json:"SQL" bson:"SQL"`
	MachineLearning int `json:"Machine Learning" bson:"Machine Learning"`
}

func (s *TrackScores) Add(t Track, delta int) {
	if delta <= 0 {
		return
	}
	switch t {
	case TrackPython:
		s.Python += delta
	case TrackSQL:
		s.SQL += delta
	case TrackML:
		s.MachineLearning += delta
	}
}

func (s TrackScores) Get(t Track) int {
	switch t {
	case TrackPython:
		return s.Python
	case TrackSQL:
		return s.SQL
	case TrackML:
		return s.MachineLearning
	}
	return 0
}

// RankedTrack 排名结果
type RankedTrack struct {
	Track Track `json:"track"`
	Total int   `json:"total"`
}

// Rank 按总分降序排列，并列时保持枚举顺序
func (s TrackScores) Rank() []RankedTrack {
	ranked := make([]RankedTrack, 0, len(Tracks))
	for _, t := range Tracks {
		ranked = append(ranked, RankedTrack{Track: t, Total: s.Get(t)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}
