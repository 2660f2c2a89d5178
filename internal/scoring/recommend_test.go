package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_StableTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		scores TrackScores
		want   []Track
	}{
		{"all zero", TrackScores{}, []Track{TrackPython, TrackSQL, TrackML}},
		{"ml first", TrackScores{MachineLearning: 3}, []Track{TrackML, TrackPython, TrackSQL}},
		{"sql and ml tie", TrackScores{SQL: 2, MachineLearning: 2}, []Track{TrackSQL, TrackML, TrackPython}},
		{"descending", TrackScores{Python: 1, SQL: 2, MachineLearning: 3}, []Track{TrackML, TrackSQL, TrackPython}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranking := tt.scores.Rank()
			got := make([]Track, len(ranking))
			for i, r := range ranking {
				got[i] = r.Track
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Top fit: SQL. Secondary: Python.", Summary(TrackScores{Python: 1, SQL: 4}.Rank()))
	assert.Equal(t, "Top fit: SQL. Secondary: N/A.", Summary(TrackScores{SQL: 4}.Rank()))
	assert.Equal(t, "Top fit: Python. Secondary: N/A.", Summary([]RankedTrack{{TrackPython, 2}}))
	assert.Equal(t, "", Summary(nil))
}

func TestRecommend_EnumerationOrder(t *testing.T) {
	// SQL 排第一、Python 第二时仍先输出 Python 的课程
	recs := Recommend(TrackScores{Python: 1, SQL: 5}.Rank())
	assert.Equal(t, []string{
		"Python Basics", "Automate Boring Stuff", "NumPy & Pandas",
		"SQL Joins & Aggregations", "Data Modeling", "BI Dashboards",
	}, recs)

	recs = Recommend(TrackScores{SQL: 1, MachineLearning: 5}.Rank())
	assert.Equal(t, append(append([]string{}, Courses[TrackSQL]...), Courses[TrackML]...), recs)

	assert.Len(t, Recommend([]RankedTrack{{TrackML, 1}}), 3)
	assert.Empty(t, Recommend(nil))
}

func TestTrackScores_AddIgnoresNonPositive(t *testing.T) {
	var s TrackScores
	s.Add(TrackPython, 2)
	s.Add(TrackPython, -5)
	s.Add(TrackSQL, 0)
	s.Add(Track("Go"), 3)
	assert.Equal(t, TrackScores{Python: 2}, s)
}
