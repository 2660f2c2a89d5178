package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"edutech_backend/internal/event"
	"edutech_backend/internal/model"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizFixture() (*QuizService, *fakeResultRepo, *fakeUserRepo, *event.MockPublisher) {
	results := &fakeResultRepo{}
	users := newFakeUserRepo()
	pub := event.NewMockPublisher()
	return NewQuizService(results, users, pub, 50), results, users, pub
}

func submission(t *testing.T, body string) QuizSubmission {
	t.Helper()
	var sub QuizSubmission
	require.NoError(t, json.Unmarshal([]byte(body), &sub))
	return sub
}

var legacyBody = `{"answers":{"q1":"Training ML models/analytics","q2":"High","q3":"Predictive analytics/classification","q4":"Advanced","q5":"> 6 hrs/week"}}`

func TestQuizService_SubmitLegacy(t *testing.T) {
	svc, results, users, pub := newQuizFixture()
	require.NoError(t, users.Create(context.Background(), &model.User{Username: "alice", Password: "h"}))

	resp, err := svc.Submit(context.Background(), "alice", submission(t, legacyBody))
	require.NoError(t, err)

	assert.Equal(t, scoring.TrackScores{MachineLearning: 8}, resp.Scores)
	assert.Equal(t, "Top fit: Machine Learning. Secondary: N/A.", resp.Message)
	assert.Equal(t, 50, resp.MaxPerTrack)
	assert.Equal(t, scoring.BaselineSkills(), resp.Skills)
	assert.Len(t, resp.Recommendations, 6)

	require.Equal(t, 1, results.count())
	saved := results.results[0]
	assert.Equal(t, "alice", saved.Username)
	assert.Nil(t, saved.SubjectFocus)
	assert.Equal(t, "High", saved.Answers["q2"])
	assert.Equal(t, resp.Recommendations, saved.Recommendations)
	assert.NotEmpty(t, saved.ID)

	u, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, resp.Skills, u.Skills)

	events := pub.Published()
	require.Len(t, events, 1)
	assert.Equal(t, saved.ID, events[0].ResultID)
	assert.Equal(t, scoring.TrackML, events[0].TopTrack)
}

func TestQuizService_SubjectFocusAndBias(t *testing.T) {
	svc, results, _, _ := newQuizFixture()

	resp, err := svc.Submit(context.Background(), "bob", submission(t,
		`{"answers":{"sql_q1":"yes"},"selectedInterests":["DevOps","Unknown"]}`))
	require.NoError(t, err)

	// sql_q1 +1，DevOps 偏置 Python+1 SQL+1
	assert.Equal(t, scoring.TrackScores{Python: 1, SQL: 2}, resp.Scores)
	require.NotNil(t, results.results[0].SubjectFocus)
	assert.Equal(t, "DevOps, Unknown", *results.results[0].SubjectFocus)
}

func TestQuizService_NonArrayInterestsIgnored(t *testing.T) {
	svc, results, _, _ := newQuizFixture()

	resp, err := svc.Submit(context.Background(), "bob", submission(t,
		`{"answers":{"q2":"Low"},"selectedInterests":"AI"}`))
	require.NoError(t, err)
	assert.Equal(t, scoring.TrackScores{Python: 1}, resp.Scores)
	assert.Nil(t, results.results[0].SubjectFocus)
}

func TestQuizService_InvalidAnswers(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"answers":null}`,
		`{"answers":"q1"}`,
		`{"answers":["q1"]}`,
		`{"answers":42}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			svc, results, users, pub := newQuizFixture()
			_, err := svc.Submit(context.Background(), "alice", submission(t, body))
			assert.ErrorIs(t, err, util.ErrInvalidAnswers)
			assert.Zero(t, results.count())
			assert.Zero(t, users.skillCalls)
			assert.Empty(t, pub.Published())
		})
	}
}

func TestQuizService_ResultNotSaved(t *testing.T) {
	svc, results, users, pub := newQuizFixture()
	results.createErr = errors.New("disk full")

	resp, err := svc.Submit(context.Background(), "alice", submission(t, legacyBody))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, util.ErrResultNotSaved)
	assert.Zero(t, users.skillCalls)
	assert.Empty(t, pub.Published())
}

func TestQuizService_UserUpdateFailureIsSwallowed(t *testing.T) {
	svc, results, users, _ := newQuizFixture()
	users.skillErr = errors.New("connection reset")

	resp, err := svc.Submit(context.Background(), "alice", submission(t, legacyBody))
	require.NoError(t, err)
	assert.Equal(t, 1, results.count())
	assert.Equal(t, 1, users.skillCalls)
	assert.NotEmpty(t, resp.Message)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestQuizService_UnknownUserIsNoop(t *testing.T) {
	svc, results, users, _ := newQuizFixture()

	_, err := svc.Submit(context.Background(), "ghost", submission(t, legacyBody))
	require.NoError(t, err)
	assert.Equal(t, 1, results.count())
	_, err = users.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestQuizService_EventFailureIsSwallowed(t *testing.T) {
	svc, results, _, pub := newQuizFixture()
	pub.Err = errors.New("broker down")

	_, err := svc.Submit(context.Background(), "alice", submission(t, legacyBody))
	require.NoError(t, err)
	assert.Equal(t, 1, results.count())
}

func TestQuizService_InterestsSkillsReplaceSnapshot(t *testing.T) {
	svc, _, users, _ := newQuizFixture()
	require.NoError(t, users.Create(context.Background(), &model.User{
		Username: "carol",
		Skills:   []scoring.Proficiency{{Label: "Stale", Value: 1}},
	}))

	resp, err := svc.Submit(context.Background(), "carol", submission(t,
		`{"answers":{"ai_q1":"expert","web_q1":"beginner"}}`))
	require.NoError(t, err)

	want := []scoring.Proficiency{
		{Label: "AI & Machine Learning", Value: 90},
		{Label: "Web Development", Value: 50},
		{Label: scoring.LabelCoding, Value: 65},
		{Label: scoring.LabelLogic, Value: 60},
		{Label: scoring.LabelProblemSolving, Value: 70},
	}
	assert.Equal(t, want, resp.Skills)

	u, err := users.FindByUsername(context.Background(), "carol")
	require.NoError(t, err)
	assert.Equal(t, want, u.Skills)
}

func TestQuizService_MaxPerTrack(t *testing.T) {
	svc, _, _, _ := newQuizFixture()
	svc.SetMaxPerTrack(20)
	resp, err := svc.Submit(context.Background(), "alice", submission(t, legacyBody))
	require.NoError(t, err)
	assert.Equal(t, 20, resp.MaxPerTrack)

	svc.SetMaxPerTrack(0)
	assert.Equal(t, util.DefaultMaxPerTrack, svc.MaxPerTrack())
}

func TestQuizService_NilPublisher(t *testing.T) {
	svc := NewQuizService(&fakeResultRepo{}, newFakeUserRepo(), nil, 50)
	_, err := svc.Submit(context.Background(), "alice", submission(t, legacyBody))
	assert.NoError(t, err)
}
