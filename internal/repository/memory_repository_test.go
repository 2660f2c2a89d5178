package repository

import (
	"context"
	"testing"
	"time"

	"edutech_backend/internal/model"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Password: "h", Email: strPtr("a@x.io")}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{Username: "alice"}), util.ErrUsernameTaken)
	require.NoError(t, repo.Create(ctx, &model.User{Username: "bob", Password: "h"}))

	bob, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	bob.Email = strPtr("a@x.io")
	assert.ErrorIs(t, repo.Update(ctx, bob), util.ErrEmailInUse)

	skills := []scoring.Proficiency{{Label: "Coding", Value: 90}}
	require.NoError(t, repo.UpdateSkills(ctx, "bob", skills))
	skills[0].Value = 1
	bob, err = repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 90, bob.Skills[0].Value)

	assert.ErrorIs(t, repo.UpdateSkills(ctx, "ghost", skills), util.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestMemoryResultRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &model.Result{Username: "alice", Timestamp: now.Add(-time.Minute), Message: "old"}))
	require.NoError(t, repo.Create(ctx, &model.Result{Username: "alice", Timestamp: now, Message: "new"}))

	results, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new", results[0].Message)

	_, err = repo.FindLatestByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrResultNotFound)
}
