package service

import (
	"context"
	"testing"

	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	data := storage.NewUserData(storage.NewMemoryStore())
	user := &internal.User{ID: "user-1", Email: "a@b.com"}

	goal, err := CreateGoal(ctx, data, user, &GoalRequest{Title: "Stretch", Value: "5 minutes"})
	require.NoError(t, err)
	assert.Equal(t, internal.CategoryCustom, goal.Category)
	assert.True(t, goal.IsActive)

	updated, err := UpdateGoalValue(ctx, data, user, goal.ID, "10 minutes")
	require.NoError(t, err)
	assert.Equal(t, "10 minutes", updated.Value)

	toggled, err := ToggleGoal(ctx, data, user, goal.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	require.NoError(t, DeleteGoal(ctx, data, user, goal.ID))
	goals, err := ListGoals(ctx, data, user)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestDeleteGoal_DefaultCategoryRejected(t *testing.T) {
	ctx := context.Background()
	data := storage.NewUserData(storage.NewMemoryStore())
	user := &internal.User{ID: "user-1", Email: "a@b.com"}

	goals, err := EnsureProgram(ctx, data, user, sampleQuestionnaire())
	require.NoError(t, err)
	require.NotEmpty(t, goals)

	err = DeleteGoal(ctx, data, user, goals[0].ID)
	require.Error(t, err)
	assert.True(t, internal.IsValidation(err))

	// Still value-editable.
	_, err = UpdateGoalValue(ctx, data, user, goals[0].ID, "9 hours")
	assert.NoError(t, err)
}

func TestGoalNotFound(t *testing.T) {
	ctx := context.Background()
	data := storage.NewUserData(storage.NewMemoryStore())
	user := &internal.User{ID: "user-1", Email: "a@b.com"}

	_, err := ToggleGoal(ctx, data, user, "missing")
	assert.True(t, internal.IsKind(err, internal.KindNotFound))

	err = DeleteGoal(ctx, data, user, "missing")
	assert.True(t, internal.IsKind(err, internal.KindNotFound))
}
