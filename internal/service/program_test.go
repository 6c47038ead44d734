package service

import (
	"context"
	"testing"

	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestionnaire() *internal.Questionnaire {
	return &internal.Questionnaire{
		SleepGoal:       8,
		WaterGoal:       6,
		ExerciseGoal:    30,
		MindGoal:        10,
		ScreenTimeGoal:  3,
		ShowerGoal:      5,
		WakeUpTime:      "07:00",
		BedTime:         "22:30",
		StressLevel:     7,
		EnergyLevel:     4,
		MotivationLevel: 9,
	}
}

func TestGenerateProgram_DefaultGoals(t *testing.T) {
	q := sampleQuestionnaire()
	goals, progress := GenerateProgram(q, "user-1")

	require.Len(t, goals, 6)
	byCategory := map[internal.GoalCategory]internal.Goal{}
	for _, g := range goals {
		assert.Equal(t, "user-1", g.UserID)
		assert.True(t, g.IsActive)
		assert.NotEmpty(t, g.ID)
		byCategory[g.Category] = g
	}
	for _, cat := range internal.DefaultCategories {
		assert.Contains(t, byCategory, cat)
	}

	assert.Equal(t, "8 hours", byCategory[internal.CategorySleep].Value)
	assert.Equal(t, "Drink 6 glasses of water daily", byCategory[internal.CategoryWater].Target)
	assert.Equal(t, "30 minutes", byCategory[internal.CategoryExercise].Value)
	assert.Equal(t, "under 3 hours", byCategory[internal.CategoryScreenTime].Value)

	require.Len(t, progress, 1)
	assert.Equal(t, 7, progress[0].StressLevel)
	assert.Equal(t, 4, progress[0].EnergyLevel)
	assert.Equal(t, 9, progress[0].MotivationLevel)
	assert.NotEmpty(t, progress[0].Date)
}

func TestGenerateProgram_ExtraTasksBecomeCustomGoals(t *testing.T) {
	q := sampleQuestionnaire()
	q.ExtraTasks = []string{"Read 10 pages", "Journal"}

	goals, _ := GenerateProgram(q, "user-1")
	require.Len(t, goals, 8)

	custom := []internal.Goal{}
	for _, g := range goals {
		if g.Category == internal.CategoryCustom {
			custom = append(custom, g)
		}
	}
	require.Len(t, custom, 2)
	assert.Equal(t, "Read 10 pages", custom[0].Title)
	assert.Equal(t, "Journal", custom[1].Title)
}

func TestEnsureProgram_Idempotent(t *testing.T) {
	ctx := context.Background()
	data := storage.NewUserData(storage.NewMemoryStore())
	user := &internal.User{ID: "user-1", Email: "a@b.com"}
	q := sampleQuestionnaire()

	first, err := EnsureProgram(ctx, data, user, q)
	require.NoError(t, err)
	require.Len(t, first, 6)

	day, ok, err := data.CurrentDay(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, day)

	// Second call must not regenerate; ids stay stable.
	second, err := EnsureProgram(ctx, data, user, q)
	require.NoError(t, err)
	require.Len(t, second, 6)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestValidateQuestionnaireRequest(t *testing.T) {
	valid := QuestionnaireRequest{
		SleepGoal: 8, WaterGoal: 6, ExerciseGoal: 30, MindGoal: 10,
		ScreenTimeGoal: 3, ShowerGoal: 5,
		WakeUpTime: "07:00", BedTime: "22:30",
		StressLevel: 5, EnergyLevel: 5, MotivationLevel: 5,
	}
	assert.NoError(t, ValidateQuestionnaireRequest(&valid))

	badTime := valid
	badTime.WakeUpTime = "7am"
	assert.Error(t, ValidateQuestionnaireRequest(&badTime))

	badLevel := valid
	badLevel.StressLevel = 11
	assert.Error(t, ValidateQuestionnaireRequest(&badLevel))

	tooManyExtras := valid
	tooManyExtras.ExtraTasks = []string{"a", "b", "c"}
	assert.Error(t, ValidateQuestionnaireRequest(&tooManyExtras))
}
