package service

import (
	"testing"
	"time"

	"github.com/shivam041/riseapp/internal"
	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	feb2024 := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 29, DaysInMonth(feb2024))

	feb2025 := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 28, DaysInMonth(feb2025))

	jan := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, DaysInMonth(jan))
}

func TestStartingWeekdayOffset(t *testing.T) {
	// 2024-09-01 was a Sunday.
	sept2024 := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, StartingWeekdayOffset(sept2024))

	// 2024-02-01 was a Thursday.
	feb2024 := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, StartingWeekdayOffset(feb2024))
}

func TestTasksForDate_CreationDayBinding(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	tasks := []internal.Task{
		{ID: "a", CreatedAt: time.Date(2025, time.March, 3, 23, 59, 0, 0, time.UTC)},
		{ID: "b", CreatedAt: time.Date(2025, time.March, 4, 0, 1, 0, 0, time.UTC)},
		{ID: "c", CreatedAt: time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)},
	}

	got := TasksForDate(tasks, day)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestHabitsForDate_WeekdayOnly(t *testing.T) {
	// 2025-03-03 is a Monday (weekday 1).
	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	habits := []internal.Habit{
		{ID: "mwf", Weekdays: []int{1, 3, 5}},
		{ID: "weekend", Weekdays: []int{0, 6}},
		// Starts after the date under test; still scheduled.
		{ID: "future", Weekdays: []int{1}, StartDate: monday.AddDate(0, 1, 0)},
	}

	got := HabitsForDate(habits, monday)
	assert.Len(t, got, 2)
	assert.Equal(t, "mwf", got[0].ID)
	assert.Equal(t, "future", got[1].ID)
}

func TestProgressRatio(t *testing.T) {
	// Monday again.
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, ProgressRatio(day, nil, nil))

	tasks := []internal.Task{
		{ID: "t1", CreatedAt: day, IsCompleted: true},
		{ID: "t2", CreatedAt: day},
		// Different day, must not count in either direction.
		{ID: "t3", CreatedAt: day.AddDate(0, 0, 1), IsCompleted: true},
	}
	habits := []internal.Habit{
		{ID: "h1", Weekdays: []int{1}, CompletedDates: []string{"2025-03-03"}},
		{ID: "h2", Weekdays: []int{1}},
	}

	assert.InDelta(t, 0.5, ProgressRatio(day, tasks, habits), 1e-9)
}
