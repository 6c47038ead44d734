package service

import (
	"time"

	"github.com/shivam041/riseapp/internal"
)

// DateKey formats a time as the "YYYY-MM-DD" key used throughout the
// per-date records.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay compares calendar days, ignoring time-of-day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// StartingWeekdayOffset returns the weekday of the first of the month,
// 0..6 with Sunday=0, i.e. how many leading blanks the month grid needs.
func StartingWeekdayOffset(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return int(firstOfMonth.Weekday())
}

// TasksForDate keeps tasks whose creation timestamp falls on the given
// calendar day. Creation time is the task's day; a task created at 23:59
// stays bound to that day.
func TasksForDate(tasks []internal.Task, date time.Time) []internal.Task {
	out := []internal.Task{}
	for _, t := range tasks {
		if SameDay(t.CreatedAt, date) {
			out = append(out, t)
		}
	}
	return out
}

// HabitsForDate filters by weekday membership only. A habit counts as
// scheduled on its weekdays even before its own start date.
func HabitsForDate(habits []internal.Habit, date time.Time) []internal.Habit {
	weekday := int(date.Weekday())
	out := []internal.Habit{}
	for _, h := range habits {
		if h.ScheduledOn(weekday) {
			out = append(out, h)
		}
	}
	return out
}

// ProgressRatio is (completedTasks+completedHabits)/(totalTasks+totalHabits)
// for the date, 0 when nothing is scheduled.
func ProgressRatio(date time.Time, tasks []internal.Task, habits []internal.Habit) float64 {
	dayTasks := TasksForDate(tasks, date)
	dayHabits := HabitsForDate(habits, date)

	total := len(dayTasks) + len(dayHabits)
	if total == 0 {
		return 0
	}

	completed := 0
	for _, t := range dayTasks {
		if t.IsCompleted {
			completed++
		}
	}
	key := DateKey(date)
	for _, h := range dayHabits {
		if h.HasCompleted(key) {
			completed++
		}
	}
	return float64(completed) / float64(total)
}
