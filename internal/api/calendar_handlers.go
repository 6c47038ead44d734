package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

type calendarDay struct {
	Date       string           `json:"date"`
	Tasks      []internal.Task  `json:"tasks"`
	Habits     []internal.Habit `json:"habits"`
	Completion float64          `json:"completion"`
}

type calendarMonth struct {
	Month         string        `json:"month"`
	Days          []calendarDay `json:"days"`
	WeekdayOffset int           `json:"weekday_offset"`
}

// GetCalendar returns the month grid the calendar screen renders: one
// entry per day with the tasks and habits that fall on it and the
// completion ratio across both.
func GetCalendar(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		month := time.Now()
		if raw := c.Query("month"); raw != "" {
			parsed, err := time.Parse("2006-01", raw)
			if err != nil {
				HandleValidationError(c, app.Logger(), err, "Invalid month: expected YYYY-MM")
				return
			}
			month = parsed
		}
		first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)

		tasks, err := service.ListTasks(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch tasks")
			return
		}
		habits, err := service.ListHabits(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch habits")
			return
		}

		grid := calendarMonth{
			Month:         first.Format("2006-01"),
			WeekdayOffset: service.StartingWeekdayOffset(first),
		}
		for day := 1; day <= service.DaysInMonth(first); day++ {
			date := first.AddDate(0, 0, day-1)
			dayTasks := service.TasksForDate(tasks, date)
			dayHabits := service.HabitsForDate(habits, date)
			grid.Days = append(grid.Days, calendarDay{
				Date:       service.DateKey(date),
				Tasks:      dayTasks,
				Habits:     dayHabits,
				Completion: service.ProgressRatio(date, dayTasks, dayHabits),
			})
		}

		HandleSuccess(c, app.Logger(), grid, nil)
	}
}
