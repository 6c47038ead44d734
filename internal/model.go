package internal

import "time"

// ProgramLength is the number of days in the Rise program. CurrentDay is
// always clamped to [1, ProgramLength] and never moves backwards.
const ProgramLength = 66

type GoalCategory string

const (
	CategorySleep      GoalCategory = "sleep"
	CategoryWater      GoalCategory = "water"
	CategoryExercise   GoalCategory = "exercise"
	CategoryMind       GoalCategory = "mind"
	CategoryScreenTime GoalCategory = "screenTime"
	CategoryShower     GoalCategory = "shower"
	CategoryCustom     GoalCategory = "custom"
)

// DefaultCategories are the six categories seeded from the onboarding
// questionnaire. Goals in these categories are value-editable but not
// deletable; only custom goals can be removed.
var DefaultCategories = []GoalCategory{
	CategorySleep, CategoryWater, CategoryExercise,
	CategoryMind, CategoryScreenTime, CategoryShower,
}

type NotePriority string

const (
	PriorityLow    NotePriority = "low"
	PriorityMedium NotePriority = "medium"
	PriorityHigh   NotePriority = "high"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	StartDate time.Time `json:"start_date"`
	// CurrentDay is 1-based within the 66-day program.
	CurrentDay           int  `json:"current_day"`
	IsOnboardingComplete bool `json:"is_onboarding_complete"`
	// IsAuthenticated is session-scoped: it is stored in the local user
	// record but never sent to or read from the remote backend.
	IsAuthenticated bool `json:"is_authenticated"`
	IsAdmin         bool `json:"is_admin"`
	IsActive        bool `json:"is_active"`
}

// Credentials backs the "remember me" flow. The password is stored in
// clear text, matching the reviewed client; this record is a convenience,
// not a security boundary.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Questionnaire is the one-time onboarding snapshot. It is immutable after
// onboarding; edits go through the derived Goal entities.
type Questionnaire struct {
	SleepGoal       int      `json:"sleep_goal"`       // hours per night
	WaterGoal       int      `json:"water_goal"`       // glasses per day
	ExerciseGoal    int      `json:"exercise_goal"`    // minutes per day
	MindGoal        int      `json:"mind_goal"`        // minutes per day
	ScreenTimeGoal  int      `json:"screen_time_goal"` // hours per day
	ShowerGoal      int      `json:"shower_goal"`      // minutes per day
	WakeUpTime      string   `json:"wake_up_time"`     // "HH:MM"
	BedTime         string   `json:"bed_time"`         // "HH:MM"
	StressLevel     int      `json:"stress_level"`     // 1-10
	EnergyLevel     int      `json:"energy_level"`     // 1-10
	MotivationLevel int      `json:"motivation_level"` // 1-10
	ExtraTasks      []string `json:"extra_tasks,omitempty"`
}

type Goal struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    GoalCategory `json:"category"`
	Value       string       `json:"value"`
	Target      string       `json:"target,omitempty"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Task is a one-off to-do item. CreatedAt doubles as the calendar day the
// task belongs to; there is no separate due-date field.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	Reminders   []string  `json:"reminders,omitempty"` // "HH:MM", ordered
}

// Habit is a recurring weekday-scheduled check-in. CompletedDates holds
// "YYYY-MM-DD" strings; presence means done that day.
type Habit struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Action         string    `json:"action,omitempty"`
	Weekdays       []int     `json:"weekdays"` // 0-6, Sunday=0
	StartDate      time.Time `json:"start_date"`
	CompletedDates []string  `json:"completed_dates,omitempty"`
	ReminderTimes  []string  `json:"reminder_times,omitempty"` // "HH:MM"
}

type Note struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Content     string       `json:"content"`
	IsCompleted bool         `json:"is_completed"`
	Priority    NotePriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// DailyProgress is a derived per-date aggregate. Task state is the source
// of truth; this record is computed or upserted, never authoritative.
type DailyProgress struct {
	UserID          string `json:"user_id"`
	Date            string `json:"date"` // "YYYY-MM-DD"
	CompletedTasks  int    `json:"completed_tasks"`
	TotalTasks      int    `json:"total_tasks"`
	WaterIntake     int    `json:"water_intake,omitempty"`
	ExerciseMinutes int    `json:"exercise_minutes,omitempty"`
	ScreenTimeHours int    `json:"screen_time_hours,omitempty"`
	StressLevel     int    `json:"stress_level,omitempty"`
	EnergyLevel     int    `json:"energy_level,omitempty"`
	MotivationLevel int    `json:"motivation_level,omitempty"`
}

// HasCompleted reports whether the habit was checked off on the given day.
func (h *Habit) HasCompleted(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// ScheduledOn reports weekday membership only. StartDate is deliberately
// not consulted, matching the reviewed filtering logic.
func (h *Habit) ScheduledOn(weekday int) bool {
	for _, w := range h.Weekdays {
		if w == weekday {
			return true
		}
	}
	return false
}
