package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shivam041/riseapp/internal"
)

// MaxTaskReminderSlots caps per-task reminder registrations. Deleting a
// task cancels the full slot range whether or not every slot was used.
const MaxTaskReminderSlots = 20

// Scheduler registers the fixed notification plan for a user. Every call
// cancels everything previously scheduled for the user and rebuilds from
// scratch; there is no diffing, which makes repeated calls idempotent.
type Scheduler struct {
	notifier Notifier
	logger   internal.Logger
}

func NewScheduler(notifier Notifier, logger internal.Logger) *Scheduler {
	return &Scheduler{notifier: notifier, logger: logger}
}

// Setup builds the complete schedule: one slot per active default goal
// category, three daily motivation slots, a weekly Sunday summary, one slot
// per (habit, weekday, reminder time), and capped per-task reminder slots.
// Permission denial short-circuits before anything is cancelled or
// registered. Individual registration failures are logged and skipped.
func (s *Scheduler) Setup(ctx context.Context, user *internal.User, q *internal.Questionnaire,
	goals []internal.Goal, tasks []internal.Task, habits []internal.Habit) error {

	if !s.notifier.PermissionGranted(ctx) {
		s.logger.Warnf("notify: permission denied, skipping schedule for %s", user.ID)
		return internal.PermissionDeniedError("notification permission not granted")
	}

	if err := s.notifier.CancelAllForUser(ctx, user.ID); err != nil {
		s.logger.Errorf("notify: cancel-all failed for %s: %v", user.ID, err)
		return err
	}

	for _, reg := range s.buildPlan(user, q, goals, tasks, habits) {
		if err := s.notifier.Register(ctx, reg); err != nil {
			s.logger.Errorf("notify: failed to register %s: %v", reg.ID, err)
		}
	}
	return nil
}

// CancelTask cancels the full reminder slot range for a deleted task.
func (s *Scheduler) CancelTask(ctx context.Context, taskID string) error {
	ids := make([]string, 0, MaxTaskReminderSlots)
	for i := 0; i < MaxTaskReminderSlots; i++ {
		ids = append(ids, fmt.Sprintf("task-%s-%d", taskID, i))
	}
	return s.notifier.Cancel(ctx, ids...)
}

func (s *Scheduler) buildPlan(user *internal.User, q *internal.Questionnaire,
	goals []internal.Goal, tasks []internal.Task, habits []internal.Habit) []Registration {

	var plan []Registration
	add := func(id, title, body string, hour, minute int, weekday *int) {
		plan = append(plan, Registration{
			ID: id, UserID: user.ID, Title: title, Body: body,
			Hour: hour, Minute: minute, Weekday: weekday,
		})
	}

	wakeH, wakeM := parseClock(q.WakeUpTime, 7, 0)
	bedH, bedM := parseClock(q.BedTime, 22, 0)

	for _, g := range goals {
		if !g.IsActive {
			continue
		}
		switch g.Category {
		case internal.CategorySleep:
			add("goal-sleep", "Wind down", "Time to get ready for bed", bedH, bedM, nil)
		case internal.CategoryWater:
			add("goal-water", "Hydrate", "Have a glass of water", clockAdd(wakeH, 1), wakeM, nil)
		case internal.CategoryExercise:
			// Always 12:00 local regardless of wake time; the source app
			// pinned this one while the siblings track wake time.
			add("goal-exercise", "Move", "Time for your exercise", 12, 0, nil)
		case internal.CategoryMind:
			add("goal-mind", "Mindfulness", "Take a few mindful minutes", clockAdd(wakeH, 2), wakeM, nil)
		case internal.CategoryScreenTime:
			add("goal-screenTime", "Screen check", "How is your screen time today?", clockAdd(wakeH, 8), wakeM, nil)
		case internal.CategoryShower:
			add("goal-shower", "Shower", "Cold shower time", clockAdd(wakeH, 3), wakeM, nil)
		}
	}

	motivation := []struct{ hour int }{{9}, {14}, {19}}
	for i, m := range motivation {
		add(fmt.Sprintf("motivation-%d", i), "Keep going", "Small steps add up", m.hour, 0, nil)
	}

	sunday := 0
	add("weekly-summary", "Weekly summary", "Look back at your week", 20, 0, &sunday)

	for _, h := range habits {
		for _, wd := range h.Weekdays {
			weekday := wd
			for i, t := range h.ReminderTimes {
				hh, mm := parseClock(t, 9, 0)
				add(fmt.Sprintf("habit-%s-%d-%d", h.ID, wd, i), h.Name, h.Action, hh, mm, &weekday)
			}
		}
	}

	for _, t := range tasks {
		if t.IsCompleted {
			continue
		}
		for i, r := range t.Reminders {
			if i >= MaxTaskReminderSlots {
				s.logger.Warnf("notify: task %s exceeds %d reminder slots, truncating", t.ID, MaxTaskReminderSlots)
				break
			}
			hh, mm := parseClock(r, 9, 0)
			add(fmt.Sprintf("task-%s-%d", t.ID, i), t.Title, t.Notes, hh, mm, nil)
		}
	}

	return plan
}

// parseClock reads "HH:MM", falling back to the given defaults on malformed
// input rather than failing the whole schedule.
func parseClock(s string, defH, defM int) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return defH, defM
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return defH, defM
	}
	return h, m
}

func clockAdd(hour, delta int) int {
	return (hour + delta) % 24
}
