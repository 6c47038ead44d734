package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shivam041/riseapp/internal"
)

// UserData reads and writes whole per-user collections through the KV
// adapter. Collections are serialized wholesale per key: two concurrent
// edits to different entries of the same collection race as last write
// wins. That is the reviewed client's behavior and is kept as-is.
type UserData struct {
	kv KVStore
}

func NewUserData(kv KVStore) *UserData {
	return &UserData{kv: kv}
}

func getJSON[T any](ctx context.Context, kv KVStore, key string) (T, bool, error) {
	var out T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

func setJSON(ctx context.Context, kv KVStore, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, string(raw))
}

func (d *UserData) Goals(ctx context.Context, email string) ([]internal.Goal, error) {
	goals, _, err := getJSON[[]internal.Goal](ctx, d.kv, UserKey(PrefixGoals, email))
	return goals, err
}

func (d *UserData) SaveGoals(ctx context.Context, email string, goals []internal.Goal) error {
	return setJSON(ctx, d.kv, UserKey(PrefixGoals, email), goals)
}

func (d *UserData) Tasks(ctx context.Context, email string) ([]internal.Task, error) {
	tasks, _, err := getJSON[[]internal.Task](ctx, d.kv, UserKey(PrefixTasks, email))
	return tasks, err
}

func (d *UserData) SaveTasks(ctx context.Context, email string, tasks []internal.Task) error {
	return setJSON(ctx, d.kv, UserKey(PrefixTasks, email), tasks)
}

func (d *UserData) Habits(ctx context.Context, email string) ([]internal.Habit, error) {
	habits, _, err := getJSON[[]internal.Habit](ctx, d.kv, UserKey(PrefixHabits, email))
	return habits, err
}

func (d *UserData) SaveHabits(ctx context.Context, email string, habits []internal.Habit) error {
	return setJSON(ctx, d.kv, UserKey(PrefixHabits, email), habits)
}

func (d *UserData) Notes(ctx context.Context, email string) ([]internal.Note, error) {
	notes, _, err := getJSON[[]internal.Note](ctx, d.kv, UserKey(PrefixNotes, email))
	return notes, err
}

func (d *UserData) SaveNotes(ctx context.Context, email string, notes []internal.Note) error {
	return setJSON(ctx, d.kv, UserKey(PrefixNotes, email), notes)
}

func (d *UserData) Questionnaire(ctx context.Context, email string) (*internal.Questionnaire, bool, error) {
	q, ok, err := getJSON[internal.Questionnaire](ctx, d.kv, UserKey(PrefixQuestionnaire, email))
	if err != nil || !ok {
		return nil, false, err
	}
	return &q, true, nil
}

func (d *UserData) SaveQuestionnaire(ctx context.Context, email string, q *internal.Questionnaire) error {
	return setJSON(ctx, d.kv, UserKey(PrefixQuestionnaire, email), q)
}

func (d *UserData) Progress(ctx context.Context, email string) ([]internal.DailyProgress, error) {
	rows, _, err := getJSON[[]internal.DailyProgress](ctx, d.kv, UserKey(PrefixProgress, email))
	return rows, err
}

func (d *UserData) SaveProgress(ctx context.Context, email string, rows []internal.DailyProgress) error {
	return setJSON(ctx, d.kv, UserKey(PrefixProgress, email), rows)
}

// HasProgress reports mere key presence, used by the effective-onboarding
// merge without deserializing the rows.
func (d *UserData) HasProgress(ctx context.Context, email string) (bool, error) {
	_, ok, err := d.kv.Get(ctx, UserKey(PrefixProgress, email))
	return ok, err
}

func (d *UserData) HasQuestionnaire(ctx context.Context, email string) (bool, error) {
	_, ok, err := d.kv.Get(ctx, UserKey(PrefixQuestionnaire, email))
	return ok, err
}

func (d *UserData) CurrentDay(ctx context.Context, email string) (int, bool, error) {
	raw, ok, err := d.kv.Get(ctx, UserKey(PrefixCurrentDay, email))
	if err != nil || !ok {
		return 0, false, err
	}
	day, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return day, true, nil
}

func (d *UserData) SetCurrentDay(ctx context.Context, email string, day int) error {
	return d.kv.Set(ctx, UserKey(PrefixCurrentDay, email), strconv.Itoa(day))
}

func (d *UserData) OnboardingComplete(ctx context.Context, email string) (bool, error) {
	raw, ok, err := d.kv.Get(ctx, UserKey(PrefixOnboarding, email))
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

func (d *UserData) SetOnboardingComplete(ctx context.Context, email string) error {
	return d.kv.Set(ctx, UserKey(PrefixOnboarding, email), "true")
}

// ClearUser removes every per-user key. Non-atomic: the keys go one by one.
func (d *UserData) ClearUser(ctx context.Context, email string) error {
	return d.kv.RemoveMany(ctx, PerUserKeys(email))
}
