package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/api"
	"github.com/shivam041/riseapp/internal/chat"
	"github.com/shivam041/riseapp/internal/notify"
	"github.com/shivam041/riseapp/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	logger    internal.Logger
	users     storage.UserStore
	data      *storage.UserData
	scheduler *notify.Scheduler
	notifier  *notify.MemoryNotifier
}

func (a *testApp) Logger() internal.Logger      { return a.logger }
func (a *testApp) Users() storage.UserStore     { return a.users }
func (a *testApp) Data() *storage.UserData      { return a.data }
func (a *testApp) Scheduler() *notify.Scheduler { return a.scheduler }
func (a *testApp) Chat() *chat.Client           { return nil }

func setupRouter(t *testing.T) (*gin.Engine, *testApp) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NewNopLogger()
	notifier := notify.NewMemoryNotifier()
	app := &testApp{
		logger:    logger,
		users:     storage.NewMemoryUserStore(logger),
		data:      storage.NewUserData(storage.NewMemoryStore()),
		scheduler: notify.NewScheduler(notifier, logger),
		notifier:  notifier,
	}
	return api.Router(app), app
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/auth/register/", "", `{"email":"`+email+`","password":"Password1","name":"Test User"}`)
	require.Equal(t, 201, w.Code, w.Body.String())
	var resp struct {
		Token string         `json:"token"`
		User  *internal.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	return resp.Token
}

const onboardingBody = `{
	"sleep_goal": 8, "water_goal": 6, "exercise_goal": 30, "mind_goal": 10,
	"screen_time_goal": 3, "shower_goal": 5,
	"wake_up_time": "07:00", "bed_time": "22:30",
	"stress_level": 5, "energy_level": 5, "motivation_level": 5
}`

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := setupRouter(t)

	token := registerUser(t, r, "a@b.com")

	// Duplicate email is a conflict.
	w := doJSON(t, r, "POST", "/auth/register/", "", `{"email":"a@b.com","password":"Password1"}`)
	assert.Equal(t, 409, w.Code)

	// Weak password is rejected up front.
	w = doJSON(t, r, "POST", "/auth/register/", "", `{"email":"b@c.com","password":"weak"}`)
	assert.Equal(t, 400, w.Code)

	// Wrong password.
	w = doJSON(t, r, "POST", "/auth/login/", "", `{"email":"a@b.com","password":"Nope12345"}`)
	assert.Equal(t, 401, w.Code)

	w = doJSON(t, r, "POST", "/auth/login/", "", `{"email":"a@b.com","password":"Password1"}`)
	assert.Equal(t, 200, w.Code)

	// Profile requires the token.
	w = doJSON(t, r, "GET", "/auth/profile/", "", "")
	assert.Equal(t, 401, w.Code)
	w = doJSON(t, r, "GET", "/auth/profile/", token, "")
	assert.Equal(t, 200, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/auth/logout/", token, "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(t, r, "GET", "/auth/profile/", token, "")
	assert.Equal(t, 401, w.Code)
}

func TestOnboardingGeneratesProgramAndSchedule(t *testing.T) {
	r, app := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/api/onboarding", token, onboardingBody)
	require.Equal(t, 201, w.Code, w.Body.String())

	// The notification plan was built for the new program.
	ctx := context.Background()
	user, err := app.users.Authenticate(ctx, "a@b.com", "Password1")
	require.NoError(t, err)
	regs, err := app.notifier.PendingForUser(ctx, user.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(regs))
	for _, reg := range regs {
		ids = append(ids, reg.ID)
	}
	assert.Contains(t, ids, "goal-sleep")
	assert.Contains(t, ids, "goal-exercise")
	assert.Contains(t, ids, "weekly-summary")

	// The six default goals come back in the envelope.
	var resp struct {
		Data []internal.Goal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 6)

	// Repeating onboarding does not duplicate goals.
	w = doJSON(t, r, "POST", "/api/onboarding", token, onboardingBody)
	require.Equal(t, 201, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 6)

	// Invalid questionnaire is rejected.
	w = doJSON(t, r, "POST", "/api/onboarding", token, `{"sleep_goal": 8}`)
	assert.Equal(t, 400, w.Code)
}

func TestGoalEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")
	w := doJSON(t, r, "POST", "/api/onboarding", token, onboardingBody)
	require.Equal(t, 201, w.Code)

	// Add a custom goal.
	w = doJSON(t, r, "POST", "/api/goals", token, `{"title":"Read","value":"10 pages"}`)
	require.Equal(t, 201, w.Code)
	var created struct {
		Data internal.Goal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, internal.CategoryCustom, created.Data.Category)

	w = doJSON(t, r, "GET", "/api/goals", token, "")
	require.Equal(t, 200, w.Code)
	var listed struct {
		Data []internal.Goal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 7)

	// Default goals reject deletion; custom ones accept it.
	var defaultID string
	for _, g := range listed.Data {
		if g.Category == internal.CategorySleep {
			defaultID = g.ID
		}
	}
	w = doJSON(t, r, "DELETE", "/api/goals/"+defaultID, token, "")
	assert.Equal(t, 400, w.Code)
	w = doJSON(t, r, "DELETE", "/api/goals/"+created.Data.ID, token, "")
	assert.Equal(t, 200, w.Code)

	// Value edits work on default goals.
	w = doJSON(t, r, "PATCH", "/api/goals/"+defaultID, token, `{"value":"9 hours"}`)
	assert.Equal(t, 200, w.Code)
}

func TestTaskEndpoints(t *testing.T) {
	r, app := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/api/tasks", token, `{"title":"Call dentist","reminders":["10:00"]}`)
	require.Equal(t, 201, w.Code, w.Body.String())
	var created struct {
		Data internal.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Bad reminder format.
	w = doJSON(t, r, "POST", "/api/tasks", token, `{"title":"x","reminders":["10am"]}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "POST", "/api/tasks/"+created.Data.ID+"/toggle", token, "")
	require.Equal(t, 200, w.Code)
	var toggled struct {
		Data internal.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Data.IsCompleted)

	w = doJSON(t, r, "DELETE", "/api/tasks/"+created.Data.ID, token, "")
	assert.Equal(t, 200, w.Code)

	tasks, err := app.data.Tasks(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestHabitEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/api/habits", token, `{"name":"Meditate","weekdays":[1,3,5],"reminder_times":["08:00"]}`)
	require.Equal(t, 201, w.Code, w.Body.String())
	var created struct {
		Data internal.Habit `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Invalid weekday.
	w = doJSON(t, r, "POST", "/api/habits", token, `{"name":"x","weekdays":[7]}`)
	assert.Equal(t, 400, w.Code)

	// Toggle a completion date on, then off.
	w = doJSON(t, r, "POST", "/api/habits/"+created.Data.ID+"/toggle", token, `{"date":"2025-03-03"}`)
	require.Equal(t, 200, w.Code)
	var toggled struct {
		Data internal.Habit `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Data.HasCompleted("2025-03-03"))

	w = doJSON(t, r, "POST", "/api/habits/"+created.Data.ID+"/toggle", token, `{"date":"2025-03-03"}`)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.False(t, toggled.Data.HasCompleted("2025-03-03"))

	// Malformed date.
	w = doJSON(t, r, "POST", "/api/habits/"+created.Data.ID+"/toggle", token, `{"date":"03/03/2025"}`)
	assert.Equal(t, 400, w.Code)
}

func TestNoteEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/api/notes", token, `{"content":"Remember to stretch","priority":"high"}`)
	require.Equal(t, 201, w.Code, w.Body.String())
	var created struct {
		Data internal.Note `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, "POST", "/api/notes", token, `{"content":"x","priority":"urgent"}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "POST", "/api/notes/"+created.Data.ID+"/toggle", token, "")
	require.Equal(t, 200, w.Code)
	var toggled struct {
		Data internal.Note `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Data.IsCompleted)
	assert.NotNil(t, toggled.Data.CompletedAt)
}

func TestAdvanceDayClamped(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/api/advance-day", token, "")
	require.Equal(t, 200, w.Code)
	var resp struct {
		User internal.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.User.CurrentDay)
}

func TestCalendarEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "GET", "/api/calendar?month=2024-02", token, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var resp struct {
		Data struct {
			Month         string `json:"month"`
			WeekdayOffset int    `json:"weekday_offset"`
			Days          []struct {
				Date       string  `json:"date"`
				Completion float64 `json:"completion"`
			} `json:"days"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-02", resp.Data.Month)
	assert.Len(t, resp.Data.Days, 29)
	assert.Equal(t, 4, resp.Data.WeekdayOffset)
	assert.Equal(t, "2024-02-01", resp.Data.Days[0].Date)

	w = doJSON(t, r, "GET", "/api/calendar?month=February", token, "")
	assert.Equal(t, 400, w.Code)
}

func TestChatUnavailableWithoutClient(t *testing.T) {
	r, _ := setupRouter(t)
	token := registerUser(t, r, "a@b.com")

	w := doJSON(t, r, "POST", "/api/chat", token, `{"message":"hi"}`)
	assert.Equal(t, 404, w.Code)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	r, app := setupRouter(t)
	token := registerUser(t, r, "user@b.com")

	w := doJSON(t, r, "GET", "/auth/all/", token, "")
	assert.Equal(t, 403, w.Code)

	// Promote and retry.
	ctx := context.Background()
	user, err := app.users.Authenticate(ctx, "user@b.com", "Password1")
	require.NoError(t, err)
	user.IsAdmin = true
	require.NoError(t, app.users.UpdateUser(ctx, user))

	w = doJSON(t, r, "GET", "/auth/all/", token, "")
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Users []internal.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 1)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	r, app := setupRouter(t)
	adminToken := registerUser(t, r, "admin@b.com")
	userToken := registerUser(t, r, "user@b.com")

	ctx := context.Background()
	admin, err := app.users.Authenticate(ctx, "admin@b.com", "Password1")
	require.NoError(t, err)
	admin.IsAdmin = true
	require.NoError(t, app.users.UpdateUser(ctx, admin))

	user, err := app.users.Authenticate(ctx, "user@b.com", "Password1")
	require.NoError(t, err)

	w := doJSON(t, r, "POST", "/auth/toggle-status/"+user.ID+"/", adminToken, "")
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doJSON(t, r, "GET", "/auth/profile/", userToken, "")
	assert.Equal(t, 401, w.Code)
}
