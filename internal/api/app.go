package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/chat"
	"github.com/shivam041/riseapp/internal/notify"
	"github.com/shivam041/riseapp/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserStore
	Data() *storage.UserData
	Scheduler() *notify.Scheduler
	Chat() *chat.Client // nil when no chat endpoint is configured
}

// Router wires the full REST surface: the auth/profile endpoints consumed
// by the session service's remote tier, the per-entity CRUD endpoints, and
// the admin surface.
func Router(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.POST("/auth/register/", Register(app))
	r.POST("/auth/login/", Login(app))

	authed := r.Group("/", auth.Middleware(app.Users()))
	authed.POST("/auth/logout/", Logout(app))
	authed.GET("/auth/profile/", Profile(app))
	authed.PATCH("/auth/update/", UpdateProfile(app))

	admin := authed.Group("/", auth.AdminOnly())
	admin.GET("/auth/all/", ListUsers(app))
	admin.POST("/auth/toggle-status/:id/", ToggleUserStatus(app))
	admin.DELETE("/auth/delete/:id/", DeleteUser(app))

	api := authed.Group("/api")
	api.POST("/onboarding", CompleteOnboarding(app))
	api.POST("/advance-day", AdvanceDay(app))

	api.GET("/goals", GetGoals(app))
	api.POST("/goals", PostGoal(app))
	api.PATCH("/goals/:id", PatchGoalValue(app))
	api.POST("/goals/:id/toggle", ToggleGoal(app))
	api.DELETE("/goals/:id", DeleteGoal(app))

	api.GET("/tasks", GetTasks(app))
	api.POST("/tasks", PostTask(app))
	api.PUT("/tasks/:id", PutTask(app))
	api.POST("/tasks/:id/toggle", ToggleTask(app))
	api.DELETE("/tasks/:id", DeleteTask(app))

	api.GET("/habits", GetHabits(app))
	api.POST("/habits", PostHabit(app))
	api.POST("/habits/:id/toggle", ToggleHabitDate(app))
	api.DELETE("/habits/:id", DeleteHabit(app))

	api.GET("/notes", GetNotes(app))
	api.POST("/notes", PostNote(app))
	api.POST("/notes/:id/toggle", ToggleNote(app))
	api.DELETE("/notes/:id", DeleteNote(app))

	api.GET("/progress", GetProgress(app))
	api.POST("/progress", PostProgress(app))

	api.GET("/calendar", GetCalendar(app))

	api.POST("/chat", PostChat(app))

	return r
}
