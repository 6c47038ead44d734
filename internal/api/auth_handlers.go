package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name                 *string `json:"name"`
	CurrentDay           *int    `json:"current_day"`
	IsOnboardingComplete *bool   `json:"is_onboarding_complete"`
}

func Register(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request body")
			return
		}
		if err := auth.ValidateEmail(req.Email); err != nil {
			HandleError(c, app.Logger(), err, "Registration rejected")
			return
		}
		if err := auth.ValidatePassword(req.Password); err != nil {
			HandleError(c, app.Logger(), err, "Registration rejected")
			return
		}

		user, err := app.Users().CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to register user")
			return
		}

		token := uuid.NewString()
		if err := app.Users().SetToken(c.Request.Context(), user.ID, token); err != nil {
			HandleError(c, app.Logger(), err, "Failed to issue token")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

func Login(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request body")
			return
		}

		user, err := app.Users().Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			HandleError(c, app.Logger(), err, "Login rejected")
			return
		}

		token := uuid.NewString()
		if err := app.Users().SetToken(c.Request.Context(), user.ID, token); err != nil {
			HandleError(c, app.Logger(), err, "Failed to issue token")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

func Logout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		if err := app.Users().SetToken(c.Request.Context(), user.ID, ""); err != nil {
			HandleError(c, app.Logger(), err, "Failed to sign out")
			return
		}
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}

func Profile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func UpdateProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request body")
			return
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.CurrentDay != nil {
			day := *req.CurrentDay
			if day < 1 || day > internal.ProgramLength {
				HandleError(c, app.Logger(), internal.ValidationError("current_day out of range"), "Update rejected")
				return
			}
			// The store keeps this monotone; a lower value is a no-op.
			user.CurrentDay = day
		}
		if req.IsOnboardingComplete != nil {
			user.IsOnboardingComplete = *req.IsOnboardingComplete
		}

		if err := app.Users().UpdateUser(c.Request.Context(), user); err != nil {
			HandleError(c, app.Logger(), err, "Failed to update profile")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// CompleteOnboarding stores the questionnaire, generates the default
// program, marks onboarding complete, and builds the notification schedule.
func CompleteOnboarding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		ctx := c.Request.Context()

		var req service.QuestionnaireRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request body")
			return
		}
		if err := service.ValidateQuestionnaireRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Questionnaire validation failed")
			return
		}

		q := req.Questionnaire()
		if err := app.Data().SaveQuestionnaire(ctx, user.Email, q); err != nil {
			HandleError(c, app.Logger(), err, "Failed to save questionnaire")
			return
		}
		goals, err := service.EnsureProgram(ctx, app.Data(), user, q)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to generate program")
			return
		}
		if err := app.Data().SetOnboardingComplete(ctx, user.Email); err != nil {
			HandleError(c, app.Logger(), err, "Failed to mark onboarding complete")
			return
		}

		user.IsOnboardingComplete = true
		if user.CurrentDay < 1 {
			user.CurrentDay = 1
		}
		if err := app.Users().UpdateUser(ctx, user); err != nil {
			HandleError(c, app.Logger(), err, "Failed to update profile")
			return
		}

		rescheduleNotifications(c, app, user)
		HandleCreated(c, app.Logger(), goals)
	}
}

func AdvanceDay(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		ctx := c.Request.Context()

		day := user.CurrentDay + 1
		if day > internal.ProgramLength {
			day = internal.ProgramLength
		}
		if day > user.CurrentDay {
			user.CurrentDay = day
		}
		if err := app.Data().SetCurrentDay(ctx, user.Email, user.CurrentDay); err != nil {
			HandleError(c, app.Logger(), err, "Failed to persist day")
			return
		}
		if err := app.Users().UpdateUser(ctx, user); err != nil {
			HandleError(c, app.Logger(), err, "Failed to update profile")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
