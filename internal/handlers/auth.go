package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/constants"
	apierrors "github.com/yukikurage/notes-app/internal/errors"
	"github.com/yukikurage/notes-app/internal/metrics"
	"github.com/yukikurage/notes-app/internal/middleware"
	"github.com/yukikurage/notes-app/internal/services"
	"github.com/yukikurage/notes-app/internal/session"
)

// AuthHandler coordinates registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username  string `form:"username" json:"username" binding:"required,min=4,max=20"`
	Password  string `form:"password" json:"password" binding:"required,min=8,max=20"`
	Email     string `form:"email" json:"email" binding:"required,email,max=50"`
	FirstName string `form:"first_name" json:"first_name" binding:"required,min=2,max=30"`
	LastName  string `form:"last_name" json:"last_name" binding:"required,min=2,max=30"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required,min=4,max=20"`
	Password string `form:"password" json:"password" binding:"required,min=8,max=20"`
}

// Home sends visitors to the registration page.
func (h *AuthHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/register")
}

// RegisterForm returns what a client needs to render the registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.form(c)
}

// LoginForm returns what a client needs to render the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.form(c)
}

func (h *AuthHandler) form(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	form, err := session.PrepareForm(sessions.Default(c))
	if err != nil {
		middleware.Deny(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Register creates an account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.ValidationFailed(c, fieldErrors(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.RecordAuthEvent("register", "failure")
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.AlreadyExists(c, apierrors.FieldErrors{"username": {"Username already taken."}})
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.AlreadyExists(c, apierrors.FieldErrors{"email": {"Email already registered."}})
		default:
			middleware.Deny(c, err)
		}
		return
	}

	s := sessions.Default(c)
	s.AddFlash(fmt.Sprintf("Created account for %s", user.Username))
	if err := session.Establish(s, user.Username); err != nil {
		middleware.Deny(c, err)
		return
	}

	metrics.RecordAuthEvent("register", "success")
	slog.Info("user registered", "request_id", middleware.GetRequestID(c), "username", user.Username)
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

// Login authenticates credentials and binds the session.
func (h *AuthHandler) Login(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.ValidationFailed(c, fieldErrors(err))
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.RecordAuthEvent("login", "failure")
			apierrors.InvalidCredentials(c, apierrors.FieldErrors{"username": {constants.FlashBadLogin}})
			return
		}
		middleware.Deny(c, err)
		return
	}

	if err := session.Establish(sessions.Default(c), user.Username); err != nil {
		middleware.Deny(c, err)
		return
	}

	metrics.RecordAuthEvent("login", "success")
	slog.Info("user logged in", "request_id", middleware.GetRequestID(c), "username", user.Username)
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

// Logout clears the session. The forgery token is checked by middleware first.
func (h *AuthHandler) Logout(c *gin.Context) {
	s := sessions.Default(c)
	if err := session.Clear(s); err != nil {
		middleware.Deny(c, err)
		return
	}
	s.AddFlash(constants.FlashLoggedOut)
	if err := s.Save(); err != nil {
		slog.Warn("failed to save flash", "request_id", middleware.GetRequestID(c), "error", err)
	}

	metrics.RecordAuthEvent("logout", "success")
	c.Redirect(http.StatusFound, "/login")
}

// redirectIfAuthenticated sends an already logged-in client to its profile.
func redirectIfAuthenticated(c *gin.Context) bool {
	username, ok := middleware.GetUsername(c)
	if !ok {
		return false
	}
	c.Redirect(http.StatusFound, profilePath(username))
	return true
}

func profilePath(username string) string {
	return "/users/" + username
}
