package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/models"
	"github.com/FehCode/financeflow1/internal/session"
	"github.com/FehCode/financeflow1/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the register/login/logout endpoints.
type AuthHandler struct {
	Sessions   *session.Service
	Activities *activity.Logger
	JWTSecret  string
	TokenTTL   time.Duration
}

// NewAuthHandler wires the identity service to the HTTP boundary.
func NewAuthHandler(sessions *session.Service, activities *activity.Logger, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Sessions:   sessions,
		Activities: activities,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	user, err := h.Sessions.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		// no pre-write uniqueness check; the store's unique email index is
		// the backstop against silent duplicates
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email already registered")
			return
		}
		storeError(c, err, "failed to create user")
		return
	}

	h.Activities.Record(c.Request.Context(), user.ID, models.ActivitySignup, "account created")

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user":  publicUser(user),
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.Sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrUserNotFound):
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
		case errors.Is(err, session.ErrInvalidCredentials):
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong email or password")
		default:
			storeError(c, err, "failed to sign in")
		}
		return
	}

	h.Activities.Record(c.Request.Context(), user.ID, models.ActivityLogin, "signed in")

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user":  publicUser(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	h.Activities.Record(c.Request.Context(), user.ID, models.ActivityLogout, "signed out")
	h.Sessions.SignOut()

	util.Success(c, util.Response{
		"message": "signed out",
	})
}

// Me returns the current signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"user": publicUser(user),
	})
}

func publicUser(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"last_login": user.LastLogin,
	}
}
