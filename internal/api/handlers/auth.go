package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/api/middleware"
	"github.com/robcowart/portfolio/internal/service"
	"go.uber.org/zap"
)

const dashboardPath = "/admin/dashboard"

// AuthHandler handles admin login and logout
type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// LoginPage renders the login form. Logged in admins go to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, err := h.userService.VerifySession(c.Request.Context(), middleware.SessionToken(c)); err == nil {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	h.renderLogin(c, http.StatusOK, LoginForm{}, nil)
}

// Login authenticates the admin and starts the session
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, form, bindErrors(c, &form, err))
		return
	}

	user, token, err := h.userService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			serverError(c, h.logger, "Login failed", err)
			return
		}
		h.logger.Warn("Login failed", zap.String("username", form.Username))
		middleware.AddFlash(c, middleware.FlashDanger, "Invalid username or password.")
		form.Password = ""
		h.renderLogin(c, http.StatusOK, form, nil)
		return
	}

	h.logger.Info("User logged in", zap.String("username", user.Username))
	middleware.SetSessionToken(c, token)
	redirect(c, h.logger, middleware.FlashSuccess, "Logged in successfully.", safeNext(c.Query("next")))
}

// Logout ends the session
func (h *AuthHandler) Logout(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		h.logger.Info("User logged out", zap.String("username", user.Username))
	}
	middleware.ClearSessionToken(c)
	redirect(c, h.logger, middleware.FlashInfo, "You have been logged out.", "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, form LoginForm, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	form.Password = ""
	render(c, status, "admin/login.html", gin.H{
		"Title":  "Login",
		"Form":   form,
		"Errors": errs,
		"Next":   c.Query("next"),
	})
}

// safeNext only allows redirects to admin pages of this site
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, "\\") &&
		next != middleware.LoginPath && !strings.HasPrefix(next, middleware.LoginPath+"?") {
		return next
	}
	return dashboardPath
}
