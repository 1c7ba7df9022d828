package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/auth"
	"github.com/robcowart/portfolio/internal/database/models"
	"go.uber.org/zap"
)

// UserKey is the gin context key of the logged in admin
const UserKey = "user"

// LoginPath is where unauthenticated admin requests are sent
const LoginPath = "/admin/login"

// SessionVerifier resolves a session token to its user
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*models.User, error)
}

// RequireAdmin only lets requests with a valid admin session through. Others
// are redirected to the login page with a notice.
func RequireAdmin(verifier SessionVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := verifier.VerifySession(c.Request.Context(), SessionToken(c))
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidSession) {
				logger.Error("Failed to verify session", zap.Error(err))
			}
			ClearSessionToken(c)
			AddFlash(c, FlashInfo, "Please log in to access this page.")
			if err := SaveSession(c); err != nil {
				logger.Error("Failed to save session", zap.Error(err))
			}
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the admin set by RequireAdmin
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
