package middleware

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/config"
)

const sessionTokenKey = "token"

// Flash categories
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-time notice shown on the next rendered page
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// SessionMiddleware installs the signed cookie session
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Security.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(cfg.Session.CookieName, store)
}

// AddFlash queues a flash message. The session is written by SaveSession.
func AddFlash(c *gin.Context, category, message string) {
	sessions.Default(c).AddFlash(Flash{Category: category, Message: message})
}

// SaveSession writes pending session changes. It must run before the response
// body or a redirect is written.
func SaveSession(c *gin.Context) error {
	return sessions.Default(c).Save()
}

// Flashes pops the queued flash messages and saves the session
func Flashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}

// SetSessionToken marks the session as logged in
func SetSessionToken(c *gin.Context, token string) {
	sessions.Default(c).Set(sessionTokenKey, token)
}

// SessionToken returns the token stored in the session, if any
func SessionToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(sessionTokenKey).(string)
	return token
}

// ClearSessionToken logs the session out
func ClearSessionToken(c *gin.Context) {
	sessions.Default(c).Delete(sessionTokenKey)
}
