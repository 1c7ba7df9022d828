package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/config"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Secret:     "test-session-secret",
			Lifetime:   time.Hour,
			Issuer:     "portfolio-test",
			CookieName: "test_session",
		},
	}
}

// withCookies copies the cookies set by a response onto the next request.
// Like a browser, the last Set-Cookie for a name wins.
func withCookies(t *testing.T, req *http.Request, resp http.Header) *http.Request {
	t.Helper()
	latest := map[string]*http.Cookie{}
	var order []string
	for _, c := range (&http.Response{Header: resp}).Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(latest[name])
	}
	return req
}
