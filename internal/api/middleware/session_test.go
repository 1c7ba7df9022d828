package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashes(t *testing.T) {
	router := setupTestRouter()
	router.Use(SessionMiddleware(testConfig()))
	router.GET("/add", func(c *gin.Context) {
		AddFlash(c, FlashSuccess, "first")
		AddFlash(c, FlashDanger, "second")
		require.NoError(t, SaveSession(c))
		c.Status(http.StatusNoContent)
	})
	router.GET("/show", func(c *gin.Context) {
		c.JSON(http.StatusOK, Flashes(c))
	})

	add := httptest.NewRecorder()
	router.ServeHTTP(add, httptest.NewRequest(http.MethodGet, "/add", nil))
	require.Equal(t, http.StatusNoContent, add.Code)

	cookie := add.Result().Cookies()
	require.NotEmpty(t, cookie)
	assert.Equal(t, "test_session", cookie[0].Name)
	assert.True(t, cookie[0].HttpOnly)

	t.Run("Flashes are shown once in order", func(t *testing.T) {
		show := httptest.NewRecorder()
		router.ServeHTTP(show, withCookies(t, httptest.NewRequest(http.MethodGet, "/show", nil), add.Header()))
		assert.JSONEq(t, `[
			{"Category":"success","Message":"first"},
			{"Category":"danger","Message":"second"}
		]`, show.Body.String())

		again := httptest.NewRecorder()
		router.ServeHTTP(again, withCookies(t, httptest.NewRequest(http.MethodGet, "/show", nil), show.Header()))
		assert.Equal(t, "null", again.Body.String())
	})
}

func TestSessionToken(t *testing.T) {
	router := setupTestRouter()
	router.Use(SessionMiddleware(testConfig()))
	router.GET("/set", func(c *gin.Context) {
		SetSessionToken(c, "tok")
		require.NoError(t, SaveSession(c))
		c.Status(http.StatusNoContent)
	})
	router.GET("/get", func(c *gin.Context) {
		c.String(http.StatusOK, SessionToken(c))
	})
	router.GET("/clear", func(c *gin.Context) {
		ClearSessionToken(c)
		require.NoError(t, SaveSession(c))
		c.Status(http.StatusNoContent)
	})

	set := httptest.NewRecorder()
	router.ServeHTTP(set, httptest.NewRequest(http.MethodGet, "/set", nil))

	get := httptest.NewRecorder()
	router.ServeHTTP(get, withCookies(t, httptest.NewRequest(http.MethodGet, "/get", nil), set.Header()))
	assert.Equal(t, "tok", get.Body.String())

	clear := httptest.NewRecorder()
	router.ServeHTTP(clear, withCookies(t, httptest.NewRequest(http.MethodGet, "/clear", nil), set.Header()))

	after := httptest.NewRecorder()
	router.ServeHTTP(after, withCookies(t, httptest.NewRequest(http.MethodGet, "/get", nil), clear.Header()))
	assert.Equal(t, "", after.Body.String())

	t.Run("Tampered cookie yields an empty session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		req.AddCookie(&http.Cookie{Name: "test_session", Value: "tampered"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "", w.Body.String())
	})
}
