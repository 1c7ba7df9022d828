// Package handlers provides the HTTP handlers of the portfolio: the public
// pages, the contact form, admin login and the admin content screens.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/api/middleware"
	"go.uber.org/zap"
)

// render adds the flashes and the current user to data and renders the named template
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = middleware.Flashes(c)
	if user := middleware.CurrentUser(c); user != nil {
		data["User"] = user
	}
	c.HTML(status, name, data)
}

// redirect queues a flash message and redirects with 302
func redirect(c *gin.Context, logger *zap.Logger, category, message, location string) {
	if message != "" {
		middleware.AddFlash(c, category, message)
	}
	if err := middleware.SaveSession(c); err != nil {
		logger.Error("Failed to save session", zap.Error(err))
	}
	c.Redirect(http.StatusFound, location)
}

// NotFound renders the 404 page
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not found",
		"Code":    http.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
}

// serverError logs err and renders the 500 page
func serverError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg,
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Server error",
		"Code":    http.StatusInternalServerError,
		"Message": "Something went wrong. Please try again later.",
	})
}

// Recovery renders the 500 page for panics
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Server error",
			"Code":    http.StatusInternalServerError,
			"Message": "Something went wrong. Please try again later.",
		})
		c.Abort()
	})
}
