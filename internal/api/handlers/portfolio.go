package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/api/middleware"
	"github.com/robcowart/portfolio/internal/service"
	"go.uber.org/zap"
)

const contactAnchor = "/#contact"

// PortfolioHandler serves the public pages and the contact form
type PortfolioHandler struct {
	portfolio *service.PortfolioService
	contact   *service.ContactService
	logger    *zap.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolio *service.PortfolioService, contact *service.ContactService, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolio: portfolio,
		contact:   contact,
		logger:    logger,
	}
}

// Index renders the home page
func (h *PortfolioHandler) Index(c *gin.Context) {
	page, err := h.portfolio.Homepage(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "Failed to load home page", err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{
		"Page": page,
	})
}

// BlogPost renders a single post by slug
func (h *PortfolioHandler) BlogPost(c *gin.Context) {
	post, err := h.portfolio.BlogPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c)
			return
		}
		serverError(c, h.logger, "Failed to load blog post", err)
		return
	}
	render(c, http.StatusOK, "blog_post.html", gin.H{
		"Title": post.Title,
		"Post":  post,
	})
}

// Contact stores a contact form submission and notifies the owner
func (h *PortfolioHandler) Contact(c *gin.Context) {
	_, err := h.contact.Submit(c.Request.Context(), service.ContactRequest{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	})

	switch {
	case err == nil:
		redirect(c, h.logger, middleware.FlashSuccess, "Your message has been sent successfully!", contactAnchor)
	case errors.Is(err, service.ErrMissingFields):
		redirect(c, h.logger, middleware.FlashDanger, "All fields are required.", contactAnchor)
	case errors.Is(err, service.ErrNotificationFailed):
		redirect(c, h.logger, middleware.FlashWarning,
			"Your message was saved, but there was an error sending the email notification.", contactAnchor)
	default:
		serverError(c, h.logger, "Failed to save contact message", err)
	}
}
