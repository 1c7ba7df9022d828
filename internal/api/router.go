// Package api provides HTTP routing for the portfolio site. It wires together
// handlers, middleware, services and the embedded templates.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/api/handlers"
	"github.com/robcowart/portfolio/internal/api/middleware"
	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/mail"
	"github.com/robcowart/portfolio/internal/service"
	"github.com/robcowart/portfolio/internal/web"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *database.Database, sender mail.Sender, logger *zap.Logger) (*gin.Engine, error) {
	// Set Gin mode
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(handlers.Recovery(logger))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.SessionMiddleware(cfg))

	// Initialize services
	userService := service.NewUserService(db, cfg)
	contentService := service.NewContentService(db)
	portfolioService := service.NewPortfolioService(db)
	contactService := service.NewContactService(db, sender, cfg.Mail, logger)
	visitService := service.NewVisitService(db)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, contactService, logger)
	authHandler := handlers.NewAuthHandler(userService, logger)
	adminHandler, err := handlers.NewAdminHandler(contentService, logger)
	if err != nil {
		return nil, err
	}

	// Static assets are served before the visit logger
	router.StaticFS("/static", http.FS(web.Static()))

	// Public routes
	public := router.Group("/")
	public.Use(middleware.VisitLogger(visitService, logger))
	{
		public.GET("/", portfolioHandler.Index)
		public.POST("/contact", portfolioHandler.Contact)
		public.GET("/blog/:slug", portfolioHandler.BlogPost)
	}

	// Login routes (no session required)
	router.GET("/admin/", adminHandler.Index)
	router.GET("/admin/login", authHandler.LoginPage)
	router.POST("/admin/login", authHandler.Login)

	// Protected routes (require an admin session)
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(userService, logger))
	{
		admin.GET("/logout", authHandler.Logout)
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/messages", adminHandler.Messages)
		admin.GET("/delete/:item_type/:id", adminHandler.Delete)

		projects := adminHandler.Projects
		admin.GET("/projects", projects.List)
		admin.GET("/projects/add", projects.Form)
		admin.POST("/projects/add", projects.Save)
		admin.GET("/projects/edit/:id", projects.Form)
		admin.POST("/projects/edit/:id", projects.Save)

		skills := adminHandler.Skills
		admin.GET("/skills", skills.List)
		admin.GET("/skills/add", skills.Form)
		admin.POST("/skills/add", skills.Save)
		admin.GET("/skills/edit/:id", skills.Form)
		admin.POST("/skills/edit/:id", skills.Save)

		certs := adminHandler.Certifications
		admin.GET("/certifications", certs.List)
		admin.GET("/certifications/add", certs.Form)
		admin.POST("/certifications/add", certs.Save)
		admin.GET("/certifications/edit/:id", certs.Form)
		admin.POST("/certifications/edit/:id", certs.Save)

		posts := adminHandler.BlogPosts
		admin.GET("/blog", posts.List)
		admin.GET("/blog/add", posts.Form)
		admin.POST("/blog/add", posts.Save)
		admin.GET("/blog/edit/:id", posts.Form)
		admin.POST("/blog/edit/:id", posts.Save)
	}

	router.NoRoute(handlers.NotFound)

	return router, nil
}
