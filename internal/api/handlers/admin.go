package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/api/middleware"
	"github.com/robcowart/portfolio/internal/database/models"
	"github.com/robcowart/portfolio/internal/service"
	"go.uber.org/zap"
)

// deleteTarget is where a delete tag points
type deleteTarget struct {
	kind     models.Kind
	label    string
	redirect string
}

// deleteTargets maps the item_type path segment of the delete route
var deleteTargets = map[string]deleteTarget{
	"project":       {kind: models.KindProject, label: "Project", redirect: "/admin/projects"},
	"skill":         {kind: models.KindSkill, label: "Skill", redirect: "/admin/skills"},
	"certification": {kind: models.KindCertification, label: "Certification", redirect: "/admin/certifications"},
	"blogpost":      {kind: models.KindBlogPost, label: "Blogpost", redirect: "/admin/blog"},
	"message":       {kind: models.KindMessage, label: "Message", redirect: "/admin/messages"},
}

// AdminHandler serves the admin dashboard and content screens
type AdminHandler struct {
	content *service.ContentService
	logger  *zap.Logger

	Projects       *resource[models.Project, ProjectForm]
	Skills         *resource[models.Skill, SkillForm]
	Certifications *resource[models.Certification, CertificationForm]
	BlogPosts      *resource[models.BlogPost, BlogPostForm]
}

// NewAdminHandler creates a new admin handler. It fails when the delete
// targets and the kinds managed by the content service disagree.
func NewAdminHandler(content *service.ContentService, logger *zap.Logger) (*AdminHandler, error) {
	if err := checkDeleteTargets(content.Kinds()); err != nil {
		return nil, err
	}

	return &AdminHandler{
		content: content,
		logger:  logger,
		Projects: &resource[models.Project, ProjectForm]{
			name:      "Project",
			listPath:  "/admin/projects",
			listPage:  "admin/projects.html",
			formPage:  "admin/project_form.html",
			uniqueKey: "Title",
			uniqueMsg: "A project with this title already exists.",
			list:      content.ListProjects,
			get:       content.GetProject,
			save:      content.SaveProject,
			form:      projectForm,
			logger:    logger,
		},
		Skills: &resource[models.Skill, SkillForm]{
			name:      "Skill",
			listPath:  "/admin/skills",
			listPage:  "admin/skills.html",
			formPage:  "admin/skill_form.html",
			uniqueKey: "Name",
			uniqueMsg: "A skill with this name already exists.",
			list:      content.ListSkills,
			get:       content.GetSkill,
			save:      content.SaveSkill,
			form:      skillForm,
			logger:    logger,
		},
		Certifications: &resource[models.Certification, CertificationForm]{
			name:      "Certification",
			listPath:  "/admin/certifications",
			listPage:  "admin/certifications.html",
			formPage:  "admin/certification_form.html",
			uniqueKey: "Name",
			uniqueMsg: "This certification already exists.",
			list:      content.ListCertifications,
			get:       content.GetCertification,
			save:      content.SaveCertification,
			form:      certificationForm,
			logger:    logger,
		},
		BlogPosts: &resource[models.BlogPost, BlogPostForm]{
			name:      "Blog post",
			listPath:  "/admin/blog",
			listPage:  "admin/blog.html",
			formPage:  "admin/blog_form.html",
			uniqueKey: "Title",
			uniqueMsg: "A post with this title already exists.",
			list:      content.ListBlogPosts,
			get:       content.GetBlogPost,
			save:      content.SaveBlogPost,
			form:      blogPostForm,
			logger:    logger,
		},
	}, nil
}

// checkDeleteTargets verifies that every delete tag maps to a managed kind
// and every managed kind has a tag
func checkDeleteTargets(kinds []models.Kind) error {
	managed := make(map[models.Kind]bool, len(kinds))
	for _, k := range kinds {
		managed[k] = true
	}

	targeted := make(map[models.Kind]bool, len(deleteTargets))
	var problems []string
	for tag, target := range deleteTargets {
		if !managed[target.kind] {
			problems = append(problems, fmt.Sprintf("tag %q maps to unmanaged kind %q", tag, target.kind))
		}
		targeted[target.kind] = true
	}
	for _, k := range kinds {
		if !targeted[k] {
			problems = append(problems, fmt.Sprintf("kind %q has no delete tag", k))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("invalid delete registry: %v", problems)
	}
	return nil
}

// Index sends /admin/ to the login page
func (h *AdminHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// Dashboard renders the content counters
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.content.Dashboard(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "Failed to load dashboard", err)
		return
	}
	render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title": "Dashboard",
		"Stats": stats,
	})
}

// Messages lists the contact messages, newest first
func (h *AdminHandler) Messages(c *gin.Context) {
	messages, err := h.content.ListMessages(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "Failed to list messages", err)
		return
	}
	render(c, http.StatusOK, "admin/messages.html", gin.H{
		"Title": "Messages",
		"Items": messages,
	})
}

// Delete removes the item named by the item_type and id parameters
func (h *AdminHandler) Delete(c *gin.Context) {
	tag := c.Param("item_type")
	target, ok := deleteTargets[tag]
	if !ok {
		h.logger.Warn("Delete with unknown item type", zap.String("item_type", tag))
		redirect(c, h.logger, middleware.FlashDanger, "Invalid item type.", "/admin/dashboard")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		NotFound(c)
		return
	}

	if err := h.content.Delete(c.Request.Context(), target.kind, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			NotFound(c)
		default:
			serverError(c, h.logger, "Failed to delete item", err)
		}
		return
	}

	h.logger.Info("Item deleted", zap.String("item_type", tag), zap.Uint("id", id))
	redirect(c, h.logger, middleware.FlashSuccess, target.label+" deleted successfully!", target.redirect)
}
