package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/database/models"
)

// ContentService manages the entities edited through the admin panel
type ContentService struct {
	db *database.Database
}

// NewContentService creates a new content service
func NewContentService(db *database.Database) *ContentService {
	return &ContentService{db: db}
}

// DashboardStats holds the counters shown on the admin dashboard
type DashboardStats struct {
	Projects       int64
	Skills         int64
	Certifications int64
	UnreadMessages int64
	Visits         int64
}

// Dashboard collects the admin dashboard counters
func (s *ContentService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.Projects, s.db.CountProjects},
		{&stats.Skills, s.db.CountSkills},
		{&stats.Certifications, s.db.CountCertifications},
		{&stats.UnreadMessages, s.db.CountUnreadMessages},
		{&stats.Visits, s.db.CountVisits},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load dashboard: %w", err)
		}
		*c.dst = n
	}
	return &stats, nil
}

// Kinds returns the entity kinds that can be deleted
func (s *ContentService) Kinds() []models.Kind {
	return s.db.Kinds()
}

// Delete removes an entity of the given kind
func (s *ContentService) Delete(ctx context.Context, kind models.Kind, id uint) error {
	return mapDBError(s.db.Delete(ctx, kind, id))
}

// Projects

// ListProjects returns all projects, newest first
func (s *ContentService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.db.ListProjects(ctx)
}

// GetProject returns a project by ID
func (s *ContentService) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	p, err := s.db.GetProject(ctx, id)
	return p, mapDBError(err)
}

// SaveProject inserts or updates a project. A blank image falls back to the placeholder.
func (s *ContentService) SaveProject(ctx context.Context, p *models.Project) error {
	if strings.TrimSpace(p.ImageURL) == "" {
		p.ImageURL = models.DefaultProjectImage
	}
	return mapDBError(s.db.SaveProject(ctx, p))
}

// Skills

// ListSkills returns all skills ordered by name
func (s *ContentService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.db.ListSkills(ctx)
}

// GetSkill returns a skill by ID
func (s *ContentService) GetSkill(ctx context.Context, id uint) (*models.Skill, error) {
	sk, err := s.db.GetSkill(ctx, id)
	return sk, mapDBError(err)
}

// SaveSkill inserts or updates a skill
func (s *ContentService) SaveSkill(ctx context.Context, sk *models.Skill) error {
	if sk.Category == "" {
		sk.Category = models.DefaultSkillCategory
	}
	return mapDBError(s.db.SaveSkill(ctx, sk))
}

// Certifications

// ListCertifications returns all certifications, most recently issued first
func (s *ContentService) ListCertifications(ctx context.Context) ([]models.Certification, error) {
	return s.db.ListCertifications(ctx)
}

// GetCertification returns a certification by ID
func (s *ContentService) GetCertification(ctx context.Context, id uint) (*models.Certification, error) {
	c, err := s.db.GetCertification(ctx, id)
	return c, mapDBError(err)
}

// SaveCertification inserts or updates a certification
func (s *ContentService) SaveCertification(ctx context.Context, c *models.Certification) error {
	return mapDBError(s.db.SaveCertification(ctx, c))
}

// Blog posts

// ListBlogPosts returns all blog posts, newest first
func (s *ContentService) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.db.ListBlogPosts(ctx, 0)
}

// GetBlogPost returns a blog post by ID
func (s *ContentService) GetBlogPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	b, err := s.db.GetBlogPost(ctx, id)
	return b, mapDBError(err)
}

// SaveBlogPost inserts or updates a blog post. The slug is regenerated from
// the current title on every save.
func (s *ContentService) SaveBlogPost(ctx context.Context, b *models.BlogPost) error {
	b.Slug = models.Slugify(b.Title)
	if b.Slug == "" {
		return ErrEmptySlug
	}
	if b.Author == "" {
		b.Author = models.DefaultAuthor
	}
	if b.DatePosted.IsZero() {
		b.DatePosted = time.Now().UTC()
	}
	return mapDBError(s.db.SaveBlogPost(ctx, b))
}

// Messages

// ListMessages returns all contact messages, newest first
func (s *ContentService) ListMessages(ctx context.Context) ([]models.Message, error) {
	return s.db.ListMessages(ctx)
}
