package service

import (
	"context"
	"fmt"

	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/database/models"
)

// RecentPostsLimit is the number of blog posts shown on the home page
const RecentPostsLimit = 3

// PortfolioService composes the public pages
type PortfolioService struct {
	db *database.Database
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(db *database.Database) *PortfolioService {
	return &PortfolioService{db: db}
}

// Homepage is everything shown on the public index page
type Homepage struct {
	Projects       []models.Project
	SkillGroups    []models.SkillGroup
	Certifications []models.Certification
	RecentPosts    []models.BlogPost
}

// Homepage loads the content of the public index page
func (s *PortfolioService) Homepage(ctx context.Context) (*Homepage, error) {
	projects, err := s.db.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	skills, err := s.db.ListSkillsByInsertion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	certs, err := s.db.ListCertifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}

	posts, err := s.db.ListBlogPosts(ctx, RecentPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}

	return &Homepage{
		Projects:       projects,
		SkillGroups:    models.GroupSkills(skills),
		Certifications: certs,
		RecentPosts:    posts,
	}, nil
}

// BlogPost returns a published post by slug
func (s *PortfolioService) BlogPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.db.GetBlogPostBySlug(ctx, slug)
	return post, mapDBError(err)
}
