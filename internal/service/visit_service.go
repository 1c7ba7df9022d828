package service

import (
	"context"

	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/database/models"
)

// VisitService records requests to the public pages
type VisitService struct {
	db *database.Database
}

// NewVisitService creates a new visit service
func NewVisitService(db *database.Database) *VisitService {
	return &VisitService{db: db}
}

// Record appends one visit. An empty user agent is stored as NULL.
func (s *VisitService) Record(ctx context.Context, ip, userAgent string) error {
	visit := &models.Visit{IPAddress: ip}
	if userAgent != "" {
		visit.UserAgent = &userAgent
	}
	return s.db.CreateVisit(ctx, visit)
}
