// Package database provides database connection management, migrations, and data access methods for the portfolio.
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnknownKind is returned for an entity kind the database does not manage
	ErrUnknownKind = errors.New("unknown entity kind")
)

// deletable lists the entity kinds that can be removed by id
var deletable = map[models.Kind]func() any{
	models.KindProject:       func() any { return &models.Project{} },
	models.KindSkill:         func() any { return &models.Skill{} },
	models.KindCertification: func() any { return &models.Certification{} },
	models.KindBlogPost:      func() any { return &models.BlogPost{} },
	models.KindMessage:       func() any { return &models.Message{} },
}

// Database represents the database connection and operations
type Database struct {
	db     *gorm.DB
	dbType string
}

// New creates a new database connection
func New(cfg *config.Config) (*Database, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	var db *gorm.DB
	var err error

	switch cfg.Database.Type {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLite.Path+"?_foreign_keys=on"), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Database.Postgres.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	switch cfg.Database.Type {
	case "sqlite":
		sqlDB.SetMaxOpenConns(1) // SQLite only allows one writer at a time
	case "postgres":
		if cfg.Database.Postgres.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.Database.Postgres.MaxOpenConns)
		}
		if cfg.Database.Postgres.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.Database.Postgres.MaxIdleConns)
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		db:     db,
		dbType: cfg.Database.Type,
	}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the tables of every entity
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying gorm handle for direct queries
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Type returns the configured database type
func (d *Database) Type() string {
	return d.dbType
}

// Kinds returns the entity kinds accepted by Delete
func (d *Database) Kinds() []models.Kind {
	kinds := make([]models.Kind, 0, len(deletable))
	for k := range deletable {
		kinds = append(kinds, k)
	}
	return kinds
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

func (d *Database) first(ctx context.Context, dest any, id uint) error {
	return translate(d.db.WithContext(ctx).First(dest, id).Error)
}

// save inserts rows with a zero primary key and updates the rest
func (d *Database) save(ctx context.Context, value any) error {
	return translate(d.db.WithContext(ctx).Save(value).Error)
}

func (d *Database) count(ctx context.Context, model any, query ...any) (int64, error) {
	var n int64
	tx := d.db.WithContext(ctx).Model(model)
	if len(query) > 0 {
		tx = tx.Where(query[0], query[1:]...)
	}
	err := tx.Count(&n).Error
	return n, err
}

// Delete removes the row of the given kind with the given id
func (d *Database) Delete(ctx context.Context, kind models.Kind, id uint) error {
	newModel, ok := deletable[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	res := d.db.WithContext(ctx).Delete(newModel(), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// User operations

// CreateUser creates a new user
func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	return translate(d.db.WithContext(ctx).Create(user).Error)
}

// GetUser retrieves a user by ID
func (d *Database) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := d.first(ctx, &user, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (d *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// IsSetupComplete checks if the admin account has been created
func (d *Database) IsSetupComplete(ctx context.Context) (bool, error) {
	n, err := d.count(ctx, &models.User{})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Project operations

// ListProjects retrieves all projects, newest first
func (d *Database) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&projects).Error
	return projects, err
}

// GetProject retrieves a project by ID
func (d *Database) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := d.first(ctx, &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProject inserts or updates a project
func (d *Database) SaveProject(ctx context.Context, p *models.Project) error {
	return d.save(ctx, p)
}

// CountProjects returns the number of projects
func (d *Database) CountProjects(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Project{})
}

// Skill operations

// ListSkills retrieves all skills ordered by name
func (d *Database) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := d.db.WithContext(ctx).Order("name").Find(&skills).Error
	return skills, err
}

// ListSkillsByInsertion retrieves all skills in the order they were created
func (d *Database) ListSkillsByInsertion(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := d.db.WithContext(ctx).Order("id").Find(&skills).Error
	return skills, err
}

// GetSkill retrieves a skill by ID
func (d *Database) GetSkill(ctx context.Context, id uint) (*models.Skill, error) {
	var s models.Skill
	if err := d.first(ctx, &s, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSkill inserts or updates a skill
func (d *Database) SaveSkill(ctx context.Context, s *models.Skill) error {
	return d.save(ctx, s)
}

// CountSkills returns the number of skills
func (d *Database) CountSkills(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Skill{})
}

// Certification operations

// ListCertifications retrieves all certifications, most recently issued first
func (d *Database) ListCertifications(ctx context.Context) ([]models.Certification, error) {
	var certs []models.Certification
	err := d.db.WithContext(ctx).Order("date_issued DESC").Order("id DESC").Find(&certs).Error
	return certs, err
}

// GetCertification retrieves a certification by ID
func (d *Database) GetCertification(ctx context.Context, id uint) (*models.Certification, error) {
	var c models.Certification
	if err := d.first(ctx, &c, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveCertification inserts or updates a certification
func (d *Database) SaveCertification(ctx context.Context, c *models.Certification) error {
	return d.save(ctx, c)
}

// CountCertifications returns the number of certifications
func (d *Database) CountCertifications(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Certification{})
}

// Blog post operations

// ListBlogPosts retrieves blog posts, newest first. A positive limit caps the result.
func (d *Database) ListBlogPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	tx := d.db.WithContext(ctx).Order("date_posted DESC").Order("id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&posts).Error
	return posts, err
}

// GetBlogPost retrieves a blog post by ID
func (d *Database) GetBlogPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	var b models.BlogPost
	if err := d.first(ctx, &b, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBlogPostBySlug retrieves a blog post by slug
func (d *Database) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var b models.BlogPost
	err := d.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// SaveBlogPost inserts or updates a blog post
func (d *Database) SaveBlogPost(ctx context.Context, b *models.BlogPost) error {
	return d.save(ctx, b)
}

// Message operations

// CreateMessage stores a contact form submission
func (d *Database) CreateMessage(ctx context.Context, m *models.Message) error {
	return translate(d.db.WithContext(ctx).Create(m).Error)
}

// ListMessages retrieves all messages, newest first
func (d *Database) ListMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.WithContext(ctx).Order("timestamp DESC").Order("id DESC").Find(&messages).Error
	return messages, err
}

// CountUnreadMessages returns the number of messages not yet marked read
func (d *Database) CountUnreadMessages(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Message{}, "is_read = ?", false)
}

// Visit operations

// CreateVisit appends a visit to the log
func (d *Database) CreateVisit(ctx context.Context, v *models.Visit) error {
	return d.db.WithContext(ctx).Create(v).Error
}

// CountVisits returns the number of logged visits
func (d *Database) CountVisits(ctx context.Context) (int64, error) {
	return d.count(ctx, &models.Visit{})
}
