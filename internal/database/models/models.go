// Package models defines the data structures for database entities of the
// portfolio: the admin user, the content managed through the admin panel,
// contact messages and the visit log.
package models

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// DefaultProjectImage is shown for projects saved without an image
const DefaultProjectImage = "https://placehold.co/600x400/2d3748/ffffff?text=Project"

// DefaultSkillCategory is used for skills saved without a category
const DefaultSkillCategory = "Programming Language"

// DefaultAuthor is the byline of blog posts
const DefaultAuthor = "Admin"

// User represents the admin account
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:200;not null"`
}

// Project represents a portfolio project
type Project struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:120;not null"`
	Description string    `gorm:"type:text;not null"`
	GithubLink  *string   `gorm:"size:200"`
	LiveLink    *string   `gorm:"size:200"`
	ImageURL    string    `gorm:"size:200"`
	Tags        string    `gorm:"size:200"`
	CreatedAt   time.Time `gorm:"index"`
}

// TagList returns the comma separated tags with blanks removed
func (p Project) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(p.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Skill represents a skill with a proficiency level in percent
type Skill struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:80;uniqueIndex;not null"`
	Level    int    `gorm:"not null;default:80"`
	Category string `gorm:"size:80;default:Programming Language"`
}

// SkillGroup is one category of skills on the public page
type SkillGroup struct {
	Category string
	Skills   []Skill
}

// GroupSkills groups skills by category. Categories appear in the order in
// which they are first encountered and skills keep their relative order.
func GroupSkills(skills []Skill) []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

// Certification represents an earned certification
type Certification struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"size:120;not null"`
	Issuer         string    `gorm:"size:120;not null"`
	DateIssued     time.Time `gorm:"type:date;not null;index"`
	CredentialLink *string   `gorm:"size:200"`
}

// Message is a contact form submission
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:120;not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
	IsRead    bool      `gorm:"not null;default:false"`
}

// BlogPost represents a blog article. Slug is derived from Title on save.
type BlogPost struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"size:200;not null"`
	Content    string    `gorm:"type:text;not null"`
	Author     string    `gorm:"size:100;not null;default:Admin"`
	DatePosted time.Time `gorm:"not null;index"`
	Slug       string    `gorm:"size:200;uniqueIndex;not null"`
}

// Excerpt returns at most n runes of the content
func (b BlogPost) Excerpt(n int) string {
	runes := []rune(b.Content)
	if len(runes) <= n {
		return b.Content
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// Visit is one logged request to a public page
type Visit struct {
	ID        uint      `gorm:"primaryKey"`
	IPAddress string    `gorm:"size:45"`
	UserAgent *string   `gorm:"size:255"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

// Slugify derives the URL-safe slug of a title
func Slugify(title string) string {
	return slug.Make(title)
}

// Kind names a deletable entity type
type Kind string

const (
	KindProject       Kind = "project"
	KindSkill         Kind = "skill"
	KindCertification Kind = "certification"
	KindBlogPost      Kind = "blogpost"
	KindMessage       Kind = "message"
)

// All returns every entity migrated by the application
func All() []any {
	return []any{
		&User{},
		&Project{},
		&Skill{},
		&Certification{},
		&Message{},
		&BlogPost{},
		&Visit{},
	}
}
