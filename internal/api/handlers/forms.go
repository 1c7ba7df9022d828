package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/robcowart/portfolio/internal/database/models"
)

const dateLayout = "2006-01-02"

// RegisterValidators adds the validation tags used by the forms to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("failed to register notblank: %w", err)
	}
	return nil
}

// bindErrors maps a ShouldBind error onto per-field messages. Values that do
// not convert to a numeric field are reported on that field.
func bindErrors(c *gin.Context, form any, err error) map[string]string {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if errs := numericFieldErrors(c, form); len(errs) > 0 {
			return errs
		}
	}
	return fieldErrors(err)
}

func numericFieldErrors(c *gin.Context, form any) map[string]string {
	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	errs := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch f.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			continue
		}
		raw := strings.TrimSpace(c.PostForm(f.Tag.Get("form")))
		if raw == "" {
			continue
		}
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			errs[f.Name] = "Must be a whole number."
		}
	}
	return errs
}

// fieldErrors maps a binding error onto per-field messages keyed by struct field name
func fieldErrors(err error) map[string]string {
	errs := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["Form"] = "The form contains invalid values."
		return errs
	}

	for _, fe := range verrs {
		errs[fe.StructField()] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "url":
		return "Must be a valid URL."
	case "datetime":
		return "Must be a date in YYYY-MM-DD format."
	default:
		return "Invalid value."
	}
}

// optional returns nil for blank input
func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// LoginForm is the admin login form
type LoginForm struct {
	Username string `form:"username" binding:"required,notblank"`
	Password string `form:"password" binding:"required"`
}

// ProjectForm is the add/edit form of a project
type ProjectForm struct {
	Title       string `form:"title" binding:"required,notblank,max=120"`
	Description string `form:"description" binding:"required,notblank"`
	GithubLink  string `form:"github_link" binding:"max=200"`
	LiveLink    string `form:"live_link" binding:"max=200"`
	ImageURL    string `form:"image_url" binding:"max=200"`
	Tags        string `form:"tags" binding:"max=200"`
}

func projectForm(p *models.Project) ProjectForm {
	return ProjectForm{
		Title:       p.Title,
		Description: p.Description,
		GithubLink:  value(p.GithubLink),
		LiveLink:    value(p.LiveLink),
		ImageURL:    p.ImageURL,
		Tags:        p.Tags,
	}
}

func (f ProjectForm) apply(p *models.Project) error {
	p.Title = strings.TrimSpace(f.Title)
	p.Description = f.Description
	p.GithubLink = optional(f.GithubLink)
	p.LiveLink = optional(f.LiveLink)
	p.ImageURL = strings.TrimSpace(f.ImageURL)
	p.Tags = strings.TrimSpace(f.Tags)
	return nil
}

// SkillForm is the add/edit form of a skill
type SkillForm struct {
	Name     string `form:"name" binding:"required,notblank,max=80"`
	Level    int    `form:"level" binding:"required,min=1,max=100"`
	Category string `form:"category" binding:"required,notblank,max=80"`
}

func skillForm(s *models.Skill) SkillForm {
	f := SkillForm{
		Name:     s.Name,
		Level:    s.Level,
		Category: s.Category,
	}
	if s.ID == 0 {
		f.Level = 80
		f.Category = models.DefaultSkillCategory
	}
	return f
}

func (f SkillForm) apply(s *models.Skill) error {
	s.Name = strings.TrimSpace(f.Name)
	s.Level = f.Level
	s.Category = strings.TrimSpace(f.Category)
	return nil
}

// CertificationForm is the add/edit form of a certification
type CertificationForm struct {
	Name           string `form:"name" binding:"required,notblank,max=120"`
	Issuer         string `form:"issuer" binding:"required,notblank,max=120"`
	DateIssued     string `form:"date_issued" binding:"required,datetime=2006-01-02"`
	CredentialLink string `form:"credential_link" binding:"omitempty,url,max=200"`
}

func certificationForm(c *models.Certification) CertificationForm {
	f := CertificationForm{
		Name:           c.Name,
		Issuer:         c.Issuer,
		CredentialLink: value(c.CredentialLink),
	}
	if !c.DateIssued.IsZero() {
		f.DateIssued = c.DateIssued.Format(dateLayout)
	}
	return f
}

func (f CertificationForm) apply(c *models.Certification) error {
	issued, err := time.Parse(dateLayout, f.DateIssued)
	if err != nil {
		return err
	}
	c.Name = strings.TrimSpace(f.Name)
	c.Issuer = strings.TrimSpace(f.Issuer)
	c.DateIssued = issued
	c.CredentialLink = optional(f.CredentialLink)
	return nil
}

// BlogPostForm is the add/edit form of a blog post
type BlogPostForm struct {
	Title   string `form:"title" binding:"required,notblank,max=200"`
	Content string `form:"content" binding:"required,notblank"`
}

func blogPostForm(b *models.BlogPost) BlogPostForm {
	return BlogPostForm{
		Title:   b.Title,
		Content: b.Content,
	}
}

func (f BlogPostForm) apply(b *models.BlogPost) error {
	b.Title = strings.TrimSpace(f.Title)
	b.Content = f.Content
	return nil
}
