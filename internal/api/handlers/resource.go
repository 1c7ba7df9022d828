package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/api/middleware"
	"github.com/robcowart/portfolio/internal/service"
	"go.uber.org/zap"
)

// resource wires the list and add/edit screens of one content type.
// E is the entity and F its form.
type resource[E any, F interface{ apply(*E) error }] struct {
	name     string
	listPath string
	listPage string
	formPage string

	// uniqueKey is the form field blamed for duplicate key errors
	uniqueKey string
	uniqueMsg string

	list   func(context.Context) ([]E, error)
	get    func(context.Context, uint) (*E, error)
	save   func(context.Context, *E) error
	form   func(*E) F
	logger *zap.Logger
}

// List renders every entity of the resource
func (r *resource[E, F]) List(c *gin.Context) {
	items, err := r.list(c.Request.Context())
	if err != nil {
		serverError(c, r.logger, "Failed to list "+r.name, err)
		return
	}
	render(c, http.StatusOK, r.listPage, gin.H{
		"Title": r.name,
		"Items": items,
	})
}

// Form renders the empty add form or the edit form of an existing entity
func (r *resource[E, F]) Form(c *gin.Context) {
	entity, isNew, ok := r.load(c)
	if !ok {
		return
	}
	r.renderForm(c, http.StatusOK, r.form(entity), nil, isNew)
}

// Save validates the submitted form and inserts or updates the entity
func (r *resource[E, F]) Save(c *gin.Context) {
	entity, isNew, ok := r.load(c)
	if !ok {
		return
	}

	var form F
	if err := c.ShouldBind(&form); err != nil {
		r.renderForm(c, http.StatusBadRequest, form, bindErrors(c, &form, err), isNew)
		return
	}
	if err := form.apply(entity); err != nil {
		r.renderForm(c, http.StatusBadRequest, form, map[string]string{"Form": err.Error()}, isNew)
		return
	}

	if err := r.save(c.Request.Context(), entity); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicate):
			r.renderForm(c, http.StatusBadRequest, form, map[string]string{r.uniqueKey: r.uniqueMsg}, isNew)
		case errors.Is(err, service.ErrEmptySlug):
			r.renderForm(c, http.StatusBadRequest, form, map[string]string{"Title": "Title must contain letters or digits."}, isNew)
		default:
			serverError(c, r.logger, "Failed to save "+r.name, err)
		}
		return
	}

	r.logger.Info("Content saved", zap.String("type", r.name), zap.Bool("created", isNew))
	redirect(c, r.logger, middleware.FlashSuccess, r.name+" saved successfully!", r.listPath)
}

// load fetches the entity named by the id parameter or returns a new one.
// It renders the 404 page and reports false when the id does not exist.
func (r *resource[E, F]) load(c *gin.Context) (*E, bool, bool) {
	raw := c.Param("id")
	if raw == "" {
		return new(E), true, true
	}

	id, err := parseID(raw)
	if err != nil {
		NotFound(c)
		return nil, false, false
	}

	entity, err := r.get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c)
		} else {
			serverError(c, r.logger, "Failed to load "+r.name, err)
		}
		return nil, false, false
	}
	return entity, false, true
}

func (r *resource[E, F]) renderForm(c *gin.Context, status int, form F, errs map[string]string, isNew bool) {
	if errs == nil {
		errs = map[string]string{}
	}
	render(c, status, r.formPage, gin.H{
		"Title":  r.name,
		"Form":   form,
		"Errors": errs,
		"IsNew":  isNew,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
