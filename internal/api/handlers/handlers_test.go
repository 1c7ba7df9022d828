package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/robcowart/portfolio/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeNext(t *testing.T) {
	testCases := []struct {
		next string
		want string
	}{
		{"", dashboardPath},
		{"/admin/skills", "/admin/skills"},
		{"/admin/blog/edit/3", "/admin/blog/edit/3"},
		{"/admin/login", dashboardPath},
		{"/admin/login?next=/admin/skills", dashboardPath},
		{"//evil.example.com/admin/", dashboardPath},
		{"https://evil.example.com/admin/", dashboardPath},
		{"/admin/\\evil", dashboardPath},
		{"/", dashboardPath},
	}

	for _, tc := range testCases {
		t.Run(tc.next, func(t *testing.T) {
			assert.Equal(t, tc.want, safeNext(tc.next))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	require.NoError(t, RegisterValidators())

	t.Run("Validation errors are keyed by field", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(SkillForm{Name: "", Level: 150, Category: "Lang"})
		require.Error(t, err)

		errs := fieldErrors(err)
		assert.Equal(t, "This field is required.", errs["Name"])
		assert.Equal(t, "Must be at most 100.", errs["Level"])
		assert.NotContains(t, errs, "Category")
	})

	t.Run("Whitespace-only values count as missing", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(SkillForm{Name: "   ", Level: 50, Category: "\t "})
		require.Error(t, err)

		errs := fieldErrors(err)
		assert.Equal(t, "This field is required.", errs["Name"])
		assert.Equal(t, "This field is required.", errs["Category"])
	})

	t.Run("Relative image paths are accepted", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(ProjectForm{
			Title:       "Site",
			Description: "d",
			ImageURL:    "/static/img/me.png",
			GithubLink:  "github.com/me/site",
		})
		assert.NoError(t, err)
	})

	t.Run("Other errors are form errors", func(t *testing.T) {
		errs := fieldErrors(errors.New("strconv.ParseInt: parsing \"x\": invalid syntax"))
		assert.Equal(t, map[string]string{"Form": "The form contains invalid values."}, errs)
	})
}

func TestBindErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	bind := func(values url.Values) map[string]string {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/skills/add", strings.NewReader(values.Encode()))
		c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var form SkillForm
		err := c.ShouldBind(&form)
		require.Error(t, err)
		return bindErrors(c, &form, err)
	}

	t.Run("Non-numeric level is a field error", func(t *testing.T) {
		errs := bind(url.Values{"name": {"Go"}, "level": {"abc"}, "category": {"Lang"}})
		assert.Equal(t, map[string]string{"Level": "Must be a whole number."}, errs)
	})

	t.Run("Validation errors pass through", func(t *testing.T) {
		errs := bind(url.Values{"name": {"Go"}, "level": {"0"}, "category": {"Lang"}})
		assert.Equal(t, "This field is required.", errs["Level"])
	})
}

func TestCheckDeleteTargets(t *testing.T) {
	all := []models.Kind{
		models.KindProject,
		models.KindSkill,
		models.KindCertification,
		models.KindBlogPost,
		models.KindMessage,
	}

	t.Run("Matching registry", func(t *testing.T) {
		assert.NoError(t, checkDeleteTargets(all))
	})

	t.Run("Tag for unmanaged kind", func(t *testing.T) {
		err := checkDeleteTargets(all[:4])
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"message"`)
	})

	t.Run("Managed kind without tag", func(t *testing.T) {
		err := checkDeleteTargets(append(all, models.Kind("visit")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `kind "visit" has no delete tag`)
	})
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestFormsApply(t *testing.T) {
	t.Run("Project blanks become nil links", func(t *testing.T) {
		var p models.Project
		require.NoError(t, ProjectForm{Title: " Site ", Description: "d", GithubLink: " "}.apply(&p))
		assert.Equal(t, "Site", p.Title)
		assert.Nil(t, p.GithubLink)
		assert.Nil(t, p.LiveLink)
	})

	t.Run("Edit form round trips a project", func(t *testing.T) {
		link := "https://github.com/me/site"
		p := &models.Project{ID: 1, Title: "Site", Description: "d", GithubLink: &link}

		form := projectForm(p)
		assert.Equal(t, link, form.GithubLink)
		assert.Empty(t, form.LiveLink)
	})

	t.Run("New skill form has defaults", func(t *testing.T) {
		form := skillForm(&models.Skill{})
		assert.Equal(t, 80, form.Level)
		assert.Equal(t, models.DefaultSkillCategory, form.Category)

		form = skillForm(&models.Skill{ID: 3, Name: "Go", Level: 95, Category: "Lang"})
		assert.Equal(t, 95, form.Level)
		assert.Equal(t, "Lang", form.Category)
	})

	t.Run("Certification date is parsed", func(t *testing.T) {
		var c models.Certification
		require.NoError(t, CertificationForm{Name: "CKA", Issuer: "CNCF", DateIssued: "2023-04-01"}.apply(&c))
		assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), c.DateIssued)

		assert.Error(t, CertificationForm{DateIssued: "April"}.apply(&c))
		assert.Equal(t, "2023-04-01", certificationForm(&c).DateIssued)
		assert.Empty(t, certificationForm(&models.Certification{}).DateIssued)
	})
}
