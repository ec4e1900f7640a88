package service

import (
	"testing"

	"jobboard/database/model"
	"jobboard/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	setup(t)
	categoryService := CategoryService{}
	seeker := createUser(t, "jdoe", model.RoleJobSeeker)

	_, err := categoryService.CreateCategory(nil, &CategoryRequest{Name: strPtr("Engineering")})
	assert.ErrorIs(t, err, common.ErrForbidden, "anonymous callers may not create categories")

	category, err := categoryService.CreateCategory(seeker, &CategoryRequest{Name: strPtr("Software Development")})
	require.NoError(t, err)
	assert.Equal(t, "software-development", category.Slug, "slug is derived from the name")

	_, err = categoryService.CreateCategory(seeker, &CategoryRequest{Name: strPtr("Software Development")})
	vErr, ok := common.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields, "name")

	_, err = categoryService.CreateCategory(seeker, &CategoryRequest{Name: strPtr("  ")})
	vErr, ok = common.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields, "name")
}

func TestUpdateCategory(t *testing.T) {
	setup(t)
	categoryService := CategoryService{}
	seeker := createUser(t, "jdoe", model.RoleJobSeeker)
	createCategory(t, "Engineering", "engineering")
	createCategory(t, "Design", "design")

	updated, err := categoryService.UpdateCategory(seeker, "design", &CategoryRequest{
		Description: strPtr("Visual and product design."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Design", updated.Name)
	assert.Equal(t, "Visual and product design.", updated.Description)

	_, err = categoryService.UpdateCategory(seeker, "design", &CategoryRequest{Name: strPtr("Engineering")})
	vErr, ok := common.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields, "name")

	_, err = categoryService.UpdateCategory(seeker, "missing", &CategoryRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteCategoryWithJobs(t *testing.T) {
	setup(t)
	categoryService := CategoryService{}
	employer := createUser(t, "techcorp", model.RoleEmployer)
	busy := createCategory(t, "Engineering", "engineering")
	createCategory(t, "Design", "design")
	createJob(t, employer, busy, "Backend Engineer", "backend-engineer")

	err := categoryService.DeleteCategory(employer, busy.Slug)
	vErr, ok := common.AsValidationError(err)
	require.True(t, ok, "categories with jobs are protected")
	assert.Contains(t, vErr.Fields, "category")

	require.NoError(t, categoryService.DeleteCategory(employer, "design"))
	_, err = categoryService.GetCategoryBySlug("design")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategoryJobsCountActiveOnly(t *testing.T) {
	setup(t)
	categoryService := CategoryService{}
	employer := createUser(t, "techcorp", model.RoleEmployer)
	category := createCategory(t, "Engineering", "engineering")
	createJob(t, employer, category, "Backend Engineer", "backend-engineer")
	createJob(t, employer, category, "SRE", "sre", func(j *model.Job) {
		j.IsActive = false
	})

	got, err := categoryService.GetCategoryBySlug(category.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.JobsCount, "inactive jobs do not count")

	jobs, err := categoryService.CategoryJobs(category.Slug)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "backend-engineer", jobs[0].Slug)
}

func TestListCategories(t *testing.T) {
	setup(t)
	categoryService := CategoryService{}
	createCategory(t, "Engineering", "engineering")
	createCategory(t, "Design", "design")
	createCategory(t, "Marketing", "marketing")

	all, err := categoryService.ListCategories(CategoryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Design", all[0].Name, "default ordering is by name")

	found, err := categoryService.ListCategories(CategoryQuery{Search: "market"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Marketing", found[0].Name)
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{"created_at": "jobs.created_at", "title": "jobs.title"}

	tests := []struct {
		ordering string
		want     string
	}{
		{"", "jobs.created_at DESC"},
		{"title", "jobs.title"},
		{"-title", "jobs.title DESC"},
		{"created_at", "jobs.created_at"},
		{"salary; DROP TABLE jobs", "jobs.created_at DESC"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, orderClause(tc.ordering, allowed, "jobs.created_at DESC"))
	}
}
