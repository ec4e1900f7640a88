package service

import (
	"strings"

	"jobboard/database"
	"jobboard/database/model"
	"jobboard/util/common"
	"jobboard/web/access"
)

type CategoryService struct{}

// CategoryRequest is the write payload; Slug is optional and derived
// from Name when absent.
type CategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

type CategoryQuery struct {
	Search   string
	Ordering string
}

var categoryOrderings = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// jobsCountSelect annotates the active-jobs count in a single query.
const jobsCountSelect = "categories.*, " +
	"(SELECT COUNT(*) FROM jobs WHERE jobs.category_id = categories.id AND jobs.is_active = 1) AS jobs_count"

func (s *CategoryService) ListCategories(q CategoryQuery) ([]model.Category, error) {
	db := database.GetDB().Model(&model.Category{}).Select(jobsCountSelect)
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	var categories []model.Category
	err := db.Order(orderClause(q.Ordering, categoryOrderings, "name")).Find(&categories).Error
	return categories, err
}

func (s *CategoryService) GetCategoryBySlug(slugValue string) (*model.Category, error) {
	db := database.GetDB()
	category := &model.Category{}
	err := db.Model(&model.Category{}).Select(jobsCountSelect).
		Where("categories.slug = ?", slugValue).
		First(category).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(principal *model.User, req *CategoryRequest) (*model.Category, error) {
	if !access.CanMutateCategory(principal) {
		return nil, common.ErrForbidden
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, common.NewValidationError("name", "This field is required.")
	}
	name := strings.TrimSpace(*req.Name)

	db := database.GetDB()
	var count int64
	if err := db.Model(&model.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("name", "A category with that name already exists.")
	}

	slugValue := ""
	if req.Slug != nil && *req.Slug != "" {
		slugValue = *req.Slug
	} else {
		derived, err := uniqueSlug("categories", name)
		if err != nil {
			return nil, err
		}
		slugValue = derived
	}

	category := &model.Category{Name: name, Slug: slugValue}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if err := db.Create(category).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, common.NewValidationError("slug", "A category with that slug already exists.")
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(principal *model.User, slugValue string, req *CategoryRequest) (*model.Category, error) {
	if !access.CanMutateCategory(principal) {
		return nil, common.ErrForbidden
	}
	db := database.GetDB()
	category := &model.Category{}
	err := db.Where("slug = ?", slugValue).First(category).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, common.NewValidationError("name", "This field may not be blank.")
		}
		var count int64
		if err := db.Model(&model.Category{}).Where("name = ? AND id <> ?", name, category.Id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, common.NewValidationError("name", "A category with that name already exists.")
		}
		category.Name = name
	}
	if req.Slug != nil && *req.Slug != "" {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if err := db.Save(category).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, common.NewValidationError("slug", "A category with that slug already exists.")
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to delete a category while jobs reference it.
func (s *CategoryService) DeleteCategory(principal *model.User, slugValue string) error {
	if !access.CanMutateCategory(principal) {
		return common.ErrForbidden
	}
	db := database.GetDB()
	category := &model.Category{}
	err := db.Where("slug = ?", slugValue).First(category).Error
	if database.IsNotFound(err) {
		return common.ErrNotFound
	} else if err != nil {
		return err
	}

	var jobs int64
	if err := db.Model(&model.Job{}).Where("category_id = ?", category.Id).Count(&jobs).Error; err != nil {
		return err
	}
	if jobs > 0 {
		return common.NewValidationError("category", "Cannot delete a category that still has jobs.")
	}
	return db.Delete(category).Error
}

// CategoryJobs lists the active jobs of a category with derived fields.
func (s *CategoryService) CategoryJobs(slugValue string) ([]model.Job, error) {
	category, err := s.GetCategoryBySlug(slugValue)
	if err != nil {
		return nil, err
	}
	jobService := JobService{}
	active := true
	return jobService.ListJobs(JobQuery{Category: &category.Id, IsActive: &active})
}
