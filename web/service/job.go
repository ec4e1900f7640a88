package service

import (
	"strings"
	"time"

	"jobboard/database"
	"jobboard/database/model"
	"jobboard/util/common"
	"jobboard/web/access"

	"gorm.io/gorm"
)

type JobService struct{}

// JobRequest is the write payload for postings. Pointer fields make
// partial updates explicit: nil means "leave unchanged".
type JobRequest struct {
	Title            *string                `json:"title"`
	Description      *string                `json:"description"`
	Requirements     *string                `json:"requirements"`
	Responsibilities *string                `json:"responsibilities"`
	CategoryId       *int                   `json:"category_id"`
	JobType          *model.JobType         `json:"job_type"`
	ExperienceLevel  *model.ExperienceLevel `json:"experience_level"`
	Location         *string                `json:"location"`
	IsRemote         *bool                  `json:"is_remote"`
	SalaryMin        *float64               `json:"salary_min"`
	SalaryMax        *float64               `json:"salary_max"`
	SalaryCurrency   *string                `json:"salary_currency"`
	IsActive         *bool                  `json:"is_active"`
	Deadline         *time.Time             `json:"deadline"`
}

// JobQuery shapes the public job listing.
type JobQuery struct {
	Category        *int
	Employer        *int
	JobType         model.JobType
	ExperienceLevel model.ExperienceLevel
	IsRemote        *bool
	IsActive        *bool
	Search          string
	Ordering        string
}

var jobOrderings = map[string]string{
	"created_at": "jobs.created_at",
	"title":      "jobs.title",
	"deadline":   "jobs.deadline",
}

// applicationsCountSelect annotates the per-job application count in a
// single aggregate, avoiding a count query per row.
const applicationsCountSelect = "jobs.*, " +
	"(SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id) AS applications_count"

func (s *JobService) scopedQuery(q JobQuery) *gorm.DB {
	db := database.GetDB().Model(&model.Job{}).
		Select(applicationsCountSelect).
		Preload("Category").
		Preload("Employer")
	if q.Category != nil {
		db = db.Where("jobs.category_id = ?", *q.Category)
	}
	if q.Employer != nil {
		db = db.Where("jobs.employer_id = ?", *q.Employer)
	}
	if q.JobType != "" {
		db = db.Where("jobs.job_type = ?", q.JobType)
	}
	if q.ExperienceLevel != "" {
		db = db.Where("jobs.experience_level = ?", q.ExperienceLevel)
	}
	if q.IsRemote != nil {
		db = db.Where("jobs.is_remote = ?", *q.IsRemote)
	}
	if q.IsActive != nil {
		db = db.Where("jobs.is_active = ?", *q.IsActive)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		db = db.Where(
			"LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ? OR LOWER(jobs.location) LIKE ? OR LOWER(jobs.requirements) LIKE ?",
			needle, needle, needle, needle,
		)
	}
	return db
}

// ListJobs is public: every caller sees the same catalog, shaped by
// the filters and ordered by recency unless told otherwise.
func (s *JobService) ListJobs(q JobQuery) ([]model.Job, error) {
	var jobs []model.Job
	err := s.scopedQuery(q).
		Order(orderClause(q.Ordering, jobOrderings, "jobs.created_at DESC")).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		attachJobNames(&jobs[i])
	}
	return jobs, nil
}

func (s *JobService) GetJobBySlug(slugValue string) (*model.Job, error) {
	job := &model.Job{}
	err := database.GetDB().Model(&model.Job{}).
		Select(applicationsCountSelect).
		Preload("Category").
		Preload("Employer").
		Where("jobs.slug = ?", slugValue).
		First(job).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	attachJobNames(job)
	return job, nil
}

// attachJobNames computes the derived display fields from the already
// loaded associations.
func attachJobNames(job *model.Job) {
	if job.Category != nil {
		job.CategoryName = job.Category.Name
	}
	if job.Employer != nil {
		job.EmployerName = job.Employer.EmployerDisplayName()
	}
}

func validateSalary(min, max *float64) error {
	if min != nil && *min < 0 {
		return common.NewValidationError("salary_min", "Ensure this value is greater than or equal to 0.")
	}
	if max != nil && *max < 0 {
		return common.NewValidationError("salary_max", "Ensure this value is greater than or equal to 0.")
	}
	if min != nil && max != nil && *min > *max {
		return common.NewValidationError("salary_min", "Minimum salary cannot exceed maximum salary.")
	}
	return nil
}

// CreateJob creates a posting owned by the calling employer.
func (s *JobService) CreateJob(principal *model.User, req *JobRequest) (*model.Job, error) {
	if !access.CanCreateJob(principal) {
		return nil, common.ErrForbidden
	}

	errs := map[string]string{}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		errs["title"] = "This field is required."
	}
	if req.Description == nil || *req.Description == "" {
		errs["description"] = "This field is required."
	}
	if req.Requirements == nil || *req.Requirements == "" {
		errs["requirements"] = "This field is required."
	}
	if req.Location == nil || *req.Location == "" {
		errs["location"] = "This field is required."
	}
	if req.CategoryId == nil {
		errs["category_id"] = "This field is required."
	}
	if req.JobType != nil && !model.ValidJobType(*req.JobType) {
		errs["job_type"] = "Invalid job type."
	}
	if req.ExperienceLevel != nil && !model.ValidExperienceLevel(*req.ExperienceLevel) {
		errs["experience_level"] = "Invalid experience level."
	}
	if len(errs) > 0 {
		return nil, &common.ValidationError{Fields: errs}
	}
	if err := validateSalary(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}

	db := database.GetDB()
	category := &model.Category{}
	err := db.First(category, *req.CategoryId).Error
	if database.IsNotFound(err) {
		return nil, common.NewValidationError("category_id", "Category does not exist.")
	} else if err != nil {
		return nil, err
	}

	slugValue, err := uniqueSlug("jobs", *req.Title)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:           strings.TrimSpace(*req.Title),
		Slug:            slugValue,
		Description:     *req.Description,
		Requirements:    *req.Requirements,
		CategoryId:      category.Id,
		EmployerId:      principal.Id,
		JobType:         model.JobTypeFullTime,
		ExperienceLevel: model.LevelEntry,
		Location:        *req.Location,
		SalaryCurrency:  "USD",
		IsActive:        true,
	}
	if req.Responsibilities != nil {
		job.Responsibilities = *req.Responsibilities
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.IsRemote != nil {
		job.IsRemote = *req.IsRemote
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil && *req.SalaryCurrency != "" {
		job.SalaryCurrency = *req.SalaryCurrency
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if err := db.Create(job).Error; err != nil {
		return nil, err
	}
	return s.GetJobBySlug(job.Slug)
}

// UpdateJob applies a partial update; only the owning employer may
// touch a posting.
func (s *JobService) UpdateJob(principal *model.User, slugValue string, req *JobRequest) (*model.Job, error) {
	db := database.GetDB()
	job := &model.Job{}
	err := db.Where("slug = ?", slugValue).First(job).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if !access.CanMutateJob(principal, job) {
		return nil, common.ErrForbidden
	}

	if req.JobType != nil && !model.ValidJobType(*req.JobType) {
		return nil, common.NewValidationError("job_type", "Invalid job type.")
	}
	if req.ExperienceLevel != nil && !model.ValidExperienceLevel(*req.ExperienceLevel) {
		return nil, common.NewValidationError("experience_level", "Invalid experience level.")
	}
	min := job.SalaryMin
	max := job.SalaryMax
	if req.SalaryMin != nil {
		min = req.SalaryMin
	}
	if req.SalaryMax != nil {
		max = req.SalaryMax
	}
	if err := validateSalary(min, max); err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		job.Responsibilities = *req.Responsibilities
	}
	if req.CategoryId != nil {
		category := &model.Category{}
		err := db.First(category, *req.CategoryId).Error
		if database.IsNotFound(err) {
			return nil, common.NewValidationError("category_id", "Category does not exist.")
		} else if err != nil {
			return nil, err
		}
		job.CategoryId = category.Id
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.IsRemote != nil {
		job.IsRemote = *req.IsRemote
	}
	job.SalaryMin = min
	job.SalaryMax = max
	if req.SalaryCurrency != nil && *req.SalaryCurrency != "" {
		job.SalaryCurrency = *req.SalaryCurrency
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if err := db.Save(job).Error; err != nil {
		return nil, err
	}
	return s.GetJobBySlug(job.Slug)
}

// DeleteJob removes a posting and its applications in one transaction.
func (s *JobService) DeleteJob(principal *model.User, slugValue string) error {
	db := database.GetDB()
	job := &model.Job{}
	err := db.Where("slug = ?", slugValue).First(job).Error
	if database.IsNotFound(err) {
		return common.ErrNotFound
	} else if err != nil {
		return err
	}
	if !access.CanMutateJob(principal, job) {
		return common.ErrForbidden
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.Id).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(job).Error
	})
}

// ListJobApplications returns the applicant list of a posting for its
// owning employer.
func (s *JobService) ListJobApplications(principal *model.User, slugValue string) ([]model.Application, error) {
	db := database.GetDB()
	job := &model.Job{}
	err := db.Where("slug = ?", slugValue).First(job).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if !access.CanListJobApplications(principal, job) {
		return nil, common.ErrForbidden
	}

	var applications []model.Application
	err = db.Model(&model.Application{}).
		Preload("Applicant").
		Where("job_id = ?", job.Id).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	for i := range applications {
		applications[i].JobTitle = job.Title
		attachApplicationNames(&applications[i])
	}
	return applications, nil
}
