package service

import (
	"jobboard/database"
	"jobboard/database/model"
	"jobboard/util/common"
	"jobboard/web/access"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationService struct{}

// ApplicationCreateRequest is the payload a job seeker submits.
type ApplicationCreateRequest struct {
	JobId       int    `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

// ApplicationQuery shapes the role-scoped listing.
type ApplicationQuery struct {
	Status   model.ApplicationStatus
	Job      *int
	Ordering string
}

var applicationOrderings = map[string]string{
	"created_at": "applications.created_at",
	"status":     "applications.status",
}

// scopedQuery builds the role-scoped base query: seekers see their own
// applications, employers the ones for their jobs, admins everything,
// anyone else nothing. An empty scope is a result, never an error.
func (s *ApplicationService) scopedQuery(principal *model.User) *gorm.DB {
	db := database.GetDB().Model(&model.Application{}).
		Preload("Job").
		Preload("Job.Category").
		Preload("Job.Employer").
		Preload("Applicant")
	switch {
	case principal == nil:
		return db.Where("1 = 0")
	case principal.IsJobSeeker():
		return db.Where("applications.applicant_id = ?", principal.Id)
	case principal.IsEmployer():
		return db.Where("applications.job_id IN (?)",
			database.GetDB().Model(&model.Job{}).Select("id").Where("employer_id = ?", principal.Id))
	case principal.IsAdmin():
		return db
	default:
		return db.Where("1 = 0")
	}
}

func attachApplicationNames(app *model.Application) {
	if app.Applicant != nil {
		app.ApplicantName = app.Applicant.DisplayName()
	}
	if app.Job != nil {
		app.JobTitle = app.Job.Title
		attachJobNames(app.Job)
	}
}

// ListApplications returns the principal's visible applications.
func (s *ApplicationService) ListApplications(principal *model.User, q ApplicationQuery) ([]model.Application, error) {
	db := s.scopedQuery(principal)
	if q.Status != "" {
		db = db.Where("applications.status = ?", q.Status)
	}
	if q.Job != nil {
		db = db.Where("applications.job_id = ?", *q.Job)
	}
	var applications []model.Application
	err := db.Order(orderClause(q.Ordering, applicationOrderings, "applications.created_at DESC")).
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	for i := range applications {
		attachApplicationNames(&applications[i])
	}
	return applications, nil
}

// GetApplication loads one application within the principal's scope.
// Out-of-scope rows are indistinguishable from missing ones.
func (s *ApplicationService) GetApplication(principal *model.User, id int) (*model.Application, error) {
	app := &model.Application{}
	err := s.scopedQuery(principal).Where("applications.id = ?", id).First(app).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	attachApplicationNames(app)
	return app, nil
}

// CreateApplication submits an application for the calling job seeker.
// The (job, applicant) pair is unique; the check runs upfront and the
// unique index settles concurrent submissions, so exactly one of two
// simultaneous attempts succeeds.
func (s *ApplicationService) CreateApplication(principal *model.User, req *ApplicationCreateRequest) (*model.Application, error) {
	if !access.CanCreateApplication(principal) {
		return nil, common.ErrForbidden
	}
	if req.CoverLetter == "" {
		return nil, common.NewValidationError("cover_letter", "This field is required.")
	}

	db := database.GetDB()
	job := &model.Job{}
	err := db.Where("id = ? AND is_active = ?", req.JobId, true).First(job).Error
	if database.IsNotFound(err) {
		return nil, common.NewValidationError("job_id", "Job does not exist or is no longer active.")
	} else if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&model.Application{}).
		Where("job_id = ? AND applicant_id = ?", job.Id, principal.Id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.ErrDuplicateApplication
	}

	app := &model.Application{
		JobId:       job.Id,
		ApplicantId: principal.Id,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      model.StatusPending,
	}
	if err := db.Create(app).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, common.ErrDuplicateApplication
		}
		return nil, err
	}
	return s.GetApplication(principal, app.Id)
}

// UpdateApplication applies a partial update. fields carries the raw
// request keys so the applicant-path protection can see what the
// caller attempts to change, not just the resulting values.
func (s *ApplicationService) UpdateApplication(principal *model.User, id int, fields map[string]any) (*model.Application, error) {
	app := &model.Application{}
	err := s.scopedQuery(principal).Where("applications.id = ?", id).First(app).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if !access.CanUpdateApplication(principal, app) {
		return nil, common.ErrForbidden
	}
	if access.ProtectedFieldTouched(principal, app, fields) {
		return nil, common.ErrForbidden
	}

	if v, ok := fields["cover_letter"]; ok {
		letter, ok := v.(string)
		if !ok || letter == "" {
			return nil, common.NewValidationError("cover_letter", "This field may not be blank.")
		}
		app.CoverLetter = letter
	}
	if v, ok := fields["resume_url"]; ok {
		if url, ok := v.(string); ok {
			app.ResumeURL = url
		}
	}
	// Employer-path updates may also set the protected fields.
	if v, ok := fields["status"]; ok {
		status, ok := v.(string)
		if !ok || !model.ValidApplicationStatus(model.ApplicationStatus(status)) {
			return nil, common.ErrInvalidStatus
		}
		app.Status = model.ApplicationStatus(status)
	}
	if v, ok := fields["notes"]; ok {
		if notes, ok := v.(string); ok {
			app.Notes = notes
		}
	}

	if err := database.GetDB().Omit(clause.Associations).Save(app).Error; err != nil {
		return nil, err
	}
	return s.GetApplication(principal, app.Id)
}

// UpdateStatus is the privileged transition action for the owning
// employer. Any defined status value is accepted; there is no
// forward-only ordering.
func (s *ApplicationService) UpdateStatus(principal *model.User, id int, status string, notes *string) (*model.Application, error) {
	db := database.GetDB()
	app := &model.Application{}
	err := db.Preload("Job").Where("id = ?", id).First(app).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if !access.CanUpdateApplicationStatus(principal, app) {
		return nil, common.ErrForbidden
	}
	if !model.ValidApplicationStatus(model.ApplicationStatus(status)) {
		return nil, common.ErrInvalidStatus
	}

	app.Status = model.ApplicationStatus(status)
	if notes != nil {
		app.Notes = *notes
	}
	if err := db.Omit(clause.Associations).Save(app).Error; err != nil {
		return nil, err
	}
	return s.GetApplication(principal, app.Id)
}
