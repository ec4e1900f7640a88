// Package model defines the persistent entities of the job board:
// users, auth tokens, categories, jobs and applications.
package model

import (
	"strings"
	"time"
)

// Role controls what a user may do system-wide. It is fixed at
// registration; authorization decisions switch over this closed set.
type Role string

const (
	RoleEmployer  Role = "EMPLOYER"
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleAdmin     Role = "ADMIN"
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEmployer, RoleJobSeeker, RoleAdmin:
		return true
	}
	return false
}

// JobType is the employment type of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeTemporary  JobType = "TEMPORARY"
)

func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeTemporary:
		return true
	}
	return false
}

// ExperienceLevel is the seniority required by a posting.
type ExperienceLevel string

const (
	LevelEntry        ExperienceLevel = "ENTRY"
	LevelIntermediate ExperienceLevel = "INTERMEDIATE"
	LevelSenior       ExperienceLevel = "SENIOR"
	LevelExecutive    ExperienceLevel = "EXECUTIVE"
)

func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case LevelEntry, LevelIntermediate, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

// ApplicationStatus is the lifecycle state of an application. The
// owning employer may set any defined value; no transition ordering is
// enforced.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusReviewing   ApplicationStatus = "REVIEWING"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusRejected    ApplicationStatus = "REJECTED"
	StatusAccepted    ApplicationStatus = "ACCEPTED"
)

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

type User struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:254"`
	Password    string    `json:"-" gorm:"size:128"`
	Role        Role      `json:"role" gorm:"size:20;default:JOB_SEEKER;index"`
	FirstName   string    `json:"first_name" gorm:"size:150"`
	LastName    string    `json:"last_name" gorm:"size:150"`
	CompanyName string    `json:"company_name" gorm:"size:255"`
	PhoneNumber string    `json:"phone_number" gorm:"size:20"`
	Bio         string    `json:"bio"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	IsSuperuser bool      `json:"-" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

func (u *User) IsJobSeeker() bool {
	return u.Role == RoleJobSeeker
}

// IsAdmin is true for the ADMIN role or the separate superuser flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// FullName mirrors the display-name precedence used by the derived
// fields: "First Last" when either part is set, else empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is full name else username.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

// EmployerDisplayName is company name, else full name, else username.
func (u *User) EmployerDisplayName() string {
	if u.CompanyName != "" {
		return u.CompanyName
	}
	return u.DisplayName()
}

// AuthToken is an opaque bearer credential. One row per user: repeated
// logins reuse the stored key (get_or_create semantics).
type AuthToken struct {
	Key       string    `json:"key" gorm:"primaryKey;size:40"`
	UserId    int       `json:"-" gorm:"uniqueIndex"`
	User      *User     `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:100"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Annotated by the query layer: number of active jobs.
	JobsCount int64 `json:"jobs_count" gorm:"->;-:migration"`
}

type Job struct {
	Id               int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string          `json:"title" gorm:"size:255"`
	Slug             string          `json:"slug" gorm:"uniqueIndex;size:255"`
	Description      string          `json:"description"`
	Requirements     string          `json:"requirements"`
	Responsibilities string          `json:"responsibilities"`
	CategoryId       int             `json:"category_id" gorm:"index:idx_jobs_category"`
	Category         *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryId"`
	EmployerId       int             `json:"employer_id" gorm:"index:idx_jobs_employer"`
	Employer         *User           `json:"employer,omitempty" gorm:"foreignKey:EmployerId;constraint:OnDelete:CASCADE"`
	JobType          JobType         `json:"job_type" gorm:"size:20;default:FULL_TIME"`
	ExperienceLevel  ExperienceLevel `json:"experience_level" gorm:"size:20;default:ENTRY"`
	Location         string          `json:"location" gorm:"size:255"`
	IsRemote         bool            `json:"is_remote" gorm:"default:false"`
	SalaryMin        *float64        `json:"salary_min"`
	SalaryMax        *float64        `json:"salary_max"`
	SalaryCurrency   string          `json:"salary_currency" gorm:"size:3;default:USD"`
	IsActive         bool            `json:"is_active" gorm:"default:true;index:idx_jobs_active"`
	Deadline         *time.Time      `json:"deadline"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Annotated by the query layer; never stored.
	ApplicationsCount int64  `json:"applications_count" gorm:"->;-:migration"`
	CategoryName      string `json:"category_name" gorm:"-"`
	EmployerName      string `json:"employer_name" gorm:"-"`
}

type Application struct {
	Id          int               `json:"id" gorm:"primaryKey;autoIncrement"`
	JobId       int               `json:"job_id" gorm:"uniqueIndex:idx_app_job_applicant;index:idx_apps_job"`
	Job         *Job              `json:"job,omitempty" gorm:"foreignKey:JobId;constraint:OnDelete:CASCADE"`
	ApplicantId int               `json:"applicant_id" gorm:"uniqueIndex:idx_app_job_applicant;index:idx_apps_applicant"`
	Applicant   *User             `json:"applicant,omitempty" gorm:"foreignKey:ApplicantId;constraint:OnDelete:CASCADE"`
	CoverLetter string            `json:"cover_letter"`
	ResumeURL   string            `json:"resume_url" gorm:"size:200"`
	Status      ApplicationStatus `json:"status" gorm:"size:20;default:PENDING;index"`
	Notes       string            `json:"notes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	JobTitle      string `json:"job_title" gorm:"-"`
	ApplicantName string `json:"applicant_name" gorm:"-"`
}
