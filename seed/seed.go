// Package seed fills the database with sample accounts, categories,
// jobs and applications for local development and manual testing.
package seed

import (
	"fmt"
	"time"

	"jobboard/database"
	"jobboard/database/model"
	"jobboard/util/crypto"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type userSpec struct {
	Username    string
	Email       string
	Password    string
	Role        model.Role
	FirstName   string
	LastName    string
	CompanyName string
	PhoneNumber string
	Bio         string
}

type jobSpec struct {
	Title           string
	Description     string
	Requirements    string
	Responsibility  string
	CategoryName    string
	EmployerName    string
	JobType         model.JobType
	ExperienceLevel model.ExperienceLevel
	Location        string
	IsRemote        bool
	SalaryMin       float64
	SalaryMax       float64
	DeadlineDays    int
}

var users = []userSpec{
	{
		Username: "techcorp", Email: "hr@techcorp.com", Password: "employer123",
		Role: model.RoleEmployer, CompanyName: "TechCorp Inc",
		FirstName: "John", LastName: "Smith", PhoneNumber: "+1-555-0101",
		Bio: "Leading technology company focused on innovative solutions.",
	},
	{
		Username: "innovate", Email: "jobs@innovate.com", Password: "employer123",
		Role: model.RoleEmployer, CompanyName: "Innovate Labs",
		FirstName: "Jane", LastName: "Doe", PhoneNumber: "+1-555-0102",
		Bio: "Startup focused on cutting-edge AI and ML solutions.",
	},
	{
		Username: "jdoe", Email: "jdoe@email.com", Password: "seeker123",
		Role: model.RoleJobSeeker, FirstName: "John", LastName: "Doe",
		PhoneNumber: "+1-555-0201",
		Bio:         "Experienced software developer looking for new opportunities.",
	},
	{
		Username: "asmith", Email: "asmith@email.com", Password: "seeker123",
		Role: model.RoleJobSeeker, FirstName: "Alice", LastName: "Smith",
		PhoneNumber: "+1-555-0202",
		Bio:         "Recent graduate with a passion for web development.",
	},
}

var categories = []model.Category{
	{Name: "Software Development", Description: "Jobs related to software development and programming"},
	{Name: "Data Science", Description: "Data analysis, machine learning, and AI positions"},
	{Name: "Design", Description: "UI/UX design and graphic design positions"},
	{Name: "Marketing", Description: "Digital marketing and content creation roles"},
	{Name: "Sales", Description: "Sales and business development positions"},
}

var jobs = []jobSpec{
	{
		Title:           "Senior Python Developer",
		Description:     "We are looking for an experienced Python developer to join our backend team.",
		Requirements:    "5+ years of Python experience, Django expertise, REST API development",
		Responsibility:  "Design and implement backend services, mentor junior developers",
		CategoryName:    "Software Development",
		EmployerName:    "techcorp",
		JobType:         model.JobTypeFullTime,
		ExperienceLevel: model.LevelSenior,
		Location:        "San Francisco, CA",
		IsRemote:        true,
		SalaryMin:       120000, SalaryMax: 160000, DeadlineDays: 30,
	},
	{
		Title:           "Frontend React Developer",
		Description:     "Join our frontend team to build amazing user interfaces.",
		Requirements:    "3+ years React experience, TypeScript, modern CSS",
		Responsibility:  "Build responsive web applications, work with designers",
		CategoryName:    "Software Development",
		EmployerName:    "innovate",
		JobType:         model.JobTypeFullTime,
		ExperienceLevel: model.LevelIntermediate,
		Location:        "New York, NY",
		SalaryMin:       90000, SalaryMax: 130000, DeadlineDays: 45,
	},
	{
		Title:           "Data Scientist",
		Description:     "Analyze data and build ML models for our products.",
		Requirements:    "PhD or Masters in related field, Python, ML frameworks",
		Responsibility:  "Develop ML models, analyze data trends, collaborate with engineers",
		CategoryName:    "Data Science",
		EmployerName:    "techcorp",
		JobType:         model.JobTypeFullTime,
		ExperienceLevel: model.LevelSenior,
		Location:        "Remote",
		IsRemote:        true,
		SalaryMin:       130000, SalaryMax: 180000, DeadlineDays: 60,
	},
	{
		Title:           "UX Designer",
		Description:     "Design beautiful and intuitive user experiences.",
		Requirements:    "2+ years UX design, Figma, user research",
		Responsibility:  "Create wireframes, conduct user research, collaborate with developers",
		CategoryName:    "Design",
		EmployerName:    "innovate",
		JobType:         model.JobTypeContract,
		ExperienceLevel: model.LevelIntermediate,
		Location:        "Los Angeles, CA",
		SalaryMin:       80000, SalaryMax: 110000, DeadlineDays: 20,
	},
}

// Run seeds sample data. It is idempotent: existing usernames and
// slugs are left untouched, so repeated runs are safe.
func Run() error {
	db := database.GetDB()

	seededUsers := map[string]*model.User{}
	for _, spec := range users {
		user, err := ensureUser(db, spec)
		if err != nil {
			return err
		}
		seededUsers[spec.Username] = user
	}

	seededCategories := map[string]*model.Category{}
	for _, c := range categories {
		category, err := ensureCategory(db, c)
		if err != nil {
			return err
		}
		seededCategories[c.Name] = category
	}

	seededJobs := make([]*model.Job, 0, len(jobs))
	for _, spec := range jobs {
		job, err := ensureJob(db, spec, seededUsers, seededCategories)
		if err != nil {
			return err
		}
		seededJobs = append(seededJobs, job)
	}

	applications := []model.Application{
		{
			JobId:       seededJobs[0].Id,
			ApplicantId: seededUsers["jdoe"].Id,
			CoverLetter: "I am very interested in this position and believe my experience aligns well with your requirements.",
			ResumeURL:   "https://example.com/resume1.pdf",
			Status:      model.StatusPending,
		},
		{
			JobId:       seededJobs[1].Id,
			ApplicantId: seededUsers["asmith"].Id,
			CoverLetter: "As a passionate frontend developer, I would love to join your team.",
			ResumeURL:   "https://example.com/resume2.pdf",
			Status:      model.StatusReviewing,
		},
		{
			JobId:       seededJobs[0].Id,
			ApplicantId: seededUsers["asmith"].Id,
			CoverLetter: "I have extensive Python experience and would be a great fit for this role.",
			ResumeURL:   "https://example.com/resume3.pdf",
			Status:      model.StatusShortlisted,
		},
	}
	for _, app := range applications {
		if err := ensureApplication(db, app); err != nil {
			return err
		}
	}

	fmt.Println("database seeding completed")
	fmt.Println("test credentials:")
	fmt.Println("  employer:   techcorp / employer123")
	fmt.Println("  employer:   innovate / employer123")
	fmt.Println("  job seeker: jdoe / seeker123")
	fmt.Println("  job seeker: asmith / seeker123")
	return nil
}

func ensureUser(db *gorm.DB, spec userSpec) (*model.User, error) {
	existing := &model.User{}
	err := db.Where("username = ?", spec.Username).First(existing).Error
	if err == nil {
		return existing, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}
	hash, err := crypto.HashPasswordAsBcrypt(spec.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:    spec.Username,
		Email:       spec.Email,
		Password:    hash,
		Role:        spec.Role,
		FirstName:   spec.FirstName,
		LastName:    spec.LastName,
		CompanyName: spec.CompanyName,
		PhoneNumber: spec.PhoneNumber,
		Bio:         spec.Bio,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func ensureCategory(db *gorm.DB, c model.Category) (*model.Category, error) {
	slugValue := slug.Make(c.Name)
	existing := &model.Category{}
	err := db.Where("slug = ?", slugValue).First(existing).Error
	if err == nil {
		return existing, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}
	category := &model.Category{Name: c.Name, Slug: slugValue, Description: c.Description}
	if err := db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func ensureJob(db *gorm.DB, spec jobSpec, users map[string]*model.User, categories map[string]*model.Category) (*model.Job, error) {
	employer := users[spec.EmployerName]
	category := categories[spec.CategoryName]
	slugValue := slug.Make(spec.Title) + "-" + slug.Make(employer.CompanyName)

	existing := &model.Job{}
	err := db.Where("slug = ?", slugValue).First(existing).Error
	if err == nil {
		return existing, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	deadline := time.Now().AddDate(0, 0, spec.DeadlineDays)
	min := spec.SalaryMin
	max := spec.SalaryMax
	job := &model.Job{
		Title:            spec.Title,
		Slug:             slugValue,
		Description:      spec.Description,
		Requirements:     spec.Requirements,
		Responsibilities: spec.Responsibility,
		CategoryId:       category.Id,
		EmployerId:       employer.Id,
		JobType:          spec.JobType,
		ExperienceLevel:  spec.ExperienceLevel,
		Location:         spec.Location,
		IsRemote:         spec.IsRemote,
		SalaryMin:        &min,
		SalaryMax:        &max,
		SalaryCurrency:   "USD",
		IsActive:         true,
		Deadline:         &deadline,
	}
	if err := db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func ensureApplication(db *gorm.DB, app model.Application) error {
	var count int64
	err := db.Model(&model.Application{}).
		Where("job_id = ? AND applicant_id = ?", app.JobId, app.ApplicantId).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&app).Error
}
