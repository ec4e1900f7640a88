package service

import (
	"path/filepath"
	"sync"
	"testing"

	"jobboard/database"
	"jobboard/database/model"
	"jobboard/logger"
	"jobboard/util/crypto"

	logging "github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

var loggerOnce sync.Once

// setup opens a fresh sqlite database for the test and tears it down
// with the test.
func setup(t *testing.T) {
	t.Helper()
	loggerOnce.Do(func() {
		logger.InitLogger(logging.DEBUG)
	})
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func createUser(t *testing.T, username string, role model.Role, mutate ...func(*model.User)) *model.User {
	t.Helper()
	hash, err := crypto.HashPasswordAsBcrypt("password123")
	require.NoError(t, err)
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	for _, m := range mutate {
		m(user)
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

func createCategory(t *testing.T, name, slug string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Slug: slug}
	require.NoError(t, database.GetDB().Create(category).Error)
	return category
}

func createJob(t *testing.T, employer *model.User, category *model.Category, title, slug string, mutate ...func(*model.Job)) *model.Job {
	t.Helper()
	job := &model.Job{
		Title:           title,
		Slug:            slug,
		Description:     "description",
		Requirements:    "requirements",
		CategoryId:      category.Id,
		EmployerId:      employer.Id,
		JobType:         model.JobTypeFullTime,
		ExperienceLevel: model.LevelEntry,
		Location:        "Berlin",
		SalaryCurrency:  "USD",
		IsActive:        true,
	}
	for _, m := range mutate {
		m(job)
	}
	require.NoError(t, database.GetDB().Create(job).Error)
	return job
}

func createApplication(t *testing.T, job *model.Job, applicant *model.User, mutate ...func(*model.Application)) *model.Application {
	t.Helper()
	app := &model.Application{
		JobId:       job.Id,
		ApplicantId: applicant.Id,
		CoverLetter: "cover letter",
		Status:      model.StatusPending,
	}
	for _, m := range mutate {
		m(app)
	}
	require.NoError(t, database.GetDB().Create(app).Error)
	return app
}
