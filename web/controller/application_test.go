package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAPI(t *testing.T, router *gin.Engine, token string, jobId int) int {
	t.Helper()
	w := request(t, router, http.MethodPost, "/api/applications", token, map[string]any{
		"job_id":       jobId,
		"cover_letter": "I would like to apply.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int(decode(t, w)["id"].(float64))
}

func jobIdBySlug(t *testing.T, router *gin.Engine, slug string) int {
	t.Helper()
	w := request(t, router, http.MethodGet, "/api/jobs/"+slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	return int(decode(t, w)["id"].(float64))
}

func TestApplicationFlow(t *testing.T) {
	router := setup(t)
	employer := registerUser(t, router, "techcorp", "EMPLOYER")
	seeker := registerUser(t, router, "jdoe", "JOB_SEEKER")
	other := registerUser(t, router, "asmith", "JOB_SEEKER")
	_, categoryId := createCategoryAPI(t, router, employer, "Engineering")
	slug := createJobAPI(t, router, employer, categoryId, "Backend Engineer")
	jobId := jobIdBySlug(t, router, slug)

	// The whole surface is authenticated.
	w := request(t, router, http.MethodGet, "/api/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	appId := applyAPI(t, router, seeker, jobId)

	// Applying twice is a 400 with the duplicate message.
	w = request(t, router, http.MethodPost, "/api/applications", seeker, map[string]any{
		"job_id":       jobId,
		"cover_letter": "Again.",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You have already applied to this job.", decode(t, w)["error"])

	// Employers cannot apply.
	w = request(t, router, http.MethodPost, "/api/applications", employer, map[string]any{
		"job_id":       jobId,
		"cover_letter": "As an employer.",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	path := fmt.Sprintf("/api/applications/%d", appId)

	// Out-of-scope reads are indistinguishable from missing rows.
	w = request(t, router, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = request(t, router, http.MethodGet, path, seeker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	app := decode(t, w)
	assert.Equal(t, "PENDING", app["status"])
	assert.Equal(t, "Backend Engineer", app["job_title"])

	// The applicant cannot smuggle status through a regular update.
	w = request(t, router, http.MethodPatch, path, seeker, map[string]any{
		"cover_letter": "Updated.",
		"status":       "ACCEPTED",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = request(t, router, http.MethodPatch, path, seeker, map[string]any{
		"cover_letter": "Updated.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Updated.", decode(t, w)["cover_letter"])

	// The owning employer drives the transition endpoint.
	w = request(t, router, http.MethodPatch, path+"/update_status", seeker, map[string]any{
		"status": "REVIEWING",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = request(t, router, http.MethodPatch, path+"/update_status", employer, map[string]any{
		"status": "SOMEDAY",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status value.", decode(t, w)["error"])
	w = request(t, router, http.MethodPatch, path+"/update_status", employer, map[string]any{
		"status": "SHORTLISTED",
		"notes":  "Schedule a call.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	assert.Equal(t, "SHORTLISTED", updated["status"])
	assert.Equal(t, "Schedule a call.", updated["notes"])

	// The employer sees incoming applications on the job.
	w = request(t, router, http.MethodGet, "/api/jobs/"+slug+"/applications", employer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	incoming := decodeList(t, w)
	require.Len(t, incoming, 1)
	assert.Equal(t, "jdoe", incoming[0]["applicant_name"])

	w = request(t, router, http.MethodGet, "/api/jobs/"+slug+"/applications", other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApplicationBadId(t *testing.T) {
	router := setup(t)
	seeker := registerUser(t, router, "jdoe", "JOB_SEEKER")

	w := request(t, router, http.MethodGet, "/api/applications/not-a-number", seeker, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = request(t, router, http.MethodGet, "/api/applications/9999", seeker, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
