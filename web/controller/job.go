package controller

import (
	"net/http"

	"jobboard/database/model"
	"jobboard/web/middleware"
	"jobboard/web/service"

	"github.com/gin-gonic/gin"
)

// JobController handles job postings: public reads, employer writes.
type JobController struct {
	jobService service.JobService
}

func NewJobController(g *gin.RouterGroup) *JobController {
	a := &JobController{}
	a.initRouter(g)
	return a
}

func (a *JobController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.listJobs)
	g.GET("/:slug", a.getJob)

	g.POST("", middleware.RequireAuth(), a.createJob)
	g.PUT("/:slug", middleware.RequireAuth(), a.updateJob)
	g.PATCH("/:slug", middleware.RequireAuth(), a.updateJob)
	g.DELETE("/:slug", middleware.RequireAuth(), a.deleteJob)
	g.GET("/:slug/applications", middleware.RequireAuth(), a.listJobApplications)
}

func (a *JobController) listJobs(c *gin.Context) {
	q := service.JobQuery{
		Category:        intQuery(c, "category"),
		Employer:        intQuery(c, "employer"),
		JobType:         model.JobType(c.Query("job_type")),
		ExperienceLevel: model.ExperienceLevel(c.Query("experience_level")),
		IsRemote:        boolQuery(c, "is_remote"),
		IsActive:        boolQuery(c, "is_active"),
		Search:          c.Query("search"),
		Ordering:        c.Query("ordering"),
	}
	jobs, err := a.jobService.ListJobs(q)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (a *JobController) getJob(c *gin.Context) {
	job, err := a.jobService.GetJobBySlug(c.Param("slug"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (a *JobController) createJob(c *gin.Context) {
	req := &service.JobRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := a.jobService.CreateJob(middleware.Principal(c), req)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (a *JobController) updateJob(c *gin.Context) {
	req := &service.JobRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := a.jobService.UpdateJob(middleware.Principal(c), c.Param("slug"), req)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (a *JobController) deleteJob(c *gin.Context) {
	if err := a.jobService.DeleteJob(middleware.Principal(c), c.Param("slug")); err != nil {
		jsonError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *JobController) listJobApplications(c *gin.Context) {
	applications, err := a.jobService.ListJobApplications(middleware.Principal(c), c.Param("slug"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}
