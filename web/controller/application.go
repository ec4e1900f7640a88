package controller

import (
	"net/http"
	"strconv"

	"jobboard/database/model"
	"jobboard/web/entity"
	"jobboard/web/middleware"
	"jobboard/web/service"

	"github.com/gin-gonic/gin"
)

// ApplicationController handles job applications. Every route requires
// an authenticated principal; visibility is role-scoped in the service.
type ApplicationController struct {
	applicationService service.ApplicationService
}

func NewApplicationController(g *gin.RouterGroup) *ApplicationController {
	a := &ApplicationController{}
	a.initRouter(g)
	return a
}

func (a *ApplicationController) initRouter(g *gin.RouterGroup) {
	g.Use(middleware.RequireAuth())

	g.GET("", a.listApplications)
	g.POST("", a.createApplication)
	g.GET("/:id", a.getApplication)
	g.PUT("/:id", a.updateApplication)
	g.PATCH("/:id", a.updateApplication)
	g.PATCH("/:id/update_status", a.updateStatus)
}

func applicationID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, entity.APIError{Error: "Not found."})
		return 0, false
	}
	return id, true
}

func (a *ApplicationController) listApplications(c *gin.Context) {
	q := service.ApplicationQuery{
		Status:   model.ApplicationStatus(c.Query("status")),
		Job:      intQuery(c, "job"),
		Ordering: c.Query("ordering"),
	}
	applications, err := a.applicationService.ListApplications(middleware.Principal(c), q)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (a *ApplicationController) createApplication(c *gin.Context) {
	req := &service.ApplicationCreateRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := a.applicationService.CreateApplication(middleware.Principal(c), req)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (a *ApplicationController) getApplication(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	app, err := a.applicationService.GetApplication(middleware.Principal(c), id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// updateApplication binds the body as a raw field map so the service
// can tell which fields the caller attempts to change.
func (a *ApplicationController) updateApplication(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	fields := map[string]any{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}
	app, err := a.applicationService.UpdateApplication(middleware.Principal(c), id, fields)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (a *ApplicationController) updateStatus(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	req := &updateStatusRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := a.applicationService.UpdateStatus(middleware.Principal(c), id, req.Status, req.Notes)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
