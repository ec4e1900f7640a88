package controller

import (
	"net/http"

	"jobboard/database/model"
	"jobboard/web/middleware"
	"jobboard/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes the admin-only runtime status endpoint.
type ServerController struct {
	serverService service.ServerService
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.GET("/status", middleware.RoleRequired(model.RoleAdmin), a.status)
}

func (a *ServerController) status(c *gin.Context) {
	c.JSON(http.StatusOK, a.serverService.GetStatus())
}
