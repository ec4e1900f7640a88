// Package controller provides the HTTP handlers of the job-board API.
// Controllers stay thin: they bind requests, resolve the principal and
// delegate every decision to the service layer.
package controller

import (
	"net/http"

	"jobboard/database/model"
	"jobboard/web/entity"
	"jobboard/web/middleware"
	"jobboard/web/service"

	"github.com/gin-gonic/gin"
)

// UserController handles registration, login and the user directory.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a UserController and sets up its routes.
// The rate limiter guards the credential endpoints; a nil limiter
// disables limiting.
func NewUserController(g *gin.RouterGroup, limiter *middleware.RateLimiter) *UserController {
	a := &UserController{}
	a.initRouter(g, limiter)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup, limiter *middleware.RateLimiter) {
	g.POST("/register", limiter.Middleware(), a.register)
	g.POST("/login", limiter.Middleware(), a.login)
	g.POST("/logout", middleware.RequireAuth(), a.logout)
	g.GET("/me", middleware.RequireAuth(), a.me)
	g.GET("", middleware.RequireAuth(), a.listUsers)
}

func (a *UserController) register(c *gin.Context) {
	req := &service.RegisterRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	user, token, err := a.userService.Register(req)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.RegisterResponse{User: user, Token: token.Key})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *UserController) login(c *gin.Context) {
	req := &loginRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	user, token, err := a.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.AuthResponse{Token: token.Key, User: user})
}

func (a *UserController) logout(c *gin.Context) {
	principal := middleware.Principal(c)
	if err := a.userService.RevokeToken(principal); err != nil {
		c.JSON(http.StatusInternalServerError, entity.APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Successfully logged out"})
}

func (a *UserController) me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Principal(c))
}

func (a *UserController) listUsers(c *gin.Context) {
	q := service.UserQuery{
		Role:     model.Role(c.Query("role")),
		IsActive: boolQuery(c, "is_active"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	users, err := a.userService.ListUsers(middleware.Principal(c), q)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
