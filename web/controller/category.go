package controller

import (
	"net/http"

	"jobboard/web/middleware"
	"jobboard/web/service"

	"github.com/gin-gonic/gin"
)

// CategoryController handles the public catalog of job categories.
type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(g *gin.RouterGroup) *CategoryController {
	a := &CategoryController{}
	a.initRouter(g)
	return a
}

func (a *CategoryController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.listCategories)
	g.GET("/:slug", a.getCategory)
	g.GET("/:slug/jobs", a.categoryJobs)

	g.POST("", middleware.RequireAuth(), a.createCategory)
	g.PUT("/:slug", middleware.RequireAuth(), a.updateCategory)
	g.PATCH("/:slug", middleware.RequireAuth(), a.updateCategory)
	g.DELETE("/:slug", middleware.RequireAuth(), a.deleteCategory)
}

func (a *CategoryController) listCategories(c *gin.Context) {
	q := service.CategoryQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	categories, err := a.categoryService.ListCategories(q)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (a *CategoryController) getCategory(c *gin.Context) {
	category, err := a.categoryService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *CategoryController) categoryJobs(c *gin.Context) {
	jobs, err := a.categoryService.CategoryJobs(c.Param("slug"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (a *CategoryController) createCategory(c *gin.Context) {
	req := &service.CategoryRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	category, err := a.categoryService.CreateCategory(middleware.Principal(c), req)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (a *CategoryController) updateCategory(c *gin.Context) {
	req := &service.CategoryRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	category, err := a.categoryService.UpdateCategory(middleware.Principal(c), c.Param("slug"), req)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *CategoryController) deleteCategory(c *gin.Context) {
	if err := a.categoryService.DeleteCategory(middleware.Principal(c), c.Param("slug")); err != nil {
		jsonError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
