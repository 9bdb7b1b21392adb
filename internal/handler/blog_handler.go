package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/service"
)

// BlogHandler serves blog posts and categories.
type BlogHandler struct {
	blogs      service.BlogService
	categories service.CategoryService
}

// NewBlogHandler creates a blog handler.
func NewBlogHandler(blogs service.BlogService, categories service.CategoryService) *BlogHandler {
	return &BlogHandler{blogs: blogs, categories: categories}
}

// ListBlogs godoc
// @Summary List published posts
// @Tags blogs
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Title, excerpt or content substring"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, at most 50"
// @Success 200 {object} service.BlogPage
// @Failure 400 {object} errors.ErrorResponse
// @Router /blogs [get]
func (h *BlogHandler) ListBlogs(c echo.Context) error {
	var q service.BlogQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query").SetInternal(err)
	}
	page, err := h.blogs.ListPublished(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetBlog godoc
// @Summary Get a published post by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} model.Blog
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/{slug} [get]
func (h *BlogHandler) GetBlog(c echo.Context) error {
	blog, err := h.blogs.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blog)
}

// AdminListBlogs godoc
// @Summary List all posts including drafts
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.Blog
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/blogs [get]
func (h *BlogHandler) AdminListBlogs(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	blogs, err := h.blogs.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// AdminGetBlog godoc
// @Summary Get a post by id
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param id path int true "Post ID"
// @Success 200 {object} model.Blog
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/blogs/{id} [get]
func (h *BlogHandler) AdminGetBlog(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	blog, err := h.blogs.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blog)
}

// CreateBlog godoc
// @Summary Create a post
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param blog body service.BlogInput true "Post"
// @Success 201 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/blogs [post]
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	p, err := auth.RequireAdmin(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	var in service.BlogInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	blog, err := h.blogs.Create(c.Request().Context(), p.UserID, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, blog)
}

// UpdateBlog godoc
// @Summary Update a post
// @Description Publishing a draft stamps publishedAt once. The slug is kept.
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Post ID"
// @Param blog body service.BlogPatch true "Fields to change"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/blogs/{id} [patch]
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch service.BlogPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	blog, err := h.blogs.Update(c.Request().Context(), id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blog)
}

// DeleteBlog godoc
// @Summary Delete a post
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.blogs.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Blog deleted"})
}

// ListCategories godoc
// @Summary List blog categories with post counts
// @Tags blogs
// @Produce json
// @Success 200 {array} repository.CategoryWithCount
// @Router /blogs/categories [get]
func (h *BlogHandler) ListCategories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param category body service.CategoryInput true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/categories [post]
func (h *BlogHandler) CreateCategory(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	var in service.CategoryInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	category, err := h.categories.Create(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Rename a category
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Category ID"
// @Param category body service.CategoryInput true "Category"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [put]
func (h *BlogHandler) UpdateCategory(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in service.CategoryInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	category, err := h.categories.Update(c.Request().Context(), id, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category without posts
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param id path int true "Category ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (h *BlogHandler) DeleteCategory(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted"})
}
