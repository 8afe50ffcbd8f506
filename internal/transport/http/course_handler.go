package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"coursehub/internal/application/usecase"
	"coursehub/internal/domain"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courses *usecase.CourseUseCase
	cache   responseCache
}

func NewCourseHandler(courses *usecase.CourseUseCase, cache responseCache) *CourseHandler {
	return &CourseHandler{courses: courses, cache: cache}
}

type courseReq struct {
	Title       *string `json:"title" binding:"required,min=1" label:"Title"`
	Description *string `json:"description" binding:"required,min=1" label:"Description"`
}

type courseURI struct {
	ID string `uri:"id" binding:"uuid" label:"Course ID"`
}

// POST /courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseReq
	if !validate(c, func() error { return bindJSON(c, &req) }) {
		return
	}

	course, err := h.courses.Create(c.Request.Context(), *req.Title, *req.Description)
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusCreated, "Course created successfully", course)
}

// GET /courses
func (h *CourseHandler) List(c *gin.Context) {
	var q pageQuery
	if !validate(c, func() error { return c.ShouldBindQuery(&q) }) {
		return
	}
	page, limit := q.values()
	ctx := c.Request.Context()

	key := fmt.Sprintf("courses_page_%d_limit_%d", page, limit)
	if cached, ok := h.cache.get(ctx, key); ok {
		cachedSuccess(c, "Courses retrieved from cache", cached)
		return
	}

	res, err := h.courses.List(ctx, page, limit)
	if err != nil {
		internalError(c, err)
		return
	}

	payload := gin.H{
		"page":         page,
		"limit":        limit,
		"totalCourses": res.Total,
		"totalPages":   res.TotalPages,
		"data":         res.Items,
	}
	h.cache.put(ctx, key, payload)
	success(c, http.StatusOK, "Courses retrieved successfully", payload)
}

// GET /courses/details
func (h *CourseHandler) ListDetails(c *gin.Context) {
	var q pageQuery
	if !validate(c, func() error { return c.ShouldBindQuery(&q) }) {
		return
	}
	page, limit := q.values()
	ctx := c.Request.Context()

	key := fmt.Sprintf("courses_details_page_%d_limit_%d", page, limit)
	if cached, ok := h.cache.get(ctx, key); ok {
		cachedSuccess(c, "Courses with more details retrieved from cache", cached)
		return
	}

	res, err := h.courses.ListWithDetails(ctx, page, limit)
	if err != nil {
		internalError(c, err)
		return
	}

	payload := gin.H{
		"page":         page,
		"limit":        limit,
		"totalCourses": res.Total,
		"totalPages":   res.TotalPages,
		"data":         res.Items,
	}
	h.cache.put(ctx, key, payload)
	success(c, http.StatusOK, "Courses with more details retrieved successfully", payload)
}

// GET /courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	var uri courseURI
	if !validate(c, func() error { return c.ShouldBindUri(&uri) }) {
		return
	}

	course, err := h.courses.Get(c.Request.Context(), uri.ID)
	if errors.Is(err, domain.ErrCourseNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// PUT /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var (
		uri courseURI
		req courseReq
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return bindJSON(c, &req) },
	) {
		return
	}

	course, err := h.courses.Update(c.Request.Context(), uri.ID, *req.Title, *req.Description)
	if errors.Is(err, domain.ErrCourseNotFound) {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, "Course updated successfully", course)
}

// DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	var uri courseURI
	if !validate(c, func() error { return c.ShouldBindUri(&uri) }) {
		return
	}

	deleted, err := h.courses.Delete(c.Request.Context(), uri.ID)
	if err != nil {
		internalError(c, err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	c.Status(http.StatusNoContent)
}
