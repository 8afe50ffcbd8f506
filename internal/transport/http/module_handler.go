package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"coursehub/internal/application/usecase"
	"coursehub/internal/domain"

	"github.com/gin-gonic/gin"
)

type ModuleHandler struct {
	modules *usecase.ModuleUseCase
	cache   responseCache
}

func NewModuleHandler(modules *usecase.ModuleUseCase, cache responseCache) *ModuleHandler {
	return &ModuleHandler{modules: modules, cache: cache}
}

type createModuleReq struct {
	CourseID string  `json:"courseId" binding:"required,uuid" label:"Course ID"`
	Title    *string `json:"title" binding:"required,min=1" label:"Title"`
}

type updateModuleReq struct {
	Title *string `json:"title" binding:"required,min=1" label:"Title"`
}

type courseQuery struct {
	CourseID string `form:"courseId" binding:"required,uuid" label:"Course ID"`
}

type moduleURI struct {
	ID string `uri:"id" binding:"uuid" label:"Module ID"`
}

// POST /modules
func (h *ModuleHandler) Create(c *gin.Context) {
	var req createModuleReq
	if !validate(c, func() error { return bindJSON(c, &req) }) {
		return
	}

	module, err := h.modules.Create(c.Request.Context(), req.CourseID, *req.Title)
	if errors.Is(err, domain.ErrCourseNotFound) {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusCreated, "Module created successfully", module)
}

// GET /modules?courseId=
func (h *ModuleHandler) List(c *gin.Context) {
	var (
		cq courseQuery
		pq pageQuery
	)
	if !validate(c,
		func() error { return c.ShouldBindQuery(&cq) },
		func() error { return c.ShouldBindQuery(&pq) },
	) {
		return
	}
	page, limit := pq.values()
	ctx := c.Request.Context()

	key := fmt.Sprintf("modules_%s_page_%d_limit_%d", cq.CourseID, page, limit)
	if cached, ok := h.cache.get(ctx, key); ok {
		cachedSuccess(c, "Modules retrieved from cache", cached)
		return
	}

	res, err := h.modules.List(ctx, cq.CourseID, page, limit)
	if err != nil {
		internalError(c, err)
		return
	}

	payload := gin.H{
		"page":         page,
		"limit":        limit,
		"totalModules": res.Total,
		"totalPages":   res.TotalPages,
		"data":         res.Items,
	}
	h.cache.put(ctx, key, payload)
	success(c, http.StatusOK, "Modules retrieved successfully", payload)
}

// GET /modules/:id?courseId=
func (h *ModuleHandler) GetOne(c *gin.Context) {
	var (
		uri moduleURI
		cq  courseQuery
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return c.ShouldBindQuery(&cq) },
	) {
		return
	}

	module, err := h.modules.Get(c.Request.Context(), cq.CourseID, uri.ID)
	if errors.Is(err, domain.ErrModuleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// PUT /modules/:id?courseId=
func (h *ModuleHandler) Update(c *gin.Context) {
	var (
		uri moduleURI
		cq  courseQuery
		req updateModuleReq
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return c.ShouldBindQuery(&cq) },
		func() error { return bindJSON(c, &req) },
	) {
		return
	}

	module, err := h.modules.Update(c.Request.Context(), cq.CourseID, uri.ID, *req.Title)
	if errors.Is(err, domain.ErrModuleNotFound) {
		fail(c, http.StatusNotFound, "Module not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, "Module updated successfully", module)
}

// DELETE /modules/:id?courseId=
func (h *ModuleHandler) Delete(c *gin.Context) {
	var (
		uri moduleURI
		cq  courseQuery
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return c.ShouldBindQuery(&cq) },
	) {
		return
	}

	deleted, err := h.modules.Delete(c.Request.Context(), cq.CourseID, uri.ID)
	if err != nil {
		internalError(c, err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Module not found")
		return
	}
	c.Status(http.StatusNoContent)
}
