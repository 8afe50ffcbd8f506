package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"coursehub/internal/application/usecase"
	"coursehub/internal/domain"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	lessons *usecase.LessonUseCase
	cache   responseCache
}

func NewLessonHandler(lessons *usecase.LessonUseCase, cache responseCache) *LessonHandler {
	return &LessonHandler{lessons: lessons, cache: cache}
}

type lessonContentReq struct {
	Type string  `json:"type" binding:"required,oneof=text video audio" label:"Content type"`
	Data *string `json:"data" binding:"required,min=1" label:"Content data"`
}

// lessonReq carries every lesson field; updates replace the whole lesson.
type lessonReq struct {
	Title       *string            `json:"title" binding:"required,min=1" label:"Title"`
	Description *string            `json:"description" binding:"required,min=1" label:"Description"`
	Topics      []string           `json:"topics" binding:"required" label:"Topics"`
	Content     []lessonContentReq `json:"content" binding:"required,dive" label:"Content"`
}

func (r lessonReq) input() usecase.LessonInput {
	content := make([]domain.LessonContent, 0, len(r.Content))
	for _, item := range r.Content {
		content = append(content, domain.LessonContent{
			Type: domain.ContentType(item.Type),
			Data: *item.Data,
		})
	}
	return usecase.LessonInput{
		Title:       *r.Title,
		Description: *r.Description,
		Topics:      r.Topics,
		Content:     content,
	}
}

type createLessonReq struct {
	ModuleID string `json:"moduleId" binding:"required,uuid" label:"Module ID"`
	lessonReq
}

type moduleQuery struct {
	ModuleID string `form:"moduleId" binding:"required,uuid" label:"Module ID"`
}

type lessonURI struct {
	ID string `uri:"id" binding:"uuid" label:"Lesson ID"`
}

// POST /lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var req createLessonReq
	if !validate(c, func() error { return bindJSON(c, &req) }) {
		return
	}

	lesson, err := h.lessons.Create(c.Request.Context(), req.ModuleID, req.input())
	if errors.Is(err, domain.ErrModuleNotFound) {
		fail(c, http.StatusNotFound, "Module not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusCreated, "Lesson created successfully", lesson)
}

// GET /lessons?moduleId=
func (h *LessonHandler) List(c *gin.Context) {
	var (
		mq moduleQuery
		pq pageQuery
	)
	if !validate(c,
		func() error { return c.ShouldBindQuery(&mq) },
		func() error { return c.ShouldBindQuery(&pq) },
	) {
		return
	}
	page, limit := pq.values()
	ctx := c.Request.Context()

	key := fmt.Sprintf("lessons_%s_page_%d_limit_%d", mq.ModuleID, page, limit)
	if cached, ok := h.cache.get(ctx, key); ok {
		cachedSuccess(c, "Lessons retrieved from cache", cached)
		return
	}

	res, err := h.lessons.List(ctx, mq.ModuleID, page, limit)
	if err != nil {
		internalError(c, err)
		return
	}

	payload := gin.H{
		"page":         page,
		"limit":        limit,
		"totalLessons": res.Total,
		"totalPages":   res.TotalPages,
		"data":         res.Items,
	}
	h.cache.put(ctx, key, payload)
	success(c, http.StatusOK, "Lessons retrieved successfully", payload)
}

// GET /lessons/:id?moduleId=
func (h *LessonHandler) GetOne(c *gin.Context) {
	var (
		uri lessonURI
		mq  moduleQuery
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return c.ShouldBindQuery(&mq) },
	) {
		return
	}

	lesson, err := h.lessons.Get(c.Request.Context(), mq.ModuleID, uri.ID)
	if errors.Is(err, domain.ErrLessonNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// PUT /lessons/:id?moduleId=
func (h *LessonHandler) Update(c *gin.Context) {
	var (
		uri lessonURI
		mq  moduleQuery
		req lessonReq
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return c.ShouldBindQuery(&mq) },
		func() error { return bindJSON(c, &req) },
	) {
		return
	}

	lesson, err := h.lessons.Update(c.Request.Context(), mq.ModuleID, uri.ID, req.input())
	if errors.Is(err, domain.ErrLessonNotFound) {
		fail(c, http.StatusNotFound, "Lesson not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, "Lesson updated successfully", lesson)
}

// DELETE /lessons/:id?moduleId=
func (h *LessonHandler) Delete(c *gin.Context) {
	var (
		uri lessonURI
		mq  moduleQuery
	)
	if !validate(c,
		func() error { return c.ShouldBindUri(&uri) },
		func() error { return c.ShouldBindQuery(&mq) },
	) {
		return
	}

	deleted, err := h.lessons.Delete(c.Request.Context(), mq.ModuleID, uri.ID)
	if err != nil {
		internalError(c, err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Lesson not found")
		return
	}
	c.Status(http.StatusNoContent)
}
