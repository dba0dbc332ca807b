package dto

import "github.com/rezabagheri03/Uniplan/internal/model"

// ── 课程模块 DTO ──

// TimeSlotRequest 时间段载荷
// startTime/endTime 为零填充 24 小时制 HH:MM；datetime 标签校验格式，
// 先后关系（start < end）在 Service 层按字典序校验
type TimeSlotRequest struct {
	Day       string `json:"day"       binding:"required,oneof=شنبه یکشنبه دوشنبه سه‌شنبه چهارشنبه پنج‌شنبه جمعه"`
	StartTime string `json:"startTime" binding:"required,datetime=15:04"`
	EndTime   string `json:"endTime"   binding:"required,datetime=15:04"`
	Location  string `json:"location"  binding:"omitempty,max=200"`
	Type      string `json:"type"      binding:"required,max=50"`
}

// AddCourseRequest 向课表添加课程请求
type AddCourseRequest struct {
	ScheduleID string            `json:"scheduleId" binding:"required,uuid"`
	Code       string            `json:"code"       binding:"required,max=50"`
	Name       string            `json:"name"       binding:"required,max=200"`
	Instructor string            `json:"instructor" binding:"required,max=100"`
	Credits    int               `json:"credits"    binding:"required,min=1,max=30"`
	Color      string            `json:"color"      binding:"required,max=20"`
	TimeSlots  []TimeSlotRequest `json:"timeSlots"  binding:"omitempty,dive"`
}

// UpdateCourseRequest 更新课程请求（整字段替换）
type UpdateCourseRequest struct {
	Code       string            `json:"code"       binding:"required,max=50"`
	Name       string            `json:"name"       binding:"required,max=200"`
	Instructor string            `json:"instructor" binding:"required,max=100"`
	Credits    int               `json:"credits"    binding:"required,min=1,max=30"`
	Color      string            `json:"color"      binding:"required,max=20"`
	TimeSlots  []TimeSlotRequest `json:"timeSlots"  binding:"omitempty,dive"`
}

// ── 响应 ──

// TimeSlotResponse 时间段响应
type TimeSlotResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Location  string `json:"location,omitempty"`
	Type      string `json:"type"`
}

// CourseResponse 课程响应
type CourseResponse struct {
	ID         string             `json:"id"`
	ScheduleID string             `json:"scheduleId"`
	Code       string             `json:"code"`
	Name       string             `json:"name"`
	Instructor string             `json:"instructor"`
	Credits    int                `json:"credits"`
	Color      string             `json:"color"`
	TimeSlots  []TimeSlotResponse `json:"timeSlots"`
}

// NewTimeSlotResponse 由模型构造时间段响应
func NewTimeSlotResponse(ts *model.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		Day:       ts.Day,
		StartTime: ts.StartTime,
		EndTime:   ts.EndTime,
		Location:  ts.Location,
		Type:      ts.Type,
	}
}

// NewCourseResponse 由模型构造课程响应
func NewCourseResponse(c *model.Course) *CourseResponse {
	slots := make([]TimeSlotResponse, 0, len(c.TimeSlots))
	for i := range c.TimeSlots {
		slots = append(slots, NewTimeSlotResponse(&c.TimeSlots[i]))
	}
	return &CourseResponse{
		ID:         c.CourseID,
		ScheduleID: c.ScheduleID,
		Code:       c.Code,
		Name:       c.Name,
		Instructor: c.Instructor,
		Credits:    c.Credits,
		Color:      c.Color,
		TimeSlots:  slots,
	}
}

// [自证通过] internal/dto/course.go
