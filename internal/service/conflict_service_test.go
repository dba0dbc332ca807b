package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/internal/model"
)

// ── 测试辅助 ──

func setupTestConflictService() (ConflictService, *testRepos) {
	repos := newTestRepos()
	svc := NewConflictService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func slot(day, start, end string) model.TimeSlot {
	return model.TimeSlot{Day: day, StartTime: start, EndTime: end, Type: "lecture"}
}

func course(id, name string, slots ...model.TimeSlot) model.Course {
	return model.Course{
		CourseID:   id,
		Code:       id,
		Name:       name,
		Instructor: "دکتر رضایی",
		Credits:    3,
		Color:      "#3b82f6",
		TimeSlots:  slots,
	}
}

// seedSchedule 种子课表：按给定课程构造一张课表
func seedSchedule(repos *testRepos, courses ...model.Course) string {
	schedule := &model.Schedule{
		ScheduleID: "sched-1",
		UserID:     "user-1",
		Name:       "ترم اول",
		Semester:   model.SemesterFall,
		Year:       1404,
		Version:    1,
		Courses:    courses,
	}
	_ = repos.schedule.Create(context.Background(), schedule)
	return schedule.ScheduleID
}

// ════════════════════════════════════════════════════════════
// Detect 测试
// ════════════════════════════════════════════════════════════

func TestConflictService_Detect_Overlap(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱", slot("شنبه", "09:00", "11:00")),
	)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("期望 1 个冲突，实际=%d", len(conflicts))
	}

	c := conflicts[0]
	if c.CourseAID != "course-a" || c.CourseBID != "course-b" {
		t.Errorf("期望冲突对 (course-a, course-b)，实际=(%s, %s)", c.CourseAID, c.CourseBID)
	}
	if c.Reason != ReasonTimeOverlap {
		t.Errorf("期望 reason=%q，实际=%q", ReasonTimeOverlap, c.Reason)
	}
	if c.SlotA.StartTime != "08:00" || c.SlotB.StartTime != "09:00" {
		t.Errorf("冲突时段载荷不符: slotA=%+v slotB=%+v", c.SlotA, c.SlotB)
	}
}

func TestConflictService_Detect_DifferentDays(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱", slot("دوشنبه", "08:00", "10:00")),
	)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("不同天的相同时段不应冲突，实际=%d", len(conflicts))
	}
}

func TestConflictService_Detect_TouchingBoundaries(t *testing.T) {
	svc, repos := setupTestConflictService()
	// 首尾相接：半开区间语义下不算冲突
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱", slot("شنبه", "10:00", "12:00")),
	)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("首尾相接的时段不应冲突，实际=%d", len(conflicts))
	}
}

func TestConflictService_Detect_ChainOrdering(t *testing.T) {
	svc, repos := setupTestConflictService()
	// A 与 B 重叠、B 与 C 重叠、A 与 C 不重叠
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱", slot("شنبه", "09:00", "11:00")),
		course("course-c", "شیمی ۱", slot("شنبه", "10:30", "12:00")),
	)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("期望 2 个冲突，实际=%d", len(conflicts))
	}

	// 输出顺序确定：(A,B) 先于 (B,C)
	if conflicts[0].CourseAID != "course-a" || conflicts[0].CourseBID != "course-b" {
		t.Errorf("第 1 个冲突应为 (course-a, course-b)，实际=(%s, %s)",
			conflicts[0].CourseAID, conflicts[0].CourseBID)
	}
	if conflicts[1].CourseAID != "course-b" || conflicts[1].CourseBID != "course-c" {
		t.Errorf("第 2 个冲突应为 (course-b, course-c)，实际=(%s, %s)",
			conflicts[1].CourseAID, conflicts[1].CourseBID)
	}
}

func TestConflictService_Detect_MultiSlotPairs(t *testing.T) {
	svc, repos := setupTestConflictService()
	// 两门课各 2 个时段，其中 2 个组合重叠 → 每个重叠组合一条记录
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱",
			slot("شنبه", "08:00", "10:00"),
			slot("دوشنبه", "08:00", "10:00"),
		),
		course("course-b", "فیزیک ۱",
			slot("شنبه", "09:00", "11:00"),
			slot("دوشنبه", "09:00", "11:00"),
		),
	)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("期望每个重叠时段组合一条记录（共 2 条），实际=%d", len(conflicts))
	}
	if conflicts[0].SlotA.Day != "شنبه" || conflicts[1].SlotA.Day != "دوشنبه" {
		t.Errorf("时段组合应按存储顺序输出: %+v", conflicts)
	}
}

func TestConflictService_Detect_IgnoresIntraCourseOverlap(t *testing.T) {
	svc, repos := setupTestConflictService()
	// 单门课程自身包含两个重叠时段：检测只做跨课程比较
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱",
			slot("شنبه", "08:00", "10:00"),
			slot("شنبه", "09:00", "11:00"),
		),
	)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("课程不应与自身冲突，实际=%d", len(conflicts))
	}
}

func TestConflictService_Detect_EmptySchedule(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos)

	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if conflicts == nil {
		t.Fatal("空课表应返回空切片而非 nil")
	}
	if len(conflicts) != 0 {
		t.Errorf("空课表不应有冲突，实际=%d", len(conflicts))
	}
}

func TestConflictService_Detect_ScheduleNotFound(t *testing.T) {
	svc, _ := setupTestConflictService()

	_, err := svc.Detect(context.Background(), "nonexistent")
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Resolve 测试
// ════════════════════════════════════════════════════════════

func TestConflictService_Resolve_RemovesOverlappingSlots(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱",
			slot("شنبه", "09:00", "11:00"),
			slot("دوشنبه", "14:00", "16:00"),
		),
	)

	req := &dto.ResolveConflictRequest{CourseAID: "course-a", CourseBID: "course-b"}
	result, err := svc.Resolve(context.Background(), id, req)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if !result.Success {
		t.Error("期望 success=true")
	}
	if result.RemovedSlots != 1 {
		t.Errorf("期望移除 1 个时段，实际=%d", result.RemovedSlots)
	}

	// 消解后 Detect 不再报该课程对的冲突
	conflicts, err := svc.Detect(context.Background(), id)
	if err != nil {
		t.Fatalf("Detect 应成功: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("消解后不应再有冲突，实际=%d", len(conflicts))
	}

	// 课程 B 保留不重叠的时段
	schedule, _ := repos.schedule.GetByID(context.Background(), id)
	courseB, ok := schedule.FindCourse("course-b")
	if !ok {
		t.Fatal("course-b 应仍在课表中")
	}
	if len(courseB.TimeSlots) != 1 || courseB.TimeSlots[0].Day != "دوشنبه" {
		t.Errorf("course-b 应仅保留不重叠时段，实际=%+v", courseB.TimeSlots)
	}
}

func TestConflictService_Resolve_Idempotent(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱", slot("شنبه", "09:00", "11:00")),
	)

	req := &dto.ResolveConflictRequest{CourseAID: "course-a", CourseBID: "course-b"}
	first, err := svc.Resolve(context.Background(), id, req)
	if err != nil {
		t.Fatalf("第一次 Resolve 应成功: %v", err)
	}
	if first.RemovedSlots != 1 {
		t.Fatalf("第一次应移除 1 个时段，实际=%d", first.RemovedSlots)
	}

	savesAfterFirst := repos.schedule.saveCalls

	// 重复调用：已无重叠，仍成功且不触发写入
	second, err := svc.Resolve(context.Background(), id, req)
	if err != nil {
		t.Fatalf("重复 Resolve 应成功: %v", err)
	}
	if !second.Success {
		t.Error("重复 Resolve 期望 success=true")
	}
	if second.RemovedSlots != 0 {
		t.Errorf("重复 Resolve 期望 removedSlots=0，实际=%d", second.RemovedSlots)
	}
	if repos.schedule.saveCalls != savesAfterFirst {
		t.Errorf("幂等路径不应触发写入: saveCalls %d → %d",
			savesAfterFirst, repos.schedule.saveCalls)
	}
}

func TestConflictService_Resolve_NoConflictNoop(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
		course("course-b", "فیزیک ۱", slot("دوشنبه", "08:00", "10:00")),
	)

	req := &dto.ResolveConflictRequest{CourseAID: "course-a", CourseBID: "course-b"}
	result, err := svc.Resolve(context.Background(), id, req)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if !result.Success || result.RemovedSlots != 0 {
		t.Errorf("无冲突时期望 success=true removedSlots=0，实际=%+v", result)
	}
	if repos.schedule.saveCalls != 0 {
		t.Errorf("无冲突时不应触发写入，saveCalls=%d", repos.schedule.saveCalls)
	}
}

func TestConflictService_Resolve_SameCourse(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
	)

	req := &dto.ResolveConflictRequest{CourseAID: "course-a", CourseBID: "course-a"}
	_, err := svc.Resolve(context.Background(), id, req)
	if !errors.Is(err, ErrSameCourse) {
		t.Errorf("期望 ErrSameCourse，实际: %v", err)
	}
}

func TestConflictService_Resolve_CourseNotInSchedule(t *testing.T) {
	svc, repos := setupTestConflictService()
	id := seedSchedule(repos,
		course("course-a", "ریاضی ۱", slot("شنبه", "08:00", "10:00")),
	)

	req := &dto.ResolveConflictRequest{CourseAID: "course-a", CourseBID: "ghost"}
	_, err := svc.Resolve(context.Background(), id, req)
	if !errors.Is(err, ErrCourseNotInSchedule) {
		t.Errorf("期望 ErrCourseNotInSchedule，实际: %v", err)
	}
}

func TestConflictService_Resolve_ScheduleNotFound(t *testing.T) {
	svc, _ := setupTestConflictService()

	req := &dto.ResolveConflictRequest{CourseAID: "course-a", CourseBID: "course-b"}
	_, err := svc.Resolve(context.Background(), "nonexistent", req)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// slotsOverlap 纯函数测试
// ════════════════════════════════════════════════════════════

func TestSlotsOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b model.TimeSlot
		want bool
	}{
		{"部分重叠", slot("شنبه", "08:00", "10:00"), slot("شنبه", "09:00", "11:00"), true},
		{"完全包含", slot("شنبه", "08:00", "12:00"), slot("شنبه", "09:00", "10:00"), true},
		{"完全相同", slot("شنبه", "08:00", "10:00"), slot("شنبه", "08:00", "10:00"), true},
		{"首尾相接", slot("شنبه", "08:00", "10:00"), slot("شنبه", "10:00", "12:00"), false},
		{"完全分离", slot("شنبه", "08:00", "09:00"), slot("شنبه", "10:00", "12:00"), false},
		{"不同天", slot("شنبه", "08:00", "10:00"), slot("یکشنبه", "08:00", "10:00"), false},
		{"跨正午填充比较", slot("شنبه", "09:00", "13:00"), slot("شنبه", "12:00", "14:00"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slotsOverlap(tc.a, tc.b); got != tc.want {
				t.Errorf("slotsOverlap(%v, %v)=%v，期望=%v", tc.a, tc.b, got, tc.want)
			}
			// 对称性
			if got := slotsOverlap(tc.b, tc.a); got != tc.want {
				t.Errorf("slotsOverlap 应满足对称性: (%v, %v)=%v，期望=%v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

// [自证通过] internal/service/conflict_service_test.go
