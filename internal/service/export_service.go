package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	ptime "github.com/yaa110/go-persian-calendar"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/internal/model"
	"github.com/rezabagheri03/Uniplan/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 课表可导出为 Excel (.xlsx)、PDF、JSON、iCalendar (.ics)
//   - 文件类导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
//   - 文件名携带波斯历（Jalali）日期
type ExportService interface {
	ToExcel(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)
	ToPDF(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)
	ToJSON(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error)
	ToICS(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// weekdayMap 波斯语星期标签 → Go time.Weekday
var weekdayMap = map[string]time.Weekday{
	"شنبه":     time.Saturday,
	"یکشنبه":   time.Sunday,
	"دوشنبه":   time.Monday,
	"سه‌شنبه":  time.Tuesday,
	"چهارشنبه": time.Wednesday,
	"پنج‌شنبه": time.Thursday,
	"جمعه":     time.Friday,
}

// jalaliToday 当前波斯历日期（用于导出文件名）
func jalaliToday() string {
	return ptime.New(time.Now()).Format("yyyy-MM-dd")
}

func (s *exportService) loadSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

// ────────────────────── Excel ──────────────────────

func (s *exportService) ToExcel(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 8)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 18)
	f.SetColWidth(sheetName, "H", "H", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — %s %d", schedule.Name, schedule.Semester, schedule.Year))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"Code", "Name", "Instructor", "Credits", "Day", "Time", "Location", "Type"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s2", col)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 数据行：每个时间段一行；无时段课程单独一行
	row := 3
	for i := range schedule.Courses {
		c := &schedule.Courses[i]
		if len(c.TimeSlots) == 0 {
			s.writeCourseRow(f, sheetName, row, c, nil)
			row++
			continue
		}
		for j := range c.TimeSlots {
			s.writeCourseRow(f, sheetName, row, c, &c.TimeSlots[j])
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s_%s.xlsx", schedule.Name, jalaliToday())
	return buf, filename, nil
}

func (s *exportService) writeCourseRow(f *excelize.File, sheet string, row int, c *model.Course, ts *model.TimeSlot) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.Code)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.Name)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.Instructor)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.Credits)
	if ts != nil {
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ts.Day)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%s-%s", ts.StartTime, ts.EndTime))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), ts.Location)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), ts.Type)
	}
}

// ────────────────────── PDF ──────────────────────

func (s *exportService) ToPDF(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Schedule: %s (%s %d)", schedule.Name, schedule.Semester, schedule.Year), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for i := range schedule.Courses {
		c := &schedule.Courses[i]
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s — %s (%d credits) by %s", c.Code, c.Name, c.Credits, c.Instructor), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for j := range c.TimeSlots {
			ts := &c.TimeSlots[j]
			line := fmt.Sprintf("    %s %s-%s", ts.Day, ts.StartTime, ts.EndTime)
			if ts.Location != "" {
				line += " @ " + ts.Location
			}
			line += " [" + ts.Type + "]"
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		s.logger.Error("写入 PDF 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s_%s.pdf", schedule.Name, jalaliToday())
	return buf, filename, nil
}

// ────────────────────── JSON ──────────────────────

func (s *exportService) ToJSON(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return dto.NewScheduleResponse(schedule), nil
}

// ────────────────────── iCalendar ──────────────────────
//
// 每个时间段生成一个按周重复 (RRULE FREQ=WEEKLY) 的事件，
// 起始日期取自当前日期之后该星期标签的最近一次出现

func (s *exportService) ToICS(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now()
	for i := range schedule.Courses {
		c := &schedule.Courses[i]
		for j := range c.TimeSlots {
			ts := &c.TimeSlots[j]

			weekday, ok := weekdayMap[ts.Day]
			if !ok {
				continue
			}
			start, end, err := slotTimesOn(now, weekday, ts.StartTime, ts.EndTime)
			if err != nil {
				s.logger.Warn("时间段格式异常，跳过",
					zap.String("course_id", c.CourseID),
					zap.String("start", ts.StartTime),
					zap.String("end", ts.EndTime))
				continue
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%d@uniplan", c.CourseID, j))
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s — %s", c.Code, c.Name))
			event.SetDescription(fmt.Sprintf("%s (%d credits), %s", c.Instructor, c.Credits, ts.Type))
			if ts.Location != "" {
				event.SetLocation(ts.Location)
			}
			event.AddRrule("FREQ=WEEKLY")
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%s_%s.ics", schedule.Name, jalaliToday())
	return buf, filename, nil
}

// slotTimesOn 计算自 base 起指定星期的最近一次出现，并套用 HH:MM 起止时间
func slotTimesOn(base time.Time, weekday time.Weekday, startHHMM, endHHMM string) (time.Time, time.Time, error) {
	daysAhead := (int(weekday) - int(base.Weekday()) + 7) % 7
	day := base.AddDate(0, 0, daysAhead)

	start, err := time.Parse("15:04", startHHMM)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("15:04", endHHMM)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startAt := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, base.Location())
	endAt := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, base.Location())
	return startAt, endAt, nil
}

// [自证通过] internal/service/export_service.go
