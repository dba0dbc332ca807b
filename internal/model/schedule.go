package model

// ── 领域标签 ──

// 学期标签（波斯语：پاییز=秋 زمستان=冬 بهار=春 تابستان=夏）
const (
	SemesterFall   = "پاییز"
	SemesterWinter = "زمستان"
	SemesterSpring = "بهار"
	SemesterSummer = "تابستان"
)

// Semesters 允许的学期标签集合
var Semesters = []string{SemesterFall, SemesterWinter, SemesterSpring, SemesterSummer}

// Weekdays 允许的星期标签集合（波斯历一周从 شنبه=周六 开始）
var Weekdays = []string{"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنج‌شنبه", "جمعه"}

// IsValidSemester 判断学期标签是否合法
func IsValidSemester(s string) bool {
	for _, v := range Semesters {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidWeekday 判断星期标签是否合法
func IsValidWeekday(d string) bool {
	for _, v := range Weekdays {
		if v == d {
			return true
		}
	}
	return false
}

// ── 聚合模型 ──

// Schedule 课表聚合根 — 对应 schedules
// Courses 为其独占拥有的有序子实体集合（按 position 升序加载）
type Schedule struct {
	ScheduleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     string `gorm:"type:uuid;not null"                             json:"userId"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Semester   string `gorm:"type:varchar(20);not null"                      json:"semester"`
	Year       int    `gorm:"type:smallint;not null"                         json:"year"`
	Version    int    `gorm:"not null;default:1"                             json:"-"`
	BaseModel

	Courses []Course `gorm:"foreignKey:ScheduleID" json:"courses"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// FindCourse 按 ID 在课表内查找课程（一等操作，返回指针以便原位修改）
func (s *Schedule) FindCourse(courseID string) (*Course, bool) {
	for i := range s.Courses {
		if s.Courses[i].CourseID == courseID {
			return &s.Courses[i], true
		}
	}
	return nil, false
}

// RemoveCourse 按 ID 从课表移除课程，返回是否命中
func (s *Schedule) RemoveCourse(courseID string) bool {
	for i := range s.Courses {
		if s.Courses[i].CourseID == courseID {
			s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
			return true
		}
	}
	return false
}

// Course 课程子实体 — 对应 courses
// 归属且仅归属一个 Schedule；身份作用域限于所属课表
type Course struct {
	CourseID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScheduleID string `gorm:"type:uuid;not null"                             json:"scheduleId"`
	Code       string `gorm:"type:varchar(50);not null"                      json:"code"`
	Name       string `gorm:"type:varchar(200);not null"                     json:"name"`
	Instructor string `gorm:"type:varchar(100);not null"                     json:"instructor"`
	Credits    int    `gorm:"type:smallint;not null"                         json:"credits"`
	Color      string `gorm:"type:varchar(20);not null"                      json:"color"`
	Position   int    `gorm:"not null;default:0"                             json:"-"`
	BaseModel

	TimeSlots []TimeSlot `gorm:"foreignKey:CourseID" json:"timeSlots"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// TimeSlot 每周重复时间段 — 对应 time_slots
// 值对象：附着到课程后不可变，无独立业务身份
// StartTime/EndTime 为零填充的 24 小时制 HH:MM 字符串，
// 按字典序比较即可得到正确的时间先后关系
type TimeSlot struct {
	TimeSlotID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	CourseID   string `gorm:"type:uuid;not null"                             json:"-"`
	Day        string `gorm:"type:varchar(20);not null"                      json:"day"`
	StartTime  string `gorm:"type:char(5);not null"                          json:"startTime"`
	EndTime    string `gorm:"type:char(5);not null"                          json:"endTime"`
	Location   string `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Type       string `gorm:"type:varchar(50);not null"                      json:"type"` // lecture | exam | practice 等自由文本
	Position   int    `gorm:"not null;default:0"                             json:"-"`
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// [自证通过] internal/model/schedule.go
