package model

// DefaultCourseColor 未指定颜色时使用的品牌色
const DefaultCourseColor = "#4F46E5"

// Course 课程表，对应 courses；归属唯一的 (用户, 学期)
type Course struct {
	CourseID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"course_id"`
	UserID     int64  `gorm:"not null;index:idx_courses_user_semester" json:"user_id"`
	SemesterID int64  `gorm:"not null;index:idx_courses_user_semester" json:"semester_id"`
	Code       string `gorm:"type:varchar(50);not null"          json:"code"`
	Name       string `gorm:"type:varchar(200);not null"         json:"name"`
	ColorHex   string `gorm:"column:color_hex;type:varchar(16);not null" json:"color_hex"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
