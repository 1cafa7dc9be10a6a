package model

import (
	"database/sql/driver"
	"fmt"
)

// AssignmentType 作业类型
type AssignmentType string

const (
	AssignmentHW      AssignmentType = "HW"
	AssignmentQuiz    AssignmentType = "Quiz"
	AssignmentMidterm AssignmentType = "Midterm"
	AssignmentFinal   AssignmentType = "Final"
	AssignmentProject AssignmentType = "Project"
	AssignmentEssay   AssignmentType = "Essay"
	AssignmentOther   AssignmentType = "Other"
)

// AssignmentTypes 全部作业类型（展示顺序）
var AssignmentTypes = []AssignmentType{
	AssignmentHW, AssignmentQuiz, AssignmentMidterm, AssignmentFinal,
	AssignmentProject, AssignmentEssay, AssignmentOther,
}

// ParseAssignmentType 解析作业类型，未知取值归为 Other
func ParseAssignmentType(s string) AssignmentType {
	for _, t := range AssignmentTypes {
		if string(t) == s {
			return t
		}
	}
	return AssignmentOther
}

// IsValidAssignmentType 判断是否为已知类型（用于输入校验，区别于 ParseAssignmentType 的宽松读取）
func IsValidAssignmentType(s string) bool {
	for _, t := range AssignmentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Scan 读取数据库中的类型列；未知取值归为 Other
func (t *AssignmentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ParseAssignmentType(v)
	case []byte:
		*t = ParseAssignmentType(string(v))
	case nil:
		*t = AssignmentOther
	default:
		return fmt.Errorf("AssignmentType: 不支持的类型 %T", value)
	}
	return nil
}

// Value 实现 driver.Valuer
func (t AssignmentType) Value() (driver.Value, error) {
	return string(t), nil
}

// Assignment 作业表，对应 assignments；归属唯一的课程
type Assignment struct {
	AssignmentID int64          `gorm:"column:id;primaryKey;autoIncrement" json:"assignment_id"`
	CourseID     int64          `gorm:"not null;index"                     json:"course_id"`
	Type         AssignmentType `gorm:"type:varchar(16);not null"          json:"type"`
	Title        string         `gorm:"type:varchar(255);not null"         json:"title"`
	DueAt        UnixTime       `gorm:"column:due_at_utc;not null;index"   json:"due_at"`
	Topics       *string        `gorm:"type:text"                          json:"topics,omitempty"`
	Notes        *string        `gorm:"type:text"                          json:"notes,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
