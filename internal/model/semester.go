package model

import "fmt"

// Term 学期类型
type Term string

const (
	TermFall   Term = "Fall"
	TermSpring Term = "Spring"
)

// ParseTerm 解析学期类型，仅接受 Fall / Spring
func ParseTerm(s string) (Term, error) {
	switch Term(s) {
	case TermFall, TermSpring:
		return Term(s), nil
	}
	return "", fmt.Errorf("无效的学期类型 %q", s)
}

// Semester 学期表，对应 semesters；(term, year) 全局唯一，所有用户共享
type Semester struct {
	SemesterID int64 `gorm:"column:id;primaryKey;autoIncrement"          json:"semester_id"`
	Term       Term  `gorm:"type:varchar(10);not null;uniqueIndex:uq_semesters_term_year" json:"term"`
	Year       int   `gorm:"not null;uniqueIndex:uq_semesters_term_year"               json:"year"`
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// Label 形如 "Fall 2024"
func (s *Semester) Label() string { return fmt.Sprintf("%s %d", s.Term, s.Year) }
