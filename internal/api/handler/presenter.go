package handler

import (
	"time"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/dto"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
)

// localLayout 本地时间展示格式
const localLayout = "2006-01-02 15:04"

// presenter 把领域对象转换为响应 DTO；本地时间格式化只发生在这里
type presenter struct {
	loc *time.Location
}

func newPresenter(loc *time.Location) *presenter {
	if loc == nil {
		loc = time.Local
	}
	return &presenter{loc: loc}
}

func (p *presenter) local(t time.Time) string {
	return t.In(p.loc).Format(localLayout)
}

func utc(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (p *presenter) semester(s *model.Semester) dto.SemesterResponse {
	return dto.SemesterResponse{
		ID:    s.SemesterID,
		Term:  string(s.Term),
		Year:  s.Year,
		Label: s.Label(),
	}
}

func (p *presenter) course(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:         c.CourseID,
		SemesterID: c.SemesterID,
		Code:       c.Code,
		Name:       c.Name,
		ColorHex:   c.ColorHex,
	}
}

func (p *presenter) assignment(a *model.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:         a.AssignmentID,
		CourseID:   a.CourseID,
		Type:       string(a.Type),
		Title:      a.Title,
		DueAt:      utc(a.DueAt.Time),
		DueAtLocal: p.local(a.DueAt.Time),
		Topics:     a.Topics,
		Notes:      a.Notes,
	}
}

func (p *presenter) upcoming(v *service.AssignmentView) dto.UpcomingItemResponse {
	local := p.local(v.DueAt)
	return dto.UpcomingItemResponse{
		AssignmentID: v.AssignmentID,
		CourseID:     v.CourseID,
		CourseCode:   v.CourseCode,
		CourseColor:  v.CourseColor,
		Type:         string(v.Type),
		Title:        v.Title,
		Topics:       v.Topics,
		DueAt:        utc(v.DueAt),
		DueAtLocal:   local,
		Label:        v.LabelWithDue(local),
	}
}

func (p *presenter) user(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		CreatedAt: utc(u.CreatedAt.Time),
	}
}
