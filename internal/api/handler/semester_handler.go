package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/dto"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/response"
)

// SemesterHandler 学期模块 HTTP 处理器，含学期下的课程与即将截止视图
type SemesterHandler struct {
	semesterSvc service.SemesterService
	courseSvc   service.CourseService
	upcomingSvc service.UpcomingService
	p           *presenter
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(
	semesterSvc service.SemesterService,
	courseSvc service.CourseService,
	upcomingSvc service.UpcomingService,
	p *presenter,
) *SemesterHandler {
	return &SemesterHandler{
		semesterSvc: semesterSvc,
		courseSvc:   courseSvc,
		upcomingSvc: upcomingSvc,
		p:           p,
	}
}

// ListSemesters 获取学期列表
// GET /api/v1/semesters
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.semesterSvc.List(c.Request.Context())
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	list := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		list = append(list, h.p.semester(&semesters[i]))
	}
	response.OK(c, gin.H{"list": list})
}

// GetSemester 获取学期详情
// GET /api/v1/semesters/:id
func (h *SemesterHandler) GetSemester(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	semester, err := h.semesterSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	response.OK(c, h.p.semester(semester))
}

// GetOrCreateSemester 选择学期：不存在则创建
// POST /api/v1/semesters
func (h *SemesterHandler) GetOrCreateSemester(c *gin.Context) {
	var req dto.SemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	semester, err := h.semesterSvc.GetOrCreate(c.Request.Context(), req.Term, req.Year)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	response.OK(c, h.p.semester(semester))
}

// ListCourses 当前用户在该学期的课程
// GET /api/v1/semesters/:id/courses
func (h *SemesterHandler) ListCourses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semesterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListBySemester(c.Request.Context(), userID, semesterID)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	list := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		list = append(list, h.p.course(&courses[i]))
	}
	response.OK(c, gin.H{"list": list})
}

// CreateCourse 在该学期下创建课程
// POST /api/v1/semesters/:id/courses
func (h *SemesterHandler) CreateCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semesterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), userID, semesterID, courseInput(&req))
	if err != nil {
		if errors.Is(err, service.ErrCourseFieldEmpty) {
			response.BadRequest(c, 15002, "课程代码和名称不能为空")
			return
		}
		h.handleSemesterError(c, err)
		return
	}

	response.Created(c, h.p.course(course))
}

// Upcoming 即将截止的作业
// GET /api/v1/semesters/:id/upcoming?limit=
func (h *SemesterHandler) Upcoming(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semesterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var q dto.UpcomingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.InvalidParams(c, err)
		return
	}

	views, err := h.upcomingSvc.Top(c.Request.Context(), userID, semesterID, q.Limit)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	list := make([]dto.UpcomingItemResponse, 0, len(views))
	for i := range views {
		list = append(list, h.p.upcoming(&views[i]))
	}
	response.OK(c, gin.H{"list": list})
}

// handleSemesterError 统一处理学期模块业务错误
func (h *SemesterHandler) handleSemesterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInvalidTerm), errors.Is(err, service.ErrInvalidYear):
		response.BadRequest(c, 14002, err.Error())
	default:
		handleCommonError(c, err)
	}
}
