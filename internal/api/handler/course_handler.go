package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/dto"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器，含课程下的作业
type CourseHandler struct {
	courseSvc     service.CourseService
	assignmentSvc service.AssignmentService
	p             *presenter
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, assignmentSvc service.AssignmentService, p *presenter) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, assignmentSvc: assignmentSvc, p: p}
}

// GetCourse 获取课程
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, h.p.course(course))
}

// UpdateCourse 全量更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), userID, id, courseInput(&req))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, h.p.course(course))
}

// DeleteCourse 删除课程及其全部作业
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListAssignments 课程下的作业，按截止时间升序
// GET /api/v1/courses/:id/assignments
func (h *CourseHandler) ListAssignments(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentSvc.ListByCourse(c.Request.Context(), userID, id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	list := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		list = append(list, h.p.assignment(&assignments[i]))
	}
	response.OK(c, gin.H{"list": list})
}

// CreateAssignment 在课程下创建作业
// POST /api/v1/courses/:id/assignments
func (h *CourseHandler) CreateAssignment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	in := assignmentInput(&req)
	in.CourseID = 0
	assignment, err := h.assignmentSvc.Create(c.Request.Context(), userID, id, in)
	if err != nil {
		if isAssignmentInputError(err) {
			response.BadRequest(c, 16002, err.Error())
			return
		}
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, h.p.assignment(assignment))
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15001, "课程不存在")
	case errors.Is(err, service.ErrCourseFieldEmpty):
		response.BadRequest(c, 15002, "课程代码和名称不能为空")
	default:
		handleCommonError(c, err)
	}
}

// ── 请求转换 ──

func courseInput(req *dto.CourseRequest) service.CourseInput {
	return service.CourseInput{
		Code:     req.Code,
		Name:     req.Name,
		ColorHex: req.ColorHex,
	}
}

// assignmentInput 截止时间按请求自带的偏移解析为绝对时刻，由服务层换算为 UTC
func assignmentInput(req *dto.AssignmentRequest) service.AssignmentInput {
	return service.AssignmentInput{
		CourseID: req.CourseID,
		Type:     model.AssignmentType(req.Type),
		Title:    req.Title,
		DueAt:    req.DueAt,
		Topics:   req.Topics,
		Notes:    req.Notes,
	}
}

func isAssignmentInputError(err error) bool {
	return errors.Is(err, service.ErrInvalidAssignmentType) ||
		errors.Is(err, service.ErrAssignmentTitleEmpty) ||
		errors.Is(err, service.ErrAssignmentDueRequired)
}
