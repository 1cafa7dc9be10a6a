package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/dto"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	p             *presenter
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, p *presenter) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, p: p}
}

// GetAssignment 获取作业
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentSvc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, h.p.assignment(assignment))
}

// UpdateAssignment 全量更新作业；course_id 非空时移动到另一门课程
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
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

	assignment, err := h.assignmentSvc.Update(c.Request.Context(), userID, id, assignmentInput(&req))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, h.p.assignment(assignment))
}

// DeleteAssignment 删除作业
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAssignmentError 统一处理作业模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 16001, "作业不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15001, "课程不存在")
	case isAssignmentInputError(err):
		response.BadRequest(c, 16002, err.Error())
	default:
		handleCommonError(c, err)
	}
}
