package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ag-enzo/coursepilot-college-organizer/pkg/errors"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/response"
)

// handleCommonError 各模块未单独处理的错误按分类映射
func handleCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, 10404, "记录不存在")
	case errors.Is(err, apperrors.ErrDuplicateUsername):
		response.Error(c, http.StatusConflict, 11002, "用户名已存在")
	case errors.Is(err, apperrors.ErrConstraintViolation):
		response.Error(c, http.StatusConflict, 10409, err.Error())
	case errors.Is(err, apperrors.ErrCorrupted):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, 50001, "数据不一致")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
