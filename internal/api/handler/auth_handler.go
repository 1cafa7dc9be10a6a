package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/dto"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	p       *presenter
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, p *presenter) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, p: p}
}

// Register 注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	id, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, dto.RegisterResponse{ID: id, Username: req.Username})
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, dto.TokenResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   int(result.ExpiresIn.Seconds()),
		User:        h.p.user(result.User),
	})
}

// Logout 用户登出，当前 Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt := tokenInfo(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetCurrentUser 当前用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, h.p.user(user))
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		// 用户不存在与密码错误不做区分
		response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
	case errors.Is(err, service.ErrUsernameRequired), errors.Is(err, service.ErrPasswordInvalid):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "用户不存在")
	default:
		handleCommonError(c, err)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
