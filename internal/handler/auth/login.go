/**
 * 接口层:登录接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户登录认证
 * @func: Login
 */
package auth

import (
	"errors"
	"net/http"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LoginHandler 登录接口处理器
type LoginHandler struct {
	sessionService *auth.SessionService
}

// NewLoginHandler 创建登录处理器实例
func NewLoginHandler(sessionService *auth.SessionService) *LoginHandler {
	return &LoginHandler{
		sessionService: sessionService,
	}
}

// Login 用户登录接口
// POST /api/v1/auth/login
func (h *LoginHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "error",
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	// 客户端IP随context传入业务层,用于登录审计日志
	ctx := utils.WithClientIP(c.Request.Context(), utils.GetClientIP(c))

	resp, err := h.sessionService.Login(ctx, &req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, system.ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
		case errors.Is(err, system.ErrUserDisabled):
			statusCode = http.StatusForbidden
		}
		c.JSON(statusCode, model.APIResponse{
			Code:    statusCode,
			Status:  "error",
			Message: "Login failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Login successful",
		Data:    resp,
	})
}
