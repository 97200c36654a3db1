/**
 * 接口层:登出接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户登出,令牌撤销
 * @func: Logout
 */
package auth

import (
	"net/http"

	"neocms/internal/model"
	pkgauth "neocms/internal/pkg/auth"
	"neocms/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LogoutHandler 登出接口处理器
type LogoutHandler struct {
	sessionService *auth.SessionService
}

// NewLogoutHandler 创建登出处理器实例
func NewLogoutHandler(sessionService *auth.SessionService) *LogoutHandler {
	return &LogoutHandler{
		sessionService: sessionService,
	}
}

// Logout 用户登出接口
// POST /api/v1/auth/logout
func (h *LogoutHandler) Logout(c *gin.Context) {
	token := pkgauth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "error",
			Message: "Missing authorization token",
		})
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "error",
			Message: "Logout failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Logout successful",
	})
}
