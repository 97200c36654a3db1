/**
 * 中间件:认证相关中间件
 * @author: sun977
 * @date: 2025.11.20
 * @description: 定义认证相关中间件
 * @func:
 *   - GinJWTAuthMiddleware: 强制JWT认证中间件
 *   - GinOptionalAuthMiddleware: 可选JWT认证中间件,匿名调用者放行
 *   - GinAdminRoleMiddleware: 管理员角色检查中间件
 */
package middleware

import (
	"errors"
	"net/http"

	"neocms/internal/model"
	pkgauth "neocms/internal/pkg/auth"
	"neocms/internal/pkg/logger"
	"neocms/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminRoleName 平台管理角色名
const AdminRoleName = "admin"

// GinJWTAuthMiddleware 强制JWT认证中间件
// 验证请求头中的JWT令牌，并将用户信息存储到Gin上下文中
// 使用方式: router.Use(middlewareManager.GinJWTAuthMiddleware())
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.GetClientIP(c)
		requestID := c.GetHeader("X-Request-ID")

		accessToken, err := extractTokenFromGinHeader(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "missing or invalid authorization header",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		// 令牌校验含黑名单与密码版本检查
		claims, err := m.sessionService.ValidateSession(c.Request.Context(), accessToken)
		if err != nil {
			logger.LogError(err, requestID, "", clientIP, "token_validation", c.Request.Method, map[string]interface{}{
				"operation": "token_validation",
				"path":      c.Request.URL.Path,
				"timestamp": logger.NowFormatted(),
			})
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "invalid or expired token",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		// 用户信息写入Gin上下文,供handler与后续中间件使用
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("roles", claims.Roles)
		c.Set("claims", claims)

		c.Next()
	}
}

// GinOptionalAuthMiddleware 可选JWT认证中间件
// 携带有效令牌时写入用户上下文,未携带或令牌无效时按匿名放行
// 匿名调用者只参与everyone组的权限聚合
func (m *MiddlewareManager) GinOptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := extractTokenFromGinHeader(c)
		if err != nil {
			c.Next()
			return
		}

		claims, err := m.sessionService.ValidateSession(c.Request.Context(), accessToken)
		if err != nil {
			// 无效令牌按匿名处理,不阻断请求
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("roles", claims.Roles)
		c.Set("claims", claims)

		c.Next()
	}
}

// GinAdminRoleMiddleware 管理员角色检查中间件
// 必须在GinJWTAuthMiddleware之后使用
func (m *MiddlewareManager) GinAdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := utils.GetCurrentRolesFromGinContext(c)
		for _, role := range roles {
			if role == AdminRoleName {
				c.Next()
				return
			}
		}

		userID := utils.GetCurrentUserIDFromGinContext(c)
		logger.LogBusinessOperation("admin_access_denied", userID, "", utils.GetClientIP(c), c.GetHeader("X-Request-ID"), "denied",
			"non-admin access to admin endpoint", map[string]interface{}{
				"path":      c.Request.URL.Path,
				"timestamp": logger.NowFormatted(),
			})

		c.JSON(http.StatusForbidden, model.APIResponse{
			Code:    http.StatusForbidden,
			Status:  "error",
			Message: "admin role required",
		})
		c.Abort()
	}
}

// extractTokenFromGinHeader 从Gin请求头中提取JWT令牌
func extractTokenFromGinHeader(c *gin.Context) (string, error) {
	token := pkgauth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if token == "" {
		return "", errors.New("authorization header is empty or malformed")
	}
	return token, nil
}
