/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: 通用的工具包
 * @func:
 */

package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ContextKey 类型用于标准上下文键的定义，避免使用裸字符串造成键冲突
type ContextKey string

// ContextKeyClientIP 标准上下文中存储客户端IP的统一键
const ContextKeyClientIP ContextKey = "client_ip"

// GetCurrentUserIDFromGinContext 从 Gin 上下文中提取当前用户ID
// 如果不存在（匿名调用者）则返回空字符串
// 来源：user_id 由JWT中间件写入Gin上下文 GinJWTAuthMiddleware() / GinOptionalAuthMiddleware()
func GetCurrentUserIDFromGinContext(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(string); ok2 {
			return id
		}
	}
	return ""
}

// GetCurrentRolesFromGinContext 从 Gin 上下文中提取当前用户角色列表
// 匿名调用者返回空列表
func GetCurrentRolesFromGinContext(c *gin.Context) []string {
	if v, ok := c.Get("roles"); ok {
		if roles, ok2 := v.([]string); ok2 {
			return roles
		}
	}
	return nil
}

// WithClientIP 将客户端IP写入标准上下文（统一键）
func WithClientIP(ctx context.Context, clientIP string) context.Context {
	return context.WithValue(ctx, ContextKeyClientIP, clientIP)
}

// GetClientIPFromContext 从标准上下文读取客户端IP（统一键）
// 说明：
// - 使用 ContextKeyClientIP 作为唯一键，保证读写一致，跨包可用
// - 如果不存在或类型不匹配，返回空字符串
func GetClientIPFromContext(ctx context.Context) string {
	v := ctx.Value(ContextKeyClientIP)
	if ip, ok := v.(string); ok {
		return ip
	}
	return ""
}
