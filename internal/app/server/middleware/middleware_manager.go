/**
 * 中间件:中间件管理器
 * @author: sun977
 * @date: 2025.11.20
 * @description: 管理所有Gin中间件,提供统一的中间件接口
 * @func: NewMiddlewareManager
 */
package middleware

import (
	"sync"

	"neocms/internal/config"
	"neocms/internal/service/auth"
)

// MiddlewareManager 中间件管理器
type MiddlewareManager struct {
	sessionService *auth.SessionService   // 会话服务，用于JWT令牌验证
	jwtService     *auth.JWTService       // JWT服务，用于令牌管理
	securityConfig *config.SecurityConfig // 安全配置，用于中间件配置

	rateLimiter     RateLimiter
	rateLimiterOnce sync.Once
}

// NewMiddlewareManager 创建中间件管理器
func NewMiddlewareManager(sessionService *auth.SessionService, jwtService *auth.JWTService, securityConfig *config.SecurityConfig) *MiddlewareManager {
	return &MiddlewareManager{
		sessionService: sessionService,
		jwtService:     jwtService,
		securityConfig: securityConfig,
	}
}
