/**
 * 路由:公共路由
 * @author: sun977
 * @date: 2025.11.20
 * @description: 公共路由,包含登录、登出、令牌刷新等认证入口
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 设置公共路由
func (r *Router) setupPublicRoutes(v1 *gin.RouterGroup) {
	auth := v1.Group("/auth")
	{
		// 用户登录
		auth.POST("/login", r.authModule.LoginHandler.Login)
		// 刷新令牌(从body中传递refresh_token)
		auth.POST("/refresh", r.authModule.RefreshHandler.Refresh)
		// 用户登出(从请求头Authorization传递access token)
		auth.POST("/logout", r.authModule.LogoutHandler.Logout)
	}
}
