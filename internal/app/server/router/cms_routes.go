/**
 * 路由:内容平台路由
 * @author: sun977
 * @date: 2025.11.20
 * @description: slug解析与菜单路由,匿名可达但携带令牌时按认证身份聚合权限
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupCMSRoutes 设置内容平台路由
// 可选认证: 无令牌按匿名(仅everyone组)处理,有令牌按用户身份处理
func (r *Router) setupCMSRoutes(v1 *gin.RouterGroup) {
	optional := r.middlewareManager.GinOptionalAuthMiddleware()

	resolve := v1.Group("/resolve", optional)
	{
		// 单段路径: SINGLE模块
		resolve.GET("/:moduleSlug", r.cmsModule.ResolveHandler.ResolveSingle)
		// 双段路径: MULTI模块实例
		resolve.GET("/:moduleSlug/:instanceSlug", r.cmsModule.ResolveHandler.ResolveMulti)
	}

	menus := v1.Group("/menus", optional)
	{
		// 当前调用者的可见菜单树
		menus.GET("/me", r.cmsModule.MenuHandler.GetMyMenu)
	}
}
