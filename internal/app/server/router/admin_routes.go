/**
 * 路由:管理路由
 * @author: sun977
 * @date: 2025.11.20
 * @description: 管理后台路由,需要JWT认证且具有admin角色
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupAdminRoutes 设置管理路由
func (r *Router) setupAdminRoutes(v1 *gin.RouterGroup) {
	admin := v1.Group("/admin",
		r.middlewareManager.GinJWTAuthMiddleware(),
		r.middlewareManager.GinAdminRoleMiddleware(),
	)

	// 模块定义(进程内置,只读)
	modules := admin.Group("/modules")
	{
		modules.GET("", r.cmsModule.ModuleHandler.ListModules)
		modules.GET("/:code/permissions", r.cmsModule.ModuleHandler.GetPermissionCatalogue)
	}

	// 模块实例管理
	instances := admin.Group("/instances")
	{
		instances.POST("", r.cmsModule.InstanceHandler.CreateInstance)
		instances.GET("", r.cmsModule.InstanceHandler.ListInstances)
		instances.GET("/:id", r.cmsModule.InstanceHandler.GetInstance)
		instances.PUT("/:id", r.cmsModule.InstanceHandler.UpdateInstance)
		instances.DELETE("/:id", r.cmsModule.InstanceHandler.DeleteInstance)
	}

	// 用户组与成员管理
	groups := admin.Group("/groups")
	{
		groups.POST("", r.cmsModule.GroupHandler.CreateGroup)
		groups.GET("", r.cmsModule.GroupHandler.ListGroups)
		groups.GET("/:id", r.cmsModule.GroupHandler.GetGroup)
		groups.PUT("/:id", r.cmsModule.GroupHandler.UpdateGroup)
		groups.DELETE("/:id", r.cmsModule.GroupHandler.DeleteGroup)
		groups.GET("/:id/members", r.cmsModule.GroupHandler.ListMembers)
		groups.POST("/:id/members", r.cmsModule.GroupHandler.AddMember)
		groups.DELETE("/:id/members/:userId", r.cmsModule.GroupHandler.RemoveMember)
	}

	// 权限授予管理
	grants := admin.Group("/grants")
	{
		grants.POST("", r.cmsModule.GrantHandler.Grant)
		grants.DELETE("", r.cmsModule.GrantHandler.Revoke)
		grants.GET("", r.cmsModule.GrantHandler.ListGrants)
	}

	// 菜单节点管理
	menus := admin.Group("/menus")
	{
		menus.GET("/tree", r.cmsModule.MenuHandler.GetAdminMenu)
		menus.POST("", r.cmsModule.MenuNodeHandler.CreateNode)
		menus.GET("/:id", r.cmsModule.MenuNodeHandler.GetNode)
		menus.PUT("/:id", r.cmsModule.MenuNodeHandler.UpdateNode)
		menus.DELETE("/:id", r.cmsModule.MenuNodeHandler.DeleteNode)
	}
}
