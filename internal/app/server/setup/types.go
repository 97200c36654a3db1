/**
 * 初始化:模块聚合类型
 * @author: sun977
 * @date: 2025.11.20
 * @description: setup层仅负责依赖装配(Repository → Service → Handler),不侵入业务逻辑
 * @func: 各模块聚合输出结构体
 */
package setup

import (
	authHandler "neocms/internal/handler/auth"
	menuHandler "neocms/internal/handler/menu"
	resolveHandler "neocms/internal/handler/resolve"
	systemHandler "neocms/internal/handler/system"
	authService "neocms/internal/service/auth"
	"neocms/internal/service/cms"
)

// AuthModule 是认证模块的聚合输出
// 将认证相关的Handler与Service作为一个整体初始化并对外暴露,
// 供router_manager进行路由与中间件装配
type AuthModule struct {
	// Handlers（认证相关处理器）
	LoginHandler   *authHandler.LoginHandler
	LogoutHandler  *authHandler.LogoutHandler
	RefreshHandler *authHandler.RefreshHandler

	// Services（对外暴露以供中间件及其他模块使用）
	SessionService *authService.SessionService
	JWTService     *authService.JWTService
}

// CMSModule 是内容平台模块的聚合输出
// 包含slug解析、菜单树、实例/组/授权/菜单节点管理以及启动引导器
type CMSModule struct {
	// Handlers
	ResolveHandler  *resolveHandler.ResolveHandler
	MenuHandler     *menuHandler.MenuHandler
	InstanceHandler *systemHandler.InstanceHandler
	GroupHandler    *systemHandler.GroupHandler
	GrantHandler    *systemHandler.GrantHandler
	MenuNodeHandler *systemHandler.MenuNodeHandler
	ModuleHandler   *systemHandler.ModuleHandler

	// Services（对外暴露以供复用与测试）
	Registry        *cms.ModuleRegistry
	Aggregator      *cms.PermissionAggregator
	Resolver        *cms.SlugResolver
	MenuTreeBuilder *cms.MenuTreeBuilder
	InstanceService *cms.InstanceService
	GroupService    *cms.GroupService
	GrantService    *cms.GrantService
	MenuService     *cms.MenuService

	// Bootstrapper 启动引导器,进程启动时由main调用Run
	Bootstrapper *cms.Bootstrapper
}
