/**
 * 初始化:内容平台模块装配
 * @author: sun977
 * @date: 2025.11.20
 * @description: 初始化模块注册表/仓库/服务/处理器并聚合输出
 * @func: BuildCMSModule
 */
package setup

import (
	menuHandler "neocms/internal/handler/menu"
	resolveHandler "neocms/internal/handler/resolve"
	systemHandler "neocms/internal/handler/system"
	"neocms/internal/pkg/logger"
	mysqlRepo "neocms/internal/repo/mysql"
	"neocms/internal/service/cms"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BuildCMSModule 构建内容平台模块
// 模块注册表由进程内置定义构建,注册表校验失败意味着编码错误,直接返回错误
func BuildCMSModule(db *gorm.DB) (*CMSModule, error) {
	registry, err := cms.NewModuleRegistry(cms.BuiltinModuleDefinitions())
	if err != nil {
		return nil, err
	}

	// Repository层
	instanceRepo := mysqlRepo.NewInstanceRepository(db)
	groupRepo := mysqlRepo.NewGroupRepository(db)
	permissionRepo := mysqlRepo.NewPermissionRepository(db)
	menuRepo := mysqlRepo.NewMenuRepository(db)
	userRepo := mysqlRepo.NewUserRepository(db)

	// Service层
	aggregator := cms.NewPermissionAggregator(groupRepo, permissionRepo)
	resolver := cms.NewSlugResolver(registry, instanceRepo, aggregator)
	menuTreeBuilder := cms.NewMenuTreeBuilder(registry, menuRepo, instanceRepo, aggregator)
	instanceService := cms.NewInstanceService(registry, instanceRepo)
	groupService := cms.NewGroupService(groupRepo, userRepo)
	grantService := cms.NewGrantService(groupRepo, instanceRepo, permissionRepo)
	menuService := cms.NewMenuService(menuRepo, instanceRepo)
	bootstrapper := cms.NewBootstrapper(db, registry, groupRepo, instanceRepo, permissionRepo)

	module := &CMSModule{
		ResolveHandler:  resolveHandler.NewResolveHandler(resolver),
		MenuHandler:     menuHandler.NewMenuHandler(menuTreeBuilder),
		InstanceHandler: systemHandler.NewInstanceHandler(instanceService),
		GroupHandler:    systemHandler.NewGroupHandler(groupService),
		GrantHandler:    systemHandler.NewGrantHandler(grantService),
		MenuNodeHandler: systemHandler.NewMenuNodeHandler(menuService),
		ModuleHandler:   systemHandler.NewModuleHandler(registry),

		Registry:        registry,
		Aggregator:      aggregator,
		Resolver:        resolver,
		MenuTreeBuilder: menuTreeBuilder,
		InstanceService: instanceService,
		GroupService:    groupService,
		GrantService:    grantService,
		MenuService:     menuService,

		Bootstrapper: bootstrapper,
	}

	logger.LogSystemEvent("setup", "cms_module_built", "cms module assembled", logrus.InfoLevel, map[string]interface{}{
		"module_count": len(registry.All()),
		"timestamp":    logger.NowFormatted(),
	})

	return module, nil
}
