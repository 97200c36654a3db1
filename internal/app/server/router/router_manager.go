/**
 * 路由:路由管理器
 * @author: sun977
 * @date: 2025.11.20
 * @description: 路由管理器,包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 */
package router

import (
	"neocms/internal/app/server/middleware"
	"neocms/internal/app/server/setup"
	"neocms/internal/config"
	"neocms/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	authModule        *setup.AuthModule
	cmsModule         *setup.CMSModule
}

// NewRouter 创建路由管理器实例
// 模块装配在setup层完成,此处只做聚合与引擎创建
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) (*Router, error) {
	authModule := setup.BuildAuthModule(db, redisClient, cfg)

	cmsModule, err := setup.BuildCMSModule(db)
	if err != nil {
		return nil, err
	}

	middlewareManager := middleware.NewMiddlewareManager(authModule.SessionService, authModule.JWTService, &cfg.Security)

	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	engine := gin.New()

	return &Router{
		config:            cfg,
		engine:            engine,
		middlewareManager: middlewareManager,
		authModule:        authModule,
		cmsModule:         cmsModule,
	}, nil
}

// SetupRoutes 设置全局中间件和路由
func (r *Router) SetupRoutes() {
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetCMSModule 获取内容平台模块(main需要其中的Bootstrapper)
func (r *Router) GetCMSModule() *setup.CMSModule {
	return r.cmsModule
}

// registerGlobalMiddleware 注册全局中间件
// 链条顺序: Recovery → RequestID → CORS → SecurityHeaders → Logging → RateLimit
func (r *Router) registerGlobalMiddleware() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(r.middlewareManager.GinRequestIDMiddleware())
	r.engine.Use(r.middlewareManager.GinCORSMiddleware())
	r.engine.Use(r.middlewareManager.GinSecurityHeadersMiddleware())
	r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
	r.engine.Use(r.middlewareManager.GinRateLimitMiddleware())
}

// registerRoutes 注册路由
// 权限边界: 公共路由匿名可达(可选认证),管理路由需要JWT认证+admin角色
func (r *Router) registerRoutes() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("开始注册路由")

	api := r.engine.Group("/api")
	v1 := api.Group("/v1")

	// 公共路由（登录/刷新等,不需要认证）
	r.setupPublicRoutes(v1)
	// 内容平台路由（匿名可达,可选认证）
	r.setupCMSRoutes(v1)
	// 管理路由（需要管理员权限）
	r.setupAdminRoutes(v1)
	// 健康检查路由
	r.setupHealthRoutes(api)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("路由注册完成")
}
