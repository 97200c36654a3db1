/**
 * 初始化:认证模块装配
 * @author: sun977
 * @date: 2025.11.20
 * @description: 初始化认证相关的工具/仓库/服务/处理器并聚合输出
 * @func: BuildAuthModule
 */
package setup

import (
	"neocms/internal/config"
	authHandler "neocms/internal/handler/auth"
	authPkg "neocms/internal/pkg/auth"
	"neocms/internal/pkg/logger"
	mysqlRepo "neocms/internal/repo/mysql"
	redisRepo "neocms/internal/repo/redis"
	authService "neocms/internal/service/auth"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BuildAuthModule 构建认证模块
// 责任边界:
// - 初始化认证相关的工具与仓库(JWTManager/PasswordManager/UserRepository/SessionRepository)
// - 初始化服务(JWTService/SessionService)与处理器(Login/Logout/Refresh)
// - 仅聚合认证域的组件,供router_manager进行路由与中间件装配
func BuildAuthModule(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthModule {
	jwtCfg := cfg.Security.JWT
	jwtManager := authPkg.NewJWTManager(jwtCfg.Secret, jwtCfg.AccessTokenExpire, jwtCfg.RefreshTokenExpire)

	passwordConfig := &authPkg.PasswordConfig{
		Memory:      64 * 1024, // 64MB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  32,
		KeyLength:   32,
	}
	passwordManager := authPkg.NewPasswordManager(passwordConfig)

	sessionRepo := redisRepo.NewSessionRepository(redisClient)
	userRepo := mysqlRepo.NewUserRepository(db)

	jwtService := authService.NewJWTService(jwtManager, userRepo, sessionRepo)
	sessionService := authService.NewSessionService(userRepo, passwordManager, jwtService, sessionRepo)

	module := &AuthModule{
		LoginHandler:   authHandler.NewLoginHandler(sessionService),
		LogoutHandler:  authHandler.NewLogoutHandler(sessionService),
		RefreshHandler: authHandler.NewRefreshHandler(sessionService),
		SessionService: sessionService,
		JWTService:     jwtService,
	}

	logger.LogSystemEvent("setup", "auth_module_built", "auth module assembled", logrus.InfoLevel, map[string]interface{}{
		"timestamp": logger.NowFormatted(),
	})

	return module
}
