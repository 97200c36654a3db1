/**
 * 业务层:会话管理服务
 * @author: sun977
 * @date: 2025.11.20
 * @description: 登录/登出/令牌刷新/会话验证
 * @func:
 * 1.Login 用户登录
 * 2.Logout 用户登出
 * 3.RefreshToken 刷新令牌
 * 4.ValidateSession 验证会话
 */
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/auth"
	"neocms/internal/pkg/logger"
	"neocms/internal/pkg/utils"
	"neocms/internal/repo/mysql"
	"neocms/internal/repo/redis"
)

// SessionService 会话管理服务
type SessionService struct {
	userRepo        *mysql.UserRepository
	passwordManager *auth.PasswordManager
	jwtService      *JWTService
	sessionRepo     *redis.SessionRepository
}

// NewSessionService 创建会话管理服务
func NewSessionService(userRepo *mysql.UserRepository, passwordManager *auth.PasswordManager, jwtService *JWTService, sessionRepo *redis.SessionRepository) *SessionService {
	return &SessionService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
		jwtService:      jwtService,
		sessionRepo:     sessionRepo,
	}
}

// Login 用户登录
// 用户名未命中时按邮箱再查一次;凭证错误与用户不存在统一返回相同错误,不泄露账号是否存在
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil {
		return nil, errors.New("login request cannot be nil")
	}
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}

	clientIP := utils.GetClientIPFromContext(ctx)

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		user, err = s.userRepo.GetUserByEmail(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
	}
	if user == nil {
		logger.LogBusinessOperation("user_login", "", req.Username, clientIP, "", "failed",
			"login attempt with unknown account", map[string]interface{}{
				"timestamp": logger.NowFormatted(),
			})
		return nil, system.ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, "", "failed",
			"login attempt on disabled account", map[string]interface{}{
				"timestamp": logger.NowFormatted(),
			})
		return nil, system.ErrUserDisabled
	}

	valid, err := s.passwordManager.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, "", "failed",
			"login attempt with wrong password", map[string]interface{}{
				"timestamp": logger.NowFormatted(),
			})
		return nil, system.ErrInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// 最后登录时间更新失败不阻断登录
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.LogError(err, "", user.ID, clientIP, "login", "POST", map[string]interface{}{
			"operation": "update_last_login",
			"timestamp": logger.NowFormatted(),
		})
	}

	sessionData := &system.SessionData{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Roles:      user.RoleNames(),
		LoginTime:  now,
		LastActive: now,
		ClientIP:   clientIP,
	}
	expiration := time.Duration(tokenPair.ExpiresIn) * time.Second
	if err := s.sessionRepo.StoreSession(ctx, user.ID, sessionData, expiration); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, "", "success",
		"user logged in", map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})

	return &model.LoginResponse{
		User: &model.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			Nickname:    user.Nickname,
			Status:      user.Status,
			LastLoginAt: user.LastLoginAt,
			CreatedAt:   user.CreatedAt,
			Roles:       user.RoleNames(),
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// Logout 用户登出
// 令牌进黑名单并删除会话;令牌已失效时登出视为成功
func (s *SessionService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return errors.New("access token is required")
	}

	claims, err := s.jwtService.GetTokenClaims(ctx, accessToken)
	if err != nil {
		// 已过期或已撤销的令牌,登出幂等成功
		return nil
	}

	if err := s.jwtService.RevokeToken(ctx, accessToken); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if err := s.sessionRepo.DeleteSession(ctx, claims.UserID); err != nil {
		logger.LogError(err, "", claims.UserID, "", "logout", "POST", map[string]interface{}{
			"operation": "delete_session",
			"timestamp": logger.NowFormatted(),
		})
	}

	logger.LogBusinessOperation("user_logout", claims.UserID, claims.Username, "", "", "success",
		"user logged out", map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})

	return nil
}

// RefreshToken 刷新令牌对
func (s *SessionService) RefreshToken(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error) {
	if req == nil || req.RefreshToken == "" {
		return nil, errors.New("refresh token is required")
	}

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &model.RefreshTokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		TokenType:    "Bearer",
	}, nil
}

// ValidateSession 验证会话
// 令牌有效且密码版本匹配才算有效会话,密码修改后旧令牌立即失效
func (s *SessionService) ValidateSession(ctx context.Context, accessToken string) (*auth.JWTClaims, error) {
	claims, err := s.jwtService.ValidateAccessToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	versionValid, err := s.jwtService.ValidatePasswordVersion(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if !versionValid {
		return nil, errors.New("token invalidated by password change")
	}

	return claims, nil
}

// CheckRole 检查用户是否具有指定角色
func (s *SessionService) CheckRole(ctx context.Context, userID string, roleName string) (bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return false, system.ErrUserNotFound
	}

	return user.HasRole(roleName), nil
}
