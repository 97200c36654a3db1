/**
 * 业务层:JWT认证服务
 * @author: sun977
 * @date: 2025.11.20
 * @description: 令牌生成/验证/刷新/撤销,撤销通过Redis黑名单实现
 * @func:
 * 1.GenerateTokens 生成令牌对
 * 2.ValidateAccessToken 验证访问令牌(含黑名单检查)
 * 3.RefreshTokens 刷新令牌对
 * 4.RevokeToken 撤销令牌
 * 5.ValidatePasswordVersion 密码版本校验
 */
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neocms/internal/model"
	"neocms/internal/pkg/auth"
	"neocms/internal/repo/mysql"
	"neocms/internal/repo/redis"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService JWT认证服务
type JWTService struct {
	jwtManager  *auth.JWTManager
	userRepo    *mysql.UserRepository
	sessionRepo *redis.SessionRepository
}

// NewJWTService 创建JWT服务实例
func NewJWTService(jwtManager *auth.JWTManager, userRepo *mysql.UserRepository, sessionRepo *redis.SessionRepository) *JWTService {
	return &JWTService{
		jwtManager:  jwtManager,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// GenerateTokens 生成访问令牌和刷新令牌
func (s *JWTService) GenerateTokens(ctx context.Context, user *model.User) (*auth.TokenPair, error) {
	if user == nil {
		return nil, errors.New("user cannot be nil")
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(
		user.ID,
		user.Username,
		user.Email,
		user.PasswordV,
		user.RoleNames(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return tokenPair, nil
}

// ValidateAccessToken 验证访问令牌
// 签名校验通过后检查撤销黑名单,已撤销的令牌一律拒绝
func (s *JWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*auth.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	if claims.ID != "" {
		revoked, err := s.sessionRepo.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, errors.New("token has been revoked")
		}
	}

	return claims, nil
}

// ValidateRefreshToken 验证刷新令牌
func (s *JWTService) ValidateRefreshToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return claims, nil
}

// RefreshTokens 刷新令牌对
// 刷新前重新加载用户,确保角色与密码版本取自当前数据库状态
func (s *JWTService) RefreshTokens(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if _, err := s.ValidateRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	userID, err := s.jwtManager.GetUserIDFromToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID from token: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive() {
		return nil, errors.New("user is inactive")
	}

	return s.GenerateTokens(ctx, user)
}

// GetUserFromToken 从令牌中获取用户信息
func (s *JWTService) GetUserFromToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

// RevokeToken 撤销令牌
// 将JTI写入黑名单,保留时间与令牌剩余有效期一致,过期后自动清理
func (s *JWTService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return fmt.Errorf("invalid access token: %w", err)
	}

	if claims.ID == "" || claims.ExpiresAt == nil {
		return errors.New("token is not revocable")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		// 已过期的令牌无需进黑名单
		return nil
	}

	return s.sessionRepo.RevokeToken(ctx, claims.ID, remaining)
}

// CheckTokenExpiry 检查令牌是否在阈值时间内过期
func (s *JWTService) CheckTokenExpiry(ctx context.Context, tokenString string, threshold time.Duration) (bool, error) {
	claims, err := s.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return false, err
	}

	if claims.ExpiresAt == nil {
		return false, errors.New("token has no expiry time")
	}
	return time.Until(claims.ExpiresAt.Time) <= threshold, nil
}

// GetTokenRemainingTime 获取令牌剩余有效时间
func (s *JWTService) GetTokenRemainingTime(ctx context.Context, tokenString string) (time.Duration, error) {
	claims, err := s.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return 0, err
	}

	if claims.ExpiresAt == nil {
		return 0, errors.New("token has no expiry time")
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return 0, errors.New("token has expired")
	}

	return remaining, nil
}

// ValidatePasswordVersion 验证令牌中的密码版本是否与用户当前密码版本匹配
// 优先读Redis缓存,未命中回源MySQL并回填缓存
func (s *JWTService) ValidatePasswordVersion(ctx context.Context, tokenString string) (bool, error) {
	claims, err := s.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return false, err
	}

	currentPasswordV, err := s.sessionRepo.GetPasswordVersion(ctx, claims.UserID)
	if err != nil {
		currentPasswordV, err = s.userRepo.GetUserPasswordVersion(ctx, claims.UserID)
		if err != nil {
			return false, fmt.Errorf("failed to get user password version: %w", err)
		}
		// 回填缓存失败不影响校验结果
		_ = s.sessionRepo.StorePasswordVersion(ctx, claims.UserID, currentPasswordV, 24*time.Hour)
	}

	return claims.PasswordV == currentPasswordV, nil
}

// GetTokenClaims 获取令牌声明信息
func (s *JWTService) GetTokenClaims(ctx context.Context, tokenString string) (*auth.JWTClaims, error) {
	return s.ValidateAccessToken(ctx, tokenString)
}

// IsTokenValid 检查令牌是否有效
func (s *JWTService) IsTokenValid(ctx context.Context, tokenString string) bool {
	_, err := s.ValidateAccessToken(ctx, tokenString)
	return err == nil
}
