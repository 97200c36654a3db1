/**
 * 用户仓库层:会话数据访问
 * @author: sun977
 * @date: 2025.11.20
 * @description: 会话数据交互层(Redis存储,适合多实例部署)
 * @func:单纯数据访问,不应该包含业务逻辑
 * @note: 目前仅支持单用户单会话
 */
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"neocms/internal/model/system"

	"github.com/go-redis/redis/v8"
)

// SessionRepository Redis会话存储库
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository 创建会话存储库实例
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

// StoreSession 存储用户会话信息
func (r *SessionRepository) StoreSession(ctx context.Context, userID string, sessionData *system.SessionData, expiration time.Duration) error {
	// 序列化会话数据
	data, err := json.Marshal(sessionData)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	// 生成会话键
	sessionKey := r.getSessionKey(userID)

	// 存储到Redis
	err = r.client.Set(ctx, sessionKey, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// GetSession 获取用户会话信息
func (r *SessionRepository) GetSession(ctx context.Context, userID string) (*system.SessionData, error) {
	// 生成会话键
	sessionKey := r.getSessionKey(userID)

	// 从Redis获取数据
	data, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// 反序列化会话数据
	var sessionData system.SessionData
	err = json.Unmarshal([]byte(data), &sessionData)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &sessionData, nil
}

// DeleteSession 删除用户会话
func (r *SessionRepository) DeleteSession(ctx context.Context, userID string) error {
	// 生成会话键
	sessionKey := r.getSessionKey(userID)

	// 从Redis删除
	err := r.client.Del(ctx, sessionKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// UpdateSessionExpiry 更新会话过期时间
func (r *SessionRepository) UpdateSessionExpiry(ctx context.Context, userID string, expiration time.Duration) error {
	// 生成会话键
	sessionKey := r.getSessionKey(userID)

	// 更新过期时间
	err := r.client.Expire(ctx, sessionKey, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to update session expiry: %w", err)
	}

	return nil
}

// RevokeToken 将令牌加入吊销名单（登出后令牌立即失效）
func (r *SessionRepository) RevokeToken(ctx context.Context, tokenID string, expiration time.Duration) error {
	revokedKey := r.getRevokedTokenKey(tokenID)

	err := r.client.Set(ctx, revokedKey, "revoked", expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked 检查令牌是否已被吊销
func (r *SessionRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	revokedKey := r.getRevokedTokenKey(tokenID)

	exists, err := r.client.Exists(ctx, revokedKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return exists > 0, nil
}

// StoreRefreshToken 存储刷新令牌标识
func (r *SessionRepository) StoreRefreshToken(ctx context.Context, userID string, tokenID string, expiration time.Duration) error {
	refreshKey := r.getRefreshTokenKey(userID, tokenID)

	err := r.client.Set(ctx, refreshKey, "valid", expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// ValidateRefreshToken 校验刷新令牌是否有效
func (r *SessionRepository) ValidateRefreshToken(ctx context.Context, userID string, tokenID string) (bool, error) {
	refreshKey := r.getRefreshTokenKey(userID, tokenID)

	exists, err := r.client.Exists(ctx, refreshKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to validate refresh token: %w", err)
	}

	return exists > 0, nil
}

// DeleteRefreshToken 删除刷新令牌
func (r *SessionRepository) DeleteRefreshToken(ctx context.Context, userID string, tokenID string) error {
	refreshKey := r.getRefreshTokenKey(userID, tokenID)

	err := r.client.Del(ctx, refreshKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}

// StorePasswordVersion 缓存用户密码版本号
func (r *SessionRepository) StorePasswordVersion(ctx context.Context, userID string, passwordV int64, expiration time.Duration) error {
	key := r.getPasswordVersionKey(userID)

	err := r.client.Set(ctx, key, strconv.FormatInt(passwordV, 10), expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to store password version: %w", err)
	}

	return nil
}

// GetPasswordVersion 获取缓存的用户密码版本号
// 缓存未命中返回redis.Nil错误，由调用方回源数据库
func (r *SessionRepository) GetPasswordVersion(ctx context.Context, userID string) (int64, error) {
	key := r.getPasswordVersionKey(userID)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	passwordV, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse password version: %w", err)
	}

	return passwordV, nil
}

// DeletePasswordVersion 删除缓存的用户密码版本号
func (r *SessionRepository) DeletePasswordVersion(ctx context.Context, userID string) error {
	key := r.getPasswordVersionKey(userID)
	return r.client.Del(ctx, key).Err()
}

// getSessionKey 生成会话键[KEY:session:user:{userID}]
func (r *SessionRepository) getSessionKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

// getRevokedTokenKey 生成吊销令牌键[KEY:token:revoked:{tokenID}]
func (r *SessionRepository) getRevokedTokenKey(tokenID string) string {
	return fmt.Sprintf("token:revoked:%s", tokenID)
}

// getRefreshTokenKey 生成刷新令牌键[KEY:token:refresh:{userID}:{tokenID}]
func (r *SessionRepository) getRefreshTokenKey(userID string, tokenID string) string {
	return fmt.Sprintf("token:refresh:%s:%s", userID, tokenID)
}

// getPasswordVersionKey 生成密码版本键[KEY:user:pwdv:{userID}]
func (r *SessionRepository) getPasswordVersionKey(userID string) string {
	return fmt.Sprintf("user:pwdv:%s", userID)
}

// Ping 检查Redis连接
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close 关闭Redis连接
func (r *SessionRepository) Close() error {
	return r.client.Close()
}
