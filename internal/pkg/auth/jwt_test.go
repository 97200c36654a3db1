/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: JWT管理器测试
 */

package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key-at-least-32-characters"

func TestGenerateAndValidateTokenPair(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, 24*time.Hour)

	// 1. 生成令牌对
	pair, err := manager.GenerateTokenPair("user-1", "alice", "alice@test.local", 1, []string{"admin"})
	if err != nil {
		t.Fatalf("生成令牌对失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("令牌对内容为空")
	}
	if pair.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("过期秒数错误: %d", pair.ExpiresIn)
	}

	// 2. 访问令牌可验证且声明完整
	claims, err := manager.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("验证访问令牌失败: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Errorf("令牌声明错误: %+v", claims)
	}
	if claims.PasswordV != 1 {
		t.Errorf("密码版本声明错误: %d", claims.PasswordV)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Errorf("角色声明错误: %v", claims.Roles)
	}
	if claims.ID == "" {
		t.Errorf("JTI不应为空")
	}

	// 3. 刷新令牌可验证
	refreshClaims, err := manager.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("验证刷新令牌失败: %v", err)
	}
	if refreshClaims.Subject != "alice" {
		t.Errorf("刷新令牌subject错误: %s", refreshClaims.Subject)
	}
}

func TestValidateAccessTokenRejectsBadInput(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, 24*time.Hour)

	// 1. 非法字符串
	if _, err := manager.ValidateAccessToken("not-a-token"); err == nil {
		t.Errorf("非法令牌应验证失败")
	}

	// 2. 错误密钥签发的令牌
	other := NewJWTManager("another-secret-key-also-32-characters!", time.Hour, 24*time.Hour)
	token, err := other.GenerateAccessToken("user-1", "alice", "alice@test.local", 1, nil)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Errorf("错误密钥签发的令牌应验证失败")
	}

	// 3. 已过期的令牌
	expired := NewJWTManager(testSecret, -time.Minute, 24*time.Hour)
	token, err = expired.GenerateAccessToken("user-1", "alice", "alice@test.local", 1, nil)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Errorf("过期令牌应验证失败")
	}

	// 4. 访问令牌不能当刷新令牌用(audience不匹配)
	if _, err := manager.ValidateRefreshToken(pairAccessToken(t, manager)); err == nil {
		t.Errorf("访问令牌不应通过刷新令牌验证")
	}
}

// pairAccessToken 生成一个合法访问令牌
func pairAccessToken(t *testing.T, manager *JWTManager) string {
	t.Helper()
	token, err := manager.GenerateAccessToken("user-1", "alice", "alice@test.local", 1, nil)
	if err != nil {
		t.Fatalf("生成访问令牌失败: %v", err)
	}
	return token
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"", ""},
		{"abc.def.ghi", ""},
		{"Basic dXNlcjpwYXNz", ""},
	}
	for _, tc := range cases {
		if got := ExtractTokenFromHeader(tc.header); got != tc.want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestRefreshAccessToken(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour, 24*time.Hour)

	pair, err := manager.GenerateTokenPair("user-1", "alice", "alice@test.local", 1, nil)
	if err != nil {
		t.Fatalf("生成令牌对失败: %v", err)
	}

	// 用合法刷新令牌换发新访问令牌,密码版本升级后写入新版本
	newAccess, err := manager.RefreshAccessToken(pair.RefreshToken, "user-1", "alice", "alice@test.local", 2, []string{"admin"})
	if err != nil {
		t.Fatalf("刷新访问令牌失败: %v", err)
	}
	claims, err := manager.ValidateAccessToken(newAccess)
	if err != nil {
		t.Fatalf("验证新访问令牌失败: %v", err)
	}
	if claims.PasswordV != 2 {
		t.Errorf("新令牌密码版本错误: %d", claims.PasswordV)
	}

	// 非法刷新令牌拒绝换发
	if _, err := manager.RefreshAccessToken("not-a-token", "user-1", "alice", "alice@test.local", 2, nil); err == nil {
		t.Errorf("非法刷新令牌应拒绝换发")
	}
}
