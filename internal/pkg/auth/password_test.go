/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: 密码管理器测试
 */

package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(nil)

	// 1. 哈希格式为argon2id编码串
	hash, err := pm.HashPassword("S3cure@Password")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("哈希格式错误: %s", hash)
	}

	// 2. 正确密码验证通过
	ok, err := pm.VerifyPassword("S3cure@Password", hash)
	if err != nil {
		t.Fatalf("验证密码失败: %v", err)
	}
	if !ok {
		t.Errorf("正确密码应验证通过")
	}

	// 3. 错误密码验证失败
	ok, err = pm.VerifyPassword("WrongPassword", hash)
	if err != nil {
		t.Fatalf("验证密码失败: %v", err)
	}
	if ok {
		t.Errorf("错误密码不应验证通过")
	}

	// 4. 同一密码两次哈希因盐不同而不相等
	other, err := pm.HashPassword("S3cure@Password")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	if other == hash {
		t.Errorf("两次哈希不应相同")
	}

	// 5. 空密码拒绝
	if _, err := pm.HashPassword(""); err == nil {
		t.Errorf("空密码应拒绝哈希")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	pm := NewPasswordManager(nil)

	if _, err := pm.VerifyPassword("whatever", "not-an-encoded-hash"); err == nil {
		t.Errorf("非法哈希串应返回错误")
	}
}
