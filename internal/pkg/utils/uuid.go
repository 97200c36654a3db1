/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: uuid工具包
 * @func: 提供uuid生成、校验等常用工具函数
 */

package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// 标准UUID格式正则表达式: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// GenerateUUID 生成UUID v4（基于随机数）
// 返回标准格式的UUID字符串，如：550e8400-e29b-41d4-a716-446655440000
func GenerateUUID() (string, error) {
	// 生成16字节的随机数
	uuid := make([]byte, 16)
	_, err := rand.Read(uuid)
	if err != nil {
		return "", fmt.Errorf("生成随机数失败: %v", err)
	}

	// 设置版本号（第7字节的高4位设为0100，表示版本4）
	uuid[6] = (uuid[6] & 0x0f) | 0x40

	// 设置变体（第9字节的高2位设为10）
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	// 格式化为标准UUID字符串
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16]), nil
}

// MustGenerateUUID 生成UUID v4，失败时panic
// 仅用于启动期初始化数据等不可恢复场景
func MustGenerateUUID() string {
	uuid, err := GenerateUUID()
	if err != nil {
		panic(fmt.Sprintf("failed to generate uuid: %v", err))
	}
	return uuid
}

// IsValidUUID 校验UUID格式是否有效（标准格式）
func IsValidUUID(uuid string) bool {
	if uuid == "" {
		return false
	}
	return uuidRegex.MatchString(uuid)
}
