/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: uuid工具包测试
 */

package utils

import (
	"testing"
)

func TestGenerateUUID(t *testing.T) {
	// 1. 生成的UUID符合标准格式
	uuid, err := GenerateUUID()
	if err != nil {
		t.Fatalf("生成UUID失败: %v", err)
	}
	if !IsValidUUID(uuid) {
		t.Fatalf("生成的UUID格式非法: %s", uuid)
	}

	// 2. 版本号为4,变体位为8/9/a/b
	if uuid[14] != '4' {
		t.Errorf("UUID版本号错误: %s", uuid)
	}
	switch uuid[19] {
	case '8', '9', 'a', 'b':
	default:
		t.Errorf("UUID变体位错误: %s", uuid)
	}

	// 3. 连续生成不重复
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := MustGenerateUUID()
		if _, ok := seen[id]; ok {
			t.Fatalf("UUID出现重复: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"550e8400-e29b-41d4-a716-446655440000",
		"00000000-0000-4000-8000-000000000001",
		"550E8400-E29B-41D4-A716-446655440000",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("UUID %q 应合法", id)
		}
	}

	invalid := []string{
		"",
		"550e8400e29b41d4a716446655440000",
		"550e8400-e29b-41d4-a716-44665544000",
		"550e8400-e29b-41d4-a716-4466554400000",
		"zzze8400-e29b-41d4-a716-446655440000",
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("UUID %q 应非法", id)
		}
	}
}
