/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: slug格式校验测试
 */

package utils

import (
	"strings"
	"testing"
)

func TestIsValidSlug(t *testing.T) {
	valid := []string{
		"general",
		"general-board",
		"a",
		"a1",
		"123",
		"multi-part-slug-2",
	}
	for _, slug := range valid {
		if !IsValidSlug(slug) {
			t.Errorf("slug %q 应合法", slug)
		}
	}

	invalid := []string{
		"",
		"General",
		"has space",
		"-leading",
		"trailing-",
		"double--hyphen",
		"under_score",
		"中文",
		"dot.slug",
		strings.Repeat("a", 101),
	}
	for _, slug := range invalid {
		if IsValidSlug(slug) {
			t.Errorf("slug %q 应非法", slug)
		}
	}

	// 长度上限边界
	if !IsValidSlug(strings.Repeat("a", 100)) {
		t.Errorf("100字符的slug应合法")
	}
}
