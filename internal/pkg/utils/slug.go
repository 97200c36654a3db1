/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: slug工具包
 * @func: 提供URL路径段的格式校验
 */

package utils

import (
	"regexp"
)

// slug约束：小写字母、数字、连字符，不能以连字符开头或结尾
// 写边界统一校验，读路径按精确匹配比较，无需再做标准化
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// slug长度上限，与数据库字段宽度保持一致
const maxSlugLength = 100

// IsValidSlug 校验slug格式是否有效
func IsValidSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugLength {
		return false
	}
	return slugRegex.MatchString(slug)
}
