/**
 * 模型:错误定义
 * @author: sun977
 * @date: 2025.11.20
 * @description: 系统错误常量和错误类型定义
 * @func: 各种错误常量和ValidationError结构体
 */
package system

import "errors"

// 解析与菜单相关错误
var (
	// NotFound 语义：slug未命中任何模块/实例，或命中但调用者缺少基线访问权限。
	// 两种原因对外必须表现为同一个结果，防止资源存在性泄露，这是设计约束而非缺陷。
	ErrNotFound = errors.New("资源不存在")

	// 数据一致性错误：SINGLE模块缺少隐式实例、菜单节点引用了不存在的实例等，
	// 属于迁移或注册缺陷，对外表现为通用服务错误并记录日志
	ErrInternalInconsistency = errors.New("内部数据不一致")
)

// 写边界校验错误
var (
	ErrInvalidSlug          = errors.New("slug格式无效")
	ErrSlugAlreadyExists    = errors.New("slug已存在")
	ErrCrossModuleGrant     = errors.New("权限定义与实例所属模块不一致")
	ErrMenuCycle            = errors.New("菜单节点不能成为自身的后代")
	ErrSystemGroupProtected = errors.New("系统内置组不可删除")
	ErrSingleModuleInstance = errors.New("SINGLE模块不允许手动创建实例")
)

// 用户相关错误
var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUserAlreadyExists     = errors.New("用户已存在")
	ErrGroupNotFound         = errors.New("用户组不存在")
	ErrInstanceNotFound      = errors.New("模块实例不存在")
	ErrPermissionDefNotFound = errors.New("权限定义不存在")
	ErrMenuNodeNotFound      = errors.New("菜单节点不存在")
)

// 认证错误
var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrTokenExpired       = errors.New("令牌已过期")
	ErrTokenInvalid       = errors.New("令牌无效")
	ErrPermissionDenied   = errors.New("权限不足")
	ErrUnauthorized       = errors.New("未授权访问")
)

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// NewValidationError 创建验证错误
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		Message: message,
	}
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
