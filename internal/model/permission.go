/**
 * 模型:权限模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 权限定义与权限授予数据模型，权限目录由模块定义固定，授予以(组,实例)为粒度
 * @func: PermissionDefinition / PermissionGrant 结构体及相关方法
 */
package model

import (
	"time"
)

// PermissionDefinition 权限定义模型
// 由模块定义的权限目录在启动时同步生成，不可由用户编辑
type PermissionDefinition struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`                                                        // 权限定义唯一标识，UUID
	ModuleCode string    `json:"module_code" gorm:"size:50;not null;uniqueIndex:uk_module_perm" validate:"required"`  // 所属模块编码
	Resource   string    `json:"resource" gorm:"size:50;not null;uniqueIndex:uk_module_perm" validate:"required"`     // 资源标识，如 board、post
	Action     string    `json:"action" gorm:"size:50;not null;uniqueIndex:uk_module_perm" validate:"required"`       // 操作标识，如 access、read
	Name       string    `json:"name" gorm:"size:100;not null;index;comment:规范名称{RESOURCE}_{ACTION}大写"`               // 权限规范名称
	Label      string    `json:"label" gorm:"size:100;comment:权限显示名称"`                                                // 权限显示名称，用于管理后台展示
	SortOrder  int       `json:"sort_order" gorm:"default:0;comment:目录内排序,与模块定义声明顺序一致"`                               // 目录内排序
	CreatedAt  time.Time `json:"created_at"`                                                                          // 创建时间，自动管理
	UpdatedAt  time.Time `json:"updated_at"`                                                                          // 更新时间，自动管理
}

// PermissionGrant 权限授予模型
// 将一条权限定义授予一个组，作用域为一个模块实例；无授予记录即拒绝
type PermissionGrant struct {
	GroupID      string    `json:"group_id" gorm:"primaryKey;size:36"`      // 组ID，联合主键
	InstanceID   string    `json:"instance_id" gorm:"primaryKey;size:36"`   // 模块实例ID，联合主键
	PermissionID string    `json:"permission_id" gorm:"primaryKey;size:36"` // 权限定义ID，联合主键
	CreatedAt    time.Time `json:"created_at"`                              // 授予时间
}

// TableName 指定权限定义表名
func (PermissionDefinition) TableName() string {
	return "permission_definitions"
}

// TableName 指定权限授予表名
func (PermissionGrant) TableName() string {
	return "permission_grants"
}
