/**
 * 模型:模块模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 模块定义与模块实例数据模型，模块定义编译期注册，模块实例由管理员创建
 * @func: ModuleDefinition / ModuleInstance 结构体及相关方法
 */
package model

import (
	"strings"
	"time"
)

// ModuleType 模块类型枚举
// SINGLE 模块安装后只存在一个隐式实例，MULTI 模块可由管理员创建任意多个实例
type ModuleType string

const (
	ModuleTypeSingle ModuleType = "SINGLE" // 单实例模块（如 page）
	ModuleTypeMulti  ModuleType = "MULTI"  // 多实例模块（如 board）
)

// PermissionSpec 模块权限定义项（编译期声明）
// 模块安装时由注册中心同步为 PermissionDefinition 记录
type PermissionSpec struct {
	Resource string `json:"resource"` // 资源标识，如 board、post
	Action   string `json:"action"`   // 操作标识，如 access、read、write
	Label    string `json:"label"`    // 权限显示名称，用于管理后台展示
}

// CanonicalName 权限规范名称（{RESOURCE}_{ACTION} 大写）
// 权限授予与校验统一使用该字符串，模块归属由 PermissionDefinition.ModuleCode 承载
func (p PermissionSpec) CanonicalName() string {
	return strings.ToUpper(p.Resource + "_" + p.Action)
}

// ModuleDefinition 模块定义（进程启动时注册，运行期只读）
// 不落库，由各模块在注册中心构造时静态声明
type ModuleDefinition struct {
	Code            string           `json:"code"`             // 模块编码，全局唯一
	DisplayName     string           `json:"display_name"`     // 模块显示名称
	Slug            string           `json:"slug"`             // URL路径段，全局唯一
	Type            ModuleType       `json:"type"`             // 模块类型 SINGLE/MULTI
	Permissions     []PermissionSpec `json:"permissions"`      // 权限目录，有序，首项必须为基线访问权限
	RequiredTables  []string         `json:"required_tables"`  // 模块依赖的业务表，启动前置校验
	DefaultSettings map[string]any   `json:"default_settings"` // 实例默认配置
}

// AccessPermission 模块基线访问权限的规范名称
// 每个模块必须声明 (resource=模块编码, action=access) 作为第一条权限
func (d *ModuleDefinition) AccessPermission() string {
	return strings.ToUpper(d.Code + "_access")
}

// ModuleInstance 模块实例模型
// MULTI 模块的一次具体部署，或 SINGLE 模块安装时自动创建的唯一隐式实例
type ModuleInstance struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`                                                    // 实例唯一标识，UUID
	ModuleCode   string     `json:"module_code" gorm:"size:50;not null;uniqueIndex:uk_module_slug" validate:"required"` // 所属模块编码
	InstanceName string     `json:"instance_name" gorm:"size:100;not null" validate:"required"`                      // 实例显示名称
	Slug         string     `json:"slug" gorm:"size:100;not null;uniqueIndex:uk_module_slug" validate:"required"`    // 实例路径段，模块命名空间内唯一
	OwnerUserID  string     `json:"owner_user_id" gorm:"size:36;comment:创建该实例的管理员"`                                  // 所有者用户ID
	Settings     string     `json:"settings" gorm:"type:text;comment:实例配置JSON"`                                      // 实例配置，JSON序列化存储
	CreatedAt    time.Time  `json:"created_at"`                                                                      // 创建时间，自动管理
	UpdatedAt    time.Time  `json:"updated_at"`                                                                      // 更新时间，自动管理
	DeletedAt    *time.Time `json:"-" gorm:"index"`                                                                  // 软删除时间，不在JSON中返回
}

// TableName 指定模块实例表名
func (ModuleInstance) TableName() string {
	return "module_instances"
}
