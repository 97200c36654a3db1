/**
 * 模型:用户模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户与角色数据模型，角色用于管理后台入口与LINK菜单的角色要求
 * @func: User / Role 结构体及相关方法
 */
package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`                                                  // 用户唯一标识，UUID
	Username    string     `json:"username" gorm:"uniqueIndex;not null;size:50" validate:"required,min=3,max=50"` // 用户名，唯一索引，3-50字符
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:100" validate:"required,email"`          // 邮箱地址，唯一索引
	Password    string     `json:"-" gorm:"not null;size:255"`                                                    // 用户密码，加密存储，不在JSON中返回
	PasswordV   int64      `json:"-" gorm:"default:1;comment:密码版本号,用于使旧token失效"`                                  // 密码版本控制
	Nickname    string     `json:"nickname" gorm:"size:50"`                                                       // 用户昵称
	Status      UserStatus `json:"status" gorm:"default:1;comment:用户状态:0-禁用,1-启用"`                                // 用户状态，默认启用
	LastLoginAt *time.Time `json:"last_login_at" gorm:"comment:最后登录时间"`                                           // 最后登录时间，可为空
	LastLoginIP string     `json:"last_login_ip" gorm:"size:45;comment:最后登录IP"`                                   // 最后登录IP地址，支持IPv6
	CreatedAt   time.Time  `json:"created_at"`                                                                    // 创建时间，自动管理
	UpdatedAt   time.Time  `json:"updated_at"`                                                                    // 更新时间，自动管理
	DeletedAt   *time.Time `json:"-" gorm:"index"`                                                                // 软删除时间，不在JSON中返回

	// 关联关系
	Roles []*Role `json:"roles" gorm:"many2many:user_roles;"` // 用户角色，多对多关系
}

// UserStatus 用户状态枚举
type UserStatus int

const (
	UserStatusDisabled UserStatus = 0 // 禁用状态
	UserStatusEnabled  UserStatus = 1 // 启用状态
)

// Role 角色模型
// 角色只承担"身份"职责（管理后台入口、LINK菜单的requiredRole），
// 资源级权限一律走组授予模型
type Role struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`                                 // 角色唯一标识，UUID
	Name        string     `json:"name" gorm:"uniqueIndex;not null;size:50" validate:"required"` // 角色名称，唯一索引
	DisplayName string     `json:"display_name" gorm:"size:100"`                                 // 角色显示名称
	CreatedAt   time.Time  `json:"created_at"`                                                   // 创建时间，自动管理
	UpdatedAt   time.Time  `json:"updated_at"`                                                   // 更新时间，自动管理
	DeletedAt   *time.Time `json:"-" gorm:"index"`                                               // 软删除时间，不在JSON中返回
}

// UserRole 用户角色关联表
type UserRole struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:36"` // 用户ID，联合主键
	RoleID    string    `json:"role_id" gorm:"primaryKey;size:36"` // 角色ID，联合主键
	CreatedAt time.Time `json:"created_at"`                        // 关联创建时间
}

// TableName 指定用户表名
func (User) TableName() string {
	return "users"
}

// TableName 指定角色表名
func (Role) TableName() string {
	return "roles"
}

// TableName 指定用户角色关联表名
func (UserRole) TableName() string {
	return "user_roles"
}

// HasRole 检查用户是否拥有指定角色
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// RoleNames 获取用户角色名称列表
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// IsActive 检查用户是否处于活跃状态
func (u *User) IsActive() bool {
	return u.Status == UserStatusEnabled
}
