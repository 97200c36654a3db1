/**
 * 模型:用户组模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户组与组成员数据模型，权限授予以组为单位
 * @func: Group / GroupMembership 结构体及相关方法
 */
package model

import (
	"time"
)

// 内置系统组编码
// 系统组随初始化数据创建，不允许删除
const (
	GroupCodeEveryone = "everyone" // 所有访客（含匿名）隐式所属的组
	GroupCodeAdmin    = "admin"    // 管理员组
)

// Group 用户组模型
type Group struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`                                       // 组唯一标识，UUID
	GroupCode   string     `json:"group_code" gorm:"uniqueIndex;not null;size:50" validate:"required"` // 组编码，全局唯一
	Name        string     `json:"name" gorm:"size:100;not null" validate:"required"`                  // 组显示名称
	IsSystem    bool       `json:"is_system" gorm:"default:false;comment:系统内置组不可删除"`                   // 是否系统内置组
	OwnerUserID string     `json:"owner_user_id" gorm:"size:36;comment:创建该组的管理员"`                      // 所有者用户ID
	CreatedAt   time.Time  `json:"created_at"`                                                         // 创建时间，自动管理
	UpdatedAt   time.Time  `json:"updated_at"`                                                         // 更新时间，自动管理
	DeletedAt   *time.Time `json:"-" gorm:"index"`                                                     // 软删除时间，不在JSON中返回
}

// GroupMembership 组成员关联表
// 多对多关系，成员资格而非所有权，一个用户可属于零个或多个组
type GroupMembership struct {
	GroupID   string    `json:"group_id" gorm:"primaryKey;size:36"` // 组ID，联合主键
	UserID    string    `json:"user_id" gorm:"primaryKey;size:36"`  // 用户ID，联合主键
	CreatedAt time.Time `json:"created_at"`                         // 关联创建时间
}

// TableName 指定用户组表名
func (Group) TableName() string {
	return "groups"
}

// TableName 指定组成员关联表名
func (GroupMembership) TableName() string {
	return "group_memberships"
}

// IsProtected 检查组是否为受保护的系统组
func (g *Group) IsProtected() bool {
	return g.IsSystem
}
