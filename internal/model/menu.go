/**
 * 模型:菜单模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 菜单节点数据模型，自引用外键构成森林，由管理员维护
 * @func: MenuNode 结构体及相关方法
 */
package model

import (
	"time"
)

// MenuType 菜单节点类型枚举
type MenuType string

const (
	MenuTypeModule    MenuType = "MODULE"    // 绑定模块实例的节点，URL由实例slug合成
	MenuTypeLink      MenuType = "LINK"      // 自定义链接节点，可附加角色要求
	MenuTypeSeparator MenuType = "SEPARATOR" // 结构分隔符，无URL无权限校验
)

// MenuNode 菜单节点模型
// parent_id 为空表示根节点；同级按 sort_order 升序，相同时按创建顺序
type MenuNode struct {
	ID               string     `json:"id" gorm:"primaryKey;size:36"`                                  // 节点唯一标识，UUID
	ParentID         *string    `json:"parent_id" gorm:"size:36;index;comment:父节点ID,空为根节点"`            // 父节点ID，可为空
	Name             string     `json:"name" gorm:"size:100;not null" validate:"required"`             // 节点显示名称
	Icon             string     `json:"icon" gorm:"size:100"`                                          // 图标标识
	MenuType         MenuType   `json:"menu_type" gorm:"size:20;not null" validate:"required"`         // 节点类型 MODULE/LINK/SEPARATOR
	ModuleInstanceID *string    `json:"module_instance_id" gorm:"size:36;index;comment:MODULE类型必填"`    // 绑定的模块实例ID
	CustomURL        string     `json:"custom_url" gorm:"size:255;comment:LINK类型必填"`                   // 自定义链接URL
	RequiredRole     string     `json:"required_role" gorm:"size:50;comment:LINK类型可选的角色要求"`            // 访问所需角色，仅LINK类型
	SortOrder        int        `json:"sort_order" gorm:"default:0;comment:同级排序,升序"`                   // 同级排序权重
	// 缺省值由业务层补齐:gorm的default标签会把显式false当作未赋值回写成true
	IsVisible        bool       `json:"is_visible" gorm:"not null;comment:管理员可见性开关,false隐藏整棵子树"`       // 可见性开关
	CreatedAt        time.Time  `json:"created_at"`                                                    // 创建时间，自动管理
	UpdatedAt        time.Time  `json:"updated_at"`                                                    // 更新时间，自动管理
	DeletedAt        *time.Time `json:"-" gorm:"index"`                                                // 软删除时间，不在JSON中返回
}

// TableName 指定菜单节点表名
func (MenuNode) TableName() string {
	return "menu_nodes"
}

// IsRoot 检查节点是否为根节点
func (n *MenuNode) IsRoot() bool {
	return n.ParentID == nil || *n.ParentID == ""
}
