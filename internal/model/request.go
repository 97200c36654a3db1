/**
 * 模型:请求模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: API请求数据模型，包含各种业务操作的请求结构体
 * @func: 各种Request结构体定义
 */
package model

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名
	Password string `json:"password" binding:"required"` // 密码
}

// RefreshTokenRequest 刷新令牌请求结构
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 刷新令牌
}

// CreateInstanceRequest 创建模块实例请求结构
type CreateInstanceRequest struct {
	ModuleCode   string         `json:"module_code" binding:"required"`   // 所属模块编码
	InstanceName string         `json:"instance_name" binding:"required"` // 实例显示名称
	Slug         string         `json:"slug" binding:"required"`          // 实例路径段，模块命名空间内唯一
	Settings     map[string]any `json:"settings"`                         // 实例配置，缺省使用模块默认配置
}

// UpdateInstanceRequest 更新模块实例请求结构
type UpdateInstanceRequest struct {
	InstanceName string         `json:"instance_name"` // 实例显示名称
	Settings     map[string]any `json:"settings"`      // 实例配置
}

// CreateGroupRequest 创建用户组请求结构
type CreateGroupRequest struct {
	GroupCode string `json:"group_code" binding:"required"` // 组编码，全局唯一
	Name      string `json:"name" binding:"required"`       // 组显示名称
}

// UpdateGroupRequest 更新用户组请求结构
type UpdateGroupRequest struct {
	Name string `json:"name" binding:"required"` // 组显示名称
}

// MembershipRequest 组成员变更请求结构
type MembershipRequest struct {
	UserID string `json:"user_id" binding:"required"` // 用户ID
}

// GrantRequest 权限授予/撤销请求结构
type GrantRequest struct {
	GroupID      string `json:"group_id" binding:"required"`      // 组ID
	InstanceID   string `json:"instance_id" binding:"required"`   // 模块实例ID
	PermissionID string `json:"permission_id" binding:"required"` // 权限定义ID
}

// CreateMenuNodeRequest 创建菜单节点请求结构
type CreateMenuNodeRequest struct {
	ParentID         *string  `json:"parent_id"`                     // 父节点ID，空为根节点
	Name             string   `json:"name" binding:"required"`       // 节点显示名称
	Icon             string   `json:"icon"`                          // 图标标识
	MenuType         MenuType `json:"menu_type" binding:"required"`  // 节点类型
	ModuleInstanceID *string  `json:"module_instance_id"`            // MODULE类型必填
	CustomURL        string   `json:"custom_url"`                    // LINK类型必填
	RequiredRole     string   `json:"required_role"`                 // LINK类型可选角色要求
	SortOrder        int      `json:"sort_order"`                    // 同级排序权重
	IsVisible        *bool    `json:"is_visible"`                    // 可见性开关，缺省true
}

// UpdateMenuNodeRequest 更新菜单节点请求结构
type UpdateMenuNodeRequest struct {
	ParentID     *string `json:"parent_id"`     // 父节点ID，调整层级时校验环路
	Name         string  `json:"name"`          // 节点显示名称
	Icon         string  `json:"icon"`          // 图标标识
	CustomURL    string  `json:"custom_url"`    // 自定义链接URL
	RequiredRole string  `json:"required_role"` // 角色要求
	SortOrder    *int    `json:"sort_order"`    // 同级排序权重
	IsVisible    *bool   `json:"is_visible"`    // 可见性开关
}
