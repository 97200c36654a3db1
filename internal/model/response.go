/**
 * 模型:响应模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: API响应数据模型，包含解析结果、菜单视图与各种业务操作的响应结构体
 * @func: 各种Response结构体定义
 */
package model

import (
	"time"
)

// APIResponse 通用API响应结构
type APIResponse struct {
	Code    int         `json:"code,omitempty"`  // 响应状态码，可选
	Status  string      `json:"status"`          // 响应状态："success" 或 "error"
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据，可选
	Error   string      `json:"error,omitempty"` // 错误信息，可选
}

// ResolutionResult 路径解析结果
// slug解析成功后返回给传输层，permissions为调用者在该实例上被授予的权限规范名集合
type ResolutionResult struct {
	ModuleCode   string     `json:"module_code"`   // 模块编码
	ModuleType   ModuleType `json:"module_type"`   // 模块类型 SINGLE/MULTI
	InstanceID   string     `json:"instance_id"`   // 模块实例ID
	InstanceName string     `json:"instance_name"` // 实例显示名称
	Slug         string     `json:"slug"`          // 实例slug（SINGLE模块为模块slug）
	Permissions  []string   `json:"permissions"`   // 调用者在该实例上的权限集合，可为空
}

// MenuView 菜单节点视图
// 按调用者可见性裁剪后的树节点，MODULE类型附带resource→actions权限映射
type MenuView struct {
	ID          string              `json:"id"`                    // 节点ID
	Name        string              `json:"name"`                  // 节点显示名称
	Icon        string              `json:"icon,omitempty"`        // 图标标识
	MenuType    MenuType            `json:"menu_type"`             // 节点类型
	URL         string              `json:"url,omitempty"`         // 展示URL，SEPARATOR无URL
	SortOrder   int                 `json:"sort_order"`            // 同级排序权重
	Permissions map[string][]string `json:"permissions,omitempty"` // resource→允许的actions，仅MODULE类型
	Children    []*MenuView         `json:"children,omitempty"`    // 子节点，递归裁剪
}

// ModuleDefinitionView 模块定义视图（管理后台展示）
type ModuleDefinitionView struct {
	Code        string           `json:"code"`         // 模块编码
	DisplayName string           `json:"display_name"` // 模块显示名称
	Slug        string           `json:"slug"`         // URL路径段
	Type        ModuleType       `json:"type"`         // 模块类型
	Permissions []PermissionSpec `json:"permissions"`  // 权限目录
}

// LoginResponse 登录响应结构
type LoginResponse struct {
	User         *UserInfo `json:"user"`          // 用户信息
	AccessToken  string    `json:"access_token"`  // 访问令牌
	RefreshToken string    `json:"refresh_token"` // 刷新令牌
	ExpiresIn    int64     `json:"expires_in"`    // 令牌过期时间（秒）
}

// RefreshTokenResponse 刷新令牌响应结构
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`  // 新的访问令牌
	RefreshToken string `json:"refresh_token"` // 新的刷新令牌
	ExpiresIn    int64  `json:"expires_in"`    // 令牌过期时间（秒）
	TokenType    string `json:"token_type"`    // 令牌类型，通常为"Bearer"
}

// UserInfo 用户信息响应结构
type UserInfo struct {
	ID          string     `json:"id"`            // 用户ID
	Username    string     `json:"username"`      // 用户名
	Email       string     `json:"email"`         // 邮箱地址
	Nickname    string     `json:"nickname"`      // 用户昵称
	Status      UserStatus `json:"status"`        // 用户状态
	LastLoginAt *time.Time `json:"last_login_at"` // 最后登录时间
	CreatedAt   time.Time  `json:"created_at"`    // 创建时间
	Roles       []string   `json:"roles"`         // 用户角色名称列表
}

// PaginationResponse 分页响应结构
type PaginationResponse struct {
	Total       int64       `json:"total"`        // 总记录数
	Page        int         `json:"page"`         // 当前页码
	PageSize    int         `json:"page_size"`    // 每页大小
	TotalPages  int         `json:"total_pages"`  // 总页数
	HasNext     bool        `json:"has_next"`     // 是否有下一页
	HasPrevious bool        `json:"has_previous"` // 是否有上一页
	Data        interface{} `json:"data"`         // 分页数据
}

// InstanceListResponse 模块实例列表响应结构
type InstanceListResponse struct {
	Instances  []ModuleInstance    `json:"instances"`            // 实例列表
	Pagination *PaginationResponse `json:"pagination,omitempty"` // 分页信息，可选
}

// GroupListResponse 用户组列表响应结构
type GroupListResponse struct {
	Groups     []Group             `json:"groups"`               // 用户组列表
	Pagination *PaginationResponse `json:"pagination,omitempty"` // 分页信息，可选
}

// GrantListResponse 权限授予列表响应结构
type GrantListResponse struct {
	GroupID    string                 `json:"group_id"`    // 组ID
	InstanceID string                 `json:"instance_id"` // 实例ID
	Granted    []PermissionDefinition `json:"granted"`     // 已授予的权限定义列表
}
