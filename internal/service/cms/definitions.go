/**
 * 业务层:内置模块定义
 * @author: sun977
 * @date: 2025.11.20
 * @description: 编译期声明的内置模块定义，进程启动时注入模块注册中心
 * @func: BuiltinModuleDefinitions()
 */
package cms

import (
	"neocms/internal/model"
)

// BuiltinModuleDefinitions 返回平台内置模块定义列表
// 约定:每个模块的第一条权限必须是 (resource=模块编码, action=access) 的基线访问权限，
// 缺少基线权限的调用者对该模块实例表现为 NotFound
func BuiltinModuleDefinitions() []model.ModuleDefinition {
	return []model.ModuleDefinition{
		{
			Code:        "board",
			DisplayName: "讨论板",
			Slug:        "boards",
			Type:        model.ModuleTypeMulti,
			Permissions: []model.PermissionSpec{
				{Resource: "board", Action: "access", Label: "访问讨论板"},
				{Resource: "board", Action: "manage", Label: "管理讨论板"},
				{Resource: "post", Action: "read", Label: "阅读帖子"},
				{Resource: "post", Action: "write", Label: "发布帖子"},
				{Resource: "post", Action: "comment", Label: "评论帖子"},
			},
			RequiredTables: []string{"board_posts", "board_comments"},
			DefaultSettings: map[string]any{
				"posts_per_page":  20,
				"allow_anonymous": false,
			},
		},
		{
			Code:        "page",
			DisplayName: "单页内容",
			Slug:        "pages",
			Type:        model.ModuleTypeSingle,
			Permissions: []model.PermissionSpec{
				{Resource: "page", Action: "access", Label: "访问页面"},
				{Resource: "page", Action: "edit", Label: "编辑页面"},
			},
			RequiredTables: []string{"page_contents"},
			DefaultSettings: map[string]any{
				"cache_seconds": 60,
			},
		},
	}
}
