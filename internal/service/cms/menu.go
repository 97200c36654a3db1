/**
 * 业务层:菜单树构建
 * @author: sun977
 * @date: 2025.11.20
 * @description: 按调用者身份裁剪的导航菜单树组装
 * @func:
 * 1.BuildVisibleTree 调用者可见树(权限/角色/可见性裁剪)
 * 2.BuildAdminTree 管理后台结构树(不裁剪)
 * @note: 节点一次性加载,内存中按parent_id索引组装;兄弟顺序为(sort_order,created_at,id)
 */
package cms

import (
	"context"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/logger"
	"neocms/internal/repo/mysql"
)

// MenuTreeBuilder 菜单树构建器
type MenuTreeBuilder struct {
	registry     *ModuleRegistry
	menuRepo     *mysql.MenuRepository
	instanceRepo *mysql.InstanceRepository
	aggregator   *PermissionAggregator
}

// NewMenuTreeBuilder 创建菜单树构建器
func NewMenuTreeBuilder(registry *ModuleRegistry, menuRepo *mysql.MenuRepository, instanceRepo *mysql.InstanceRepository, aggregator *PermissionAggregator) *MenuTreeBuilder {
	return &MenuTreeBuilder{
		registry:     registry,
		menuRepo:     menuRepo,
		instanceRepo: instanceRepo,
		aggregator:   aggregator,
	}
}

// menuArena 单次构建的工作快照
// 节点与子节点索引都来自同一次GetAllNodes读取,构建过程中不再回源
type menuArena struct {
	nodes     []*model.MenuNode
	children  map[string][]*model.MenuNode // parentID → 有序子节点
	roots     []*model.MenuNode
	instances map[string]*model.ModuleInstance // 被引用的实例ID → 实例
}

// loadArena 加载菜单节点快照并解析全部被引用的模块实例
func (b *MenuTreeBuilder) loadArena(ctx context.Context) (*menuArena, error) {
	nodes, err := b.menuRepo.GetAllNodes(ctx)
	if err != nil {
		return nil, err
	}

	arena := &menuArena{
		nodes:     nodes,
		children:  make(map[string][]*model.MenuNode),
		instances: make(map[string]*model.ModuleInstance),
	}

	var instanceIDs []string
	seen := make(map[string]struct{})
	for _, node := range nodes {
		if node.IsRoot() {
			arena.roots = append(arena.roots, node)
		} else {
			arena.children[*node.ParentID] = append(arena.children[*node.ParentID], node)
		}
		if node.MenuType == model.MenuTypeModule && node.ModuleInstanceID != nil {
			if _, ok := seen[*node.ModuleInstanceID]; !ok {
				seen[*node.ModuleInstanceID] = struct{}{}
				instanceIDs = append(instanceIDs, *node.ModuleInstanceID)
			}
		}
	}

	instances, err := b.instanceRepo.GetInstancesByIDs(ctx, instanceIDs)
	if err != nil {
		return nil, err
	}
	for _, instance := range instances {
		arena.instances[instance.ID] = instance
	}

	return arena, nil
}

// BuildVisibleTree 构建调用者可见的菜单树
// 裁剪规则:
// - is_visible=false 隐藏整棵子树,优先级最高
// - SEPARATOR 原样保留
// - LINK 声明了required_role且调用者未持有时裁掉
// - MODULE 调用者缺少模块基线访问权限时裁掉,保留时合成URL并附带resource→actions映射
func (b *MenuTreeBuilder) BuildVisibleTree(ctx context.Context, userID *string, roles []string) ([]*model.MenuView, error) {
	arena, err := b.loadArena(ctx)
	if err != nil {
		return nil, err
	}

	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	var views []*model.MenuView
	for _, root := range arena.roots {
		view, err := b.pruneNode(ctx, arena, root, userID, roleSet)
		if err != nil {
			return nil, err
		}
		if view != nil {
			views = append(views, view)
		}
	}
	return views, nil
}

// pruneNode 递归裁剪单个节点,返回nil表示节点被裁掉
func (b *MenuTreeBuilder) pruneNode(ctx context.Context, arena *menuArena, node *model.MenuNode, userID *string, roleSet map[string]struct{}) (*model.MenuView, error) {
	// 可见性开关优先于一切权限计算
	if !node.IsVisible {
		return nil, nil
	}

	view := &model.MenuView{
		ID:        node.ID,
		Name:      node.Name,
		Icon:      node.Icon,
		MenuType:  node.MenuType,
		SortOrder: node.SortOrder,
	}

	switch node.MenuType {
	case model.MenuTypeSeparator:
		// 分隔符无URL无权限校验

	case model.MenuTypeLink:
		if node.RequiredRole != "" {
			if _, ok := roleSet[node.RequiredRole]; !ok {
				return nil, nil
			}
		}
		view.URL = node.CustomURL

	case model.MenuTypeModule:
		instance := b.resolveNodeInstance(arena, node, userID)
		if instance == nil {
			return nil, nil
		}

		def, ok := b.registry.Get(instance.ModuleCode)
		if !ok {
			// 实例归属的模块未注册:注册表与数据库脱节
			logger.LogError(system.ErrInternalInconsistency, "", derefUserID(userID), "", "menu_build", "GET", map[string]interface{}{
				"operation":   "prune_node",
				"node_id":     node.ID,
				"instance_id": instance.ID,
				"module_code": instance.ModuleCode,
				"cause":       "module not registered",
				"timestamp":   logger.NowFormatted(),
			})
			return nil, nil
		}

		// 基线门禁与资源映射来自同一次授权读取,避免中途撤销导致的混合快照
		defs, err := b.aggregator.GrantedDefinitions(ctx, userID, instance.ID)
		if err != nil {
			return nil, err
		}
		hasAccess := false
		for _, grantedDef := range defs {
			if grantedDef.Name == def.AccessPermission() {
				hasAccess = true
				break
			}
		}
		if !hasAccess {
			return nil, nil
		}

		view.URL = synthesizeURL(def, instance)
		view.Permissions = groupByResource(defs)

	default:
		// 未知节点类型按不可见处理
		return nil, nil
	}

	for _, child := range arena.children[node.ID] {
		childView, err := b.pruneNode(ctx, arena, child, userID, roleSet)
		if err != nil {
			return nil, err
		}
		if childView != nil {
			view.Children = append(view.Children, childView)
		}
	}

	return view, nil
}

// resolveNodeInstance 解析MODULE节点引用的实例
// 引用缺失属于数据不一致:记录日志并跳过该节点,不让整棵树构建失败
func (b *MenuTreeBuilder) resolveNodeInstance(arena *menuArena, node *model.MenuNode, userID *string) *model.ModuleInstance {
	if node.ModuleInstanceID == nil || *node.ModuleInstanceID == "" {
		logger.LogError(system.ErrInternalInconsistency, "", derefUserID(userID), "", "menu_build", "GET", map[string]interface{}{
			"operation": "resolve_node_instance",
			"node_id":   node.ID,
			"cause":     "MODULE node without instance reference",
			"timestamp": logger.NowFormatted(),
		})
		return nil
	}

	instance, ok := arena.instances[*node.ModuleInstanceID]
	if !ok {
		logger.LogError(system.ErrInternalInconsistency, "", derefUserID(userID), "", "menu_build", "GET", map[string]interface{}{
			"operation":   "resolve_node_instance",
			"node_id":     node.ID,
			"instance_id": *node.ModuleInstanceID,
			"cause":       "referenced instance missing",
			"timestamp":   logger.NowFormatted(),
		})
		return nil
	}
	return instance
}

// synthesizeURL 合成MODULE节点的展示URL
// SINGLE: /{moduleSlug}  MULTI: /{moduleSlug}/{instanceSlug}
func synthesizeURL(def *model.ModuleDefinition, instance *model.ModuleInstance) string {
	if def.Type == model.ModuleTypeSingle {
		return "/" + def.Slug
	}
	return "/" + def.Slug + "/" + instance.Slug
}

// BuildAdminTree 构建管理后台的完整结构树
// 不做可见性/权限裁剪;URL能合成则合成,悬空引用的节点原样保留供管理员修复
func (b *MenuTreeBuilder) BuildAdminTree(ctx context.Context) ([]*model.MenuView, error) {
	arena, err := b.loadArena(ctx)
	if err != nil {
		return nil, err
	}

	var views []*model.MenuView
	for _, root := range arena.roots {
		views = append(views, b.assembleNode(arena, root))
	}
	return views, nil
}

// assembleNode 无裁剪递归组装
func (b *MenuTreeBuilder) assembleNode(arena *menuArena, node *model.MenuNode) *model.MenuView {
	view := &model.MenuView{
		ID:        node.ID,
		Name:      node.Name,
		Icon:      node.Icon,
		MenuType:  node.MenuType,
		SortOrder: node.SortOrder,
	}

	switch node.MenuType {
	case model.MenuTypeLink:
		view.URL = node.CustomURL
	case model.MenuTypeModule:
		if node.ModuleInstanceID != nil {
			if instance, ok := arena.instances[*node.ModuleInstanceID]; ok {
				if def, defOK := b.registry.Get(instance.ModuleCode); defOK {
					view.URL = synthesizeURL(def, instance)
				}
			}
		}
	}

	for _, child := range arena.children[node.ID] {
		view.Children = append(view.Children, b.assembleNode(arena, child))
	}
	return view
}
