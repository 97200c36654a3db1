/**
 * 业务层:模块注册中心
 * @author: sun977
 * @date: 2025.11.20
 * @description: 进程启动时构建的只读模块注册表，构建完成后并发安全
 * @func:
 * 1.模块定义注册与唯一性校验
 * 2.按编码/slug查询模块定义
 * 3.导出权限目录
 * 4.启动前置依赖表检查
 */
package cms

import (
	"fmt"

	"neocms/internal/model"
	"neocms/internal/pkg/utils"

	"gorm.io/gorm"
)

// ModuleRegistry 模块注册中心
// 启动时一次性构建，之后只读，不加锁即可并发访问
type ModuleRegistry struct {
	defs   []model.ModuleDefinition          // 注册顺序保存
	byCode map[string]*model.ModuleDefinition // 编码索引
	bySlug map[string]*model.ModuleDefinition // slug索引
}

// NewModuleRegistry 创建模块注册中心
// 模块编码或slug重复属于部署配置缺陷，进程不允许启动
func NewModuleRegistry(defs []model.ModuleDefinition) (*ModuleRegistry, error) {
	r := &ModuleRegistry{
		defs:   make([]model.ModuleDefinition, 0, len(defs)),
		byCode: make(map[string]*model.ModuleDefinition, len(defs)),
		bySlug: make(map[string]*model.ModuleDefinition, len(defs)),
	}

	for _, def := range defs {
		if def.Code == "" {
			return nil, fmt.Errorf("module definition missing code")
		}
		if !utils.IsValidSlug(def.Slug) {
			return nil, fmt.Errorf("module %s has invalid slug: %s", def.Code, def.Slug)
		}
		if def.Type != model.ModuleTypeSingle && def.Type != model.ModuleTypeMulti {
			return nil, fmt.Errorf("module %s has invalid type: %s", def.Code, def.Type)
		}
		if _, exists := r.byCode[def.Code]; exists {
			return nil, fmt.Errorf("duplicate module code: %s", def.Code)
		}
		if _, exists := r.bySlug[def.Slug]; exists {
			return nil, fmt.Errorf("duplicate module slug: %s", def.Slug)
		}
		// 第一条权限必须是模块基线访问权限
		if len(def.Permissions) == 0 {
			return nil, fmt.Errorf("module %s declares no permissions", def.Code)
		}
		if def.Permissions[0].CanonicalName() != def.AccessPermission() {
			return nil, fmt.Errorf("module %s first permission must be %s, got %s",
				def.Code, def.AccessPermission(), def.Permissions[0].CanonicalName())
		}

		r.defs = append(r.defs, def)
		stored := &r.defs[len(r.defs)-1]
		r.byCode[def.Code] = stored
		r.bySlug[def.Slug] = stored
	}

	return r, nil
}

// Get 根据模块编码获取模块定义
func (r *ModuleRegistry) Get(code string) (*model.ModuleDefinition, bool) {
	def, ok := r.byCode[code]
	return def, ok
}

// GetBySlug 根据模块slug获取模块定义
// slug比较区分大小写
func (r *ModuleRegistry) GetBySlug(slug string) (*model.ModuleDefinition, bool) {
	def, ok := r.bySlug[slug]
	return def, ok
}

// All 按注册顺序返回全部模块定义
func (r *ModuleRegistry) All() []model.ModuleDefinition {
	out := make([]model.ModuleDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// PermissionCatalogue 导出指定模块的权限目录
// 返回的定义列表用于启动时同步到permission_definitions表，顺序即sort_order
func (r *ModuleRegistry) PermissionCatalogue(code string) ([]*model.PermissionDefinition, error) {
	def, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("unknown module code: %s", code)
	}

	defs := make([]*model.PermissionDefinition, 0, len(def.Permissions))
	for i, spec := range def.Permissions {
		defs = append(defs, &model.PermissionDefinition{
			ID:         utils.MustGenerateUUID(),
			ModuleCode: def.Code,
			Resource:   spec.Resource,
			Action:     spec.Action,
			Name:       spec.CanonicalName(),
			Label:      spec.Label,
			SortOrder:  i,
		})
	}
	return defs, nil
}

// FullCatalogue 导出全部模块的权限目录（按注册顺序）
func (r *ModuleRegistry) FullCatalogue() []*model.PermissionDefinition {
	var all []*model.PermissionDefinition
	for _, def := range r.defs {
		defs, _ := r.PermissionCatalogue(def.Code)
		all = append(all, defs...)
	}
	return all
}

// CheckRequiredTables 启动前置校验:模块声明的业务表必须已存在
// 缺表意味着迁移未执行，进程不允许启动
func (r *ModuleRegistry) CheckRequiredTables(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, def := range r.defs {
		for _, table := range def.RequiredTables {
			if !migrator.HasTable(table) {
				return fmt.Errorf("module %s requires table %s which does not exist", def.Code, table)
			}
		}
	}
	return nil
}

// DefinitionViews 导出模块定义视图列表（管理后台展示）
func (r *ModuleRegistry) DefinitionViews() []model.ModuleDefinitionView {
	views := make([]model.ModuleDefinitionView, 0, len(r.defs))
	for _, def := range r.defs {
		views = append(views, model.ModuleDefinitionView{
			Code:        def.Code,
			DisplayName: def.DisplayName,
			Slug:        def.Slug,
			Type:        def.Type,
			Permissions: def.Permissions,
		})
	}
	return views
}
