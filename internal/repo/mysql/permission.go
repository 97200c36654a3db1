/*
 * 权限仓库层:权限定义与授权数据访问
 * @author: sun977
 * @date: 2025.11.20
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.权限定义同步与查询
 * 2.创建授权
 * 3.撤销授权
 * 4.授权聚合查询(单次一致性读取)
 */

package mysql

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository 权限仓库结构体
// 负责处理权限定义与授权相关的数据访问，不包含业务逻辑
type PermissionRepository struct {
	db *gorm.DB // 数据库连接
}

// NewPermissionRepository 创建权限仓库实例
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// SyncDefinitions 将模块注册表导出的权限目录同步到数据库
// 以(module_code, resource, action)为冲突键做upsert，保持ID稳定
func (r *PermissionRepository) SyncDefinitions(ctx context.Context, defs []*model.PermissionDefinition) error {
	if len(defs) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "module_code"},
			{Name: "resource"},
			{Name: "action"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"name", "label", "sort_order"}),
	}).Create(&defs).Error
	if err != nil {
		return fmt.Errorf("failed to sync permission definitions: %w", err)
	}
	return nil
}

// GetDefinitionByID 根据ID获取权限定义
func (r *PermissionRepository) GetDefinitionByID(ctx context.Context, id string) (*model.PermissionDefinition, error) {
	var def model.PermissionDefinition
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&def).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", id, "", "permission_get", "GET", map[string]interface{}{
			"operation": "get_definition_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &def, nil
}

// GetDefinitionByName 根据模块编码和权限规范名获取权限定义
func (r *PermissionRepository) GetDefinitionByName(ctx context.Context, moduleCode, name string) (*model.PermissionDefinition, error) {
	var def model.PermissionDefinition
	err := r.db.WithContext(ctx).
		Where("module_code = ? AND name = ?", moduleCode, name).
		First(&def).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "permission_get", "GET", map[string]interface{}{
			"operation":   "get_definition_by_name",
			"module_code": moduleCode,
			"name":        name,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return &def, nil
}

// GetDefinitionsByModule 获取指定模块的权限定义列表（按sort_order排序）
func (r *PermissionRepository) GetDefinitionsByModule(ctx context.Context, moduleCode string) ([]*model.PermissionDefinition, error) {
	var defs []*model.PermissionDefinition
	err := r.db.WithContext(ctx).
		Where("module_code = ?", moduleCode).
		Order("sort_order ASC").
		Find(&defs).Error
	if err != nil {
		logger.LogError(err, "", "", "", "permission_list", "GET", map[string]interface{}{
			"operation":   "get_definitions_by_module",
			"module_code": moduleCode,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return defs, nil
}

// GetAllDefinitions 获取全部权限定义
func (r *PermissionRepository) GetAllDefinitions(ctx context.Context) ([]*model.PermissionDefinition, error) {
	var defs []*model.PermissionDefinition
	err := r.db.WithContext(ctx).
		Order("module_code ASC, sort_order ASC").
		Find(&defs).Error
	if err != nil {
		logger.LogError(err, "", "", "", "permission_list", "GET", map[string]interface{}{
			"operation": "get_all_definitions",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return defs, nil
}

// CreateGrant 创建授权（纯数据访问）
func (r *PermissionRepository) CreateGrant(ctx context.Context, grant *model.PermissionGrant) error {
	result := r.db.WithContext(ctx).Create(grant)
	return result.Error
}

// DeleteGrant 撤销授权
func (r *PermissionRepository) DeleteGrant(ctx context.Context, groupID, instanceID, permissionID string) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND instance_id = ? AND permission_id = ?", groupID, instanceID, permissionID).
		Delete(&model.PermissionGrant{})
	return result.Error
}

// GrantExists 检查授权是否已存在
func (r *PermissionRepository) GrantExists(ctx context.Context, groupID, instanceID, permissionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PermissionGrant{}).
		Where("group_id = ? AND instance_id = ? AND permission_id = ?", groupID, instanceID, permissionID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check grant existence: %w", err)
	}
	return count > 0, nil
}

// GetGrantsByGroupAndInstance 列出组在实例上的授权
func (r *PermissionRepository) GetGrantsByGroupAndInstance(ctx context.Context, groupID, instanceID string) ([]*model.PermissionGrant, error) {
	var grants []*model.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND instance_id = ?", groupID, instanceID).
		Find(&grants).Error
	if err != nil {
		logger.LogError(err, "", "", "", "grant_list", "GET", map[string]interface{}{
			"operation":   "get_grants_by_group_and_instance",
			"group_id":    groupID,
			"instance_id": instanceID,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return grants, nil
}

// GetGrantedPermissionNames 获取一批组在指定实例上的授权权限规范名并集
// 单条JOIN查询完成授权读取，保证一次请求内的权限视图来自同一个一致性读取
func (r *PermissionRepository) GetGrantedPermissionNames(ctx context.Context, groupIDs []string, instanceID string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	var names []string
	err := r.db.WithContext(ctx).Model(&model.PermissionGrant{}).
		Distinct("permission_definitions.name").
		Joins("JOIN permission_definitions ON permission_definitions.id = permission_grants.permission_id").
		Where("permission_grants.group_id IN ? AND permission_grants.instance_id = ?", groupIDs, instanceID).
		Pluck("permission_definitions.name", &names).Error
	if err != nil {
		logger.LogError(err, "", "", "", "grant_union", "GET", map[string]interface{}{
			"operation":   "get_granted_permission_names",
			"group_count": len(groupIDs),
			"instance_id": instanceID,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return names, nil
}

// GetGrantedDefinitions 获取一批组在指定实例上的授权权限定义并集
// 与GetGrantedPermissionNames相同的单次一致性读取，返回完整定义用于按资源分组
func (r *PermissionRepository) GetGrantedDefinitions(ctx context.Context, groupIDs []string, instanceID string) ([]*model.PermissionDefinition, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	var defs []*model.PermissionDefinition
	err := r.db.WithContext(ctx).Model(&model.PermissionDefinition{}).
		Distinct("permission_definitions.*").
		Joins("JOIN permission_grants ON permission_grants.permission_id = permission_definitions.id").
		Where("permission_grants.group_id IN ? AND permission_grants.instance_id = ?", groupIDs, instanceID).
		Find(&defs).Error
	if err != nil {
		logger.LogError(err, "", "", "", "grant_union", "GET", map[string]interface{}{
			"operation":   "get_granted_definitions",
			"group_count": len(groupIDs),
			"instance_id": instanceID,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return defs, nil
}
