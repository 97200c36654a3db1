/*
 * 模块实例仓库层:模块实例数据访问
 * @author: sun977
 * @date: 2025.11.20
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.创建模块实例
 * 2.更新模块实例
 * 3.删除模块实例
 * 4.模块实例基础查询
 */

package mysql

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/pkg/logger"

	"gorm.io/gorm"
)

// InstanceRepository 模块实例仓库结构体
// 负责处理模块实例相关的数据访问，不包含业务逻辑
type InstanceRepository struct {
	db *gorm.DB // 数据库连接
}

// NewInstanceRepository 创建模块实例仓库实例
// 注入数据库连接，专注于数据访问操作
func NewInstanceRepository(db *gorm.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

// CreateInstance 创建模块实例（纯数据访问）
func (r *InstanceRepository) CreateInstance(ctx context.Context, instance *model.ModuleInstance) error {
	result := r.db.WithContext(ctx).Create(instance)
	return result.Error
}

// GetInstanceByID 根据ID获取模块实例
func (r *InstanceRepository) GetInstanceByID(ctx context.Context, id string) (*model.ModuleInstance, error) {
	var instance model.ModuleInstance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&instance).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", id, "", "instance_get", "GET", map[string]interface{}{
			"operation": "get_instance_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &instance, nil
}

// GetInstanceBySlug 根据模块编码和slug获取模块实例
// slug比较区分大小写，不做任何标准化
func (r *InstanceRepository) GetInstanceBySlug(ctx context.Context, moduleCode, slug string) (*model.ModuleInstance, error) {
	var instance model.ModuleInstance
	err := r.db.WithContext(ctx).
		Where("module_code = ? AND slug = ?", moduleCode, slug).
		First(&instance).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "instance_get", "GET", map[string]interface{}{
			"operation":   "get_instance_by_slug",
			"module_code": moduleCode,
			"slug":        slug,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return &instance, nil
}

// GetInstancesByModule 获取指定模块的全部实例
func (r *InstanceRepository) GetInstancesByModule(ctx context.Context, moduleCode string) ([]*model.ModuleInstance, error) {
	var instances []*model.ModuleInstance
	err := r.db.WithContext(ctx).
		Where("module_code = ?", moduleCode).
		Order("created_at ASC").
		Find(&instances).Error
	if err != nil {
		logger.LogError(err, "", "", "", "instance_list", "GET", map[string]interface{}{
			"operation":   "get_instances_by_module",
			"module_code": moduleCode,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}
	return instances, nil
}

// GetInstanceList 分页获取模块实例列表
func (r *InstanceRepository) GetInstanceList(ctx context.Context, offset, limit int) ([]*model.ModuleInstance, error) {
	var instances []*model.ModuleInstance
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&instances).Error
	if err != nil {
		logger.LogError(err, "", "", "", "instance_list", "GET", map[string]interface{}{
			"operation": "get_instance_list",
			"offset":    offset,
			"limit":     limit,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return instances, nil
}

// GetInstanceCount 获取模块实例总数
func (r *InstanceRepository) GetInstanceCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ModuleInstance{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count instances: %w", err)
	}
	return count, nil
}

// UpdateInstance 更新模块实例
func (r *InstanceRepository) UpdateInstance(ctx context.Context, instance *model.ModuleInstance) error {
	result := r.db.WithContext(ctx).Save(instance)
	return result.Error
}

// DeleteInstanceCascade 在单个事务中删除模块实例及其关联数据
// 删除顺序: 权限授予 -> 引用该实例的菜单节点 -> 实例本身
func (r *InstanceRepository) DeleteInstanceCascade(ctx context.Context, instanceID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 删除实例上的全部授权
		if err := tx.Where("instance_id = ?", instanceID).
			Delete(&model.PermissionGrant{}).Error; err != nil {
			return fmt.Errorf("failed to delete grants of instance: %w", err)
		}

		// 删除引用该实例的菜单节点
		if err := tx.Where("module_instance_id = ?", instanceID).
			Delete(&model.MenuNode{}).Error; err != nil {
			return fmt.Errorf("failed to delete menu nodes of instance: %w", err)
		}

		// 删除实例本身
		if err := tx.Where("id = ?", instanceID).
			Delete(&model.ModuleInstance{}).Error; err != nil {
			return fmt.Errorf("failed to delete instance: %w", err)
		}

		return nil
	})
}

// GetInstancesByIDs 批量获取模块实例
// 菜单树构建器一次性解析全部被引用实例，避免逐节点查询
func (r *InstanceRepository) GetInstancesByIDs(ctx context.Context, ids []string) ([]*model.ModuleInstance, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var instances []*model.ModuleInstance
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&instances).Error
	if err != nil {
		logger.LogError(err, "", "", "", "instance_list", "GET", map[string]interface{}{
			"operation": "get_instances_by_ids",
			"id_count":  len(ids),
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return instances, nil
}

// ExistsByModuleAndSlug 检查模块命名空间内slug是否已存在
func (r *InstanceRepository) ExistsByModuleAndSlug(ctx context.Context, moduleCode, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ModuleInstance{}).
		Where("module_code = ? AND slug = ?", moduleCode, slug).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check instance slug existence: %w", err)
	}
	return count > 0, nil
}

// CountByModule 统计指定模块下的实例数量
// SINGLE类型模块启动时用于保证仅存在一个隐式实例
func (r *InstanceRepository) CountByModule(ctx context.Context, moduleCode string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ModuleInstance{}).
		Where("module_code = ?", moduleCode).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count instances of module: %w", err)
	}
	return count, nil
}
