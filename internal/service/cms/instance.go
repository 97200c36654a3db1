/**
 * 业务层:模块实例管理
 * @author: sun977
 * @date: 2025.11.20
 * @description: 模块实例的创建/更新/删除,写边界校验在本层完成
 * @func:
 * 1.CreateInstance 创建实例(仅MULTI模块)
 * 2.UpdateInstance 更新实例名称与配置
 * 3.DeleteInstance 级联删除(授权+菜单节点+实例,单事务)
 * 4.实例查询
 */
package cms

import (
	"context"
	"encoding/json"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/logger"
	"neocms/internal/pkg/utils"
	"neocms/internal/repo/mysql"
)

// InstanceService 模块实例管理服务
type InstanceService struct {
	registry     *ModuleRegistry
	instanceRepo *mysql.InstanceRepository
}

// NewInstanceService 创建模块实例管理服务
func NewInstanceService(registry *ModuleRegistry, instanceRepo *mysql.InstanceRepository) *InstanceService {
	return &InstanceService{
		registry:     registry,
		instanceRepo: instanceRepo,
	}
}

// CreateInstance 创建模块实例
// 仅MULTI模块允许手动创建;SINGLE模块的隐式实例由启动引导创建。
// slug在模块命名空间内唯一,格式在写边界统一校验
func (s *InstanceService) CreateInstance(ctx context.Context, operatorID string, req *model.CreateInstanceRequest) (*model.ModuleInstance, error) {
	def, ok := s.registry.Get(req.ModuleCode)
	if !ok {
		return nil, system.NewValidationError(fmt.Sprintf("unknown module code: %s", req.ModuleCode))
	}
	if def.Type != model.ModuleTypeMulti {
		return nil, system.ErrSingleModuleInstance
	}
	if !utils.IsValidSlug(req.Slug) {
		return nil, system.ErrInvalidSlug
	}

	exists, err := s.instanceRepo.ExistsByModuleAndSlug(ctx, req.ModuleCode, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, system.ErrSlugAlreadyExists
	}

	settings := req.Settings
	if settings == nil {
		settings = def.DefaultSettings
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal instance settings: %w", err)
	}

	instance := &model.ModuleInstance{
		ID:           utils.MustGenerateUUID(),
		ModuleCode:   req.ModuleCode,
		InstanceName: req.InstanceName,
		Slug:         req.Slug,
		OwnerUserID:  operatorID,
		Settings:     string(settingsJSON),
	}

	if err := s.instanceRepo.CreateInstance(ctx, instance); err != nil {
		logger.LogError(err, "", operatorID, "", "instance_create", "POST", map[string]interface{}{
			"operation":   "create_instance",
			"module_code": req.ModuleCode,
			"slug":        req.Slug,
			"timestamp":   logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("instance_create", operatorID, "", "", "", "success",
		"module instance created", map[string]interface{}{
			"instance_id": instance.ID,
			"module_code": instance.ModuleCode,
			"slug":        instance.Slug,
			"timestamp":   logger.NowFormatted(),
		})

	return instance, nil
}

// GetInstance 根据ID获取模块实例
func (s *InstanceService) GetInstance(ctx context.Context, instanceID string) (*model.ModuleInstance, error) {
	instance, err := s.instanceRepo.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, system.ErrInstanceNotFound
	}
	return instance, nil
}

// GetInstanceList 分页获取模块实例列表
func (s *InstanceService) GetInstanceList(ctx context.Context, page, pageSize int) ([]*model.ModuleInstance, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := s.instanceRepo.GetInstanceCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	instances, err := s.instanceRepo.GetInstanceList(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return instances, total, nil
}

// UpdateInstance 更新模块实例的名称与配置
// slug与module_code不可变更;变更slug等同于迁移URL,需删除重建
func (s *InstanceService) UpdateInstance(ctx context.Context, operatorID, instanceID string, req *model.UpdateInstanceRequest) (*model.ModuleInstance, error) {
	instance, err := s.instanceRepo.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, system.ErrInstanceNotFound
	}

	if req.InstanceName != "" {
		instance.InstanceName = req.InstanceName
	}
	if req.Settings != nil {
		settingsJSON, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal instance settings: %w", err)
		}
		instance.Settings = string(settingsJSON)
	}

	if err := s.instanceRepo.UpdateInstance(ctx, instance); err != nil {
		return nil, err
	}

	logger.LogBusinessOperation("instance_update", operatorID, "", "", "", "success",
		"module instance updated", map[string]interface{}{
			"instance_id": instance.ID,
			"timestamp":   logger.NowFormatted(),
		})

	return instance, nil
}

// DeleteInstance 级联删除模块实例
// 实例上的授权与引用它的菜单节点在同一事务内删除,避免留下悬空引用
func (s *InstanceService) DeleteInstance(ctx context.Context, operatorID, instanceID string) error {
	instance, err := s.instanceRepo.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return err
	}
	if instance == nil {
		return system.ErrInstanceNotFound
	}

	if err := s.instanceRepo.DeleteInstanceCascade(ctx, instanceID); err != nil {
		logger.LogError(err, "", operatorID, "", "instance_delete", "DELETE", map[string]interface{}{
			"operation":   "delete_instance",
			"instance_id": instanceID,
			"timestamp":   logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("instance_delete", operatorID, "", "", "", "success",
		"module instance deleted with grants and menu nodes", map[string]interface{}{
			"instance_id": instanceID,
			"module_code": instance.ModuleCode,
			"slug":        instance.Slug,
			"timestamp":   logger.NowFormatted(),
		})

	return nil
}
