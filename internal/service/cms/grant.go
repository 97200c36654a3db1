/**
 * 业务层:权限授予管理
 * @author: sun977
 * @date: 2025.11.20
 * @description: 组在模块实例上的权限授予与撤销,跨模块授权在写边界拒绝
 * @func:
 * 1.Grant 授予权限
 * 2.Revoke 撤销权限
 * 3.ListGrants 列出组在实例上的授权
 */
package cms

import (
	"context"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/logger"
	"neocms/internal/repo/mysql"
)

// GrantService 权限授予管理服务
type GrantService struct {
	groupRepo      *mysql.GroupRepository
	instanceRepo   *mysql.InstanceRepository
	permissionRepo *mysql.PermissionRepository
}

// NewGrantService 创建权限授予管理服务
func NewGrantService(groupRepo *mysql.GroupRepository, instanceRepo *mysql.InstanceRepository, permissionRepo *mysql.PermissionRepository) *GrantService {
	return &GrantService{
		groupRepo:      groupRepo,
		instanceRepo:   instanceRepo,
		permissionRepo: permissionRepo,
	}
}

// Grant 向组授予实例上的权限
// 写时不变量:权限定义的module_code必须与实例的module_code一致,
// 跨模块授权在此拒绝,读路径因此无需防御性校验。重复授予幂等返回成功
func (s *GrantService) Grant(ctx context.Context, operatorID string, req *model.GrantRequest) error {
	group, err := s.groupRepo.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		return err
	}
	if group == nil {
		return system.ErrGroupNotFound
	}

	instance, err := s.instanceRepo.GetInstanceByID(ctx, req.InstanceID)
	if err != nil {
		return err
	}
	if instance == nil {
		return system.ErrInstanceNotFound
	}

	def, err := s.permissionRepo.GetDefinitionByID(ctx, req.PermissionID)
	if err != nil {
		return err
	}
	if def == nil {
		return system.ErrPermissionDefNotFound
	}

	if def.ModuleCode != instance.ModuleCode {
		return system.ErrCrossModuleGrant
	}

	exists, err := s.permissionRepo.GrantExists(ctx, req.GroupID, req.InstanceID, req.PermissionID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	grant := &model.PermissionGrant{
		GroupID:      req.GroupID,
		InstanceID:   req.InstanceID,
		PermissionID: req.PermissionID,
	}
	if err := s.permissionRepo.CreateGrant(ctx, grant); err != nil {
		logger.LogError(err, "", operatorID, "", "grant_create", "POST", map[string]interface{}{
			"operation":     "grant",
			"group_id":      req.GroupID,
			"instance_id":   req.InstanceID,
			"permission_id": req.PermissionID,
			"timestamp":     logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("grant", operatorID, "", "", "", "success",
		"permission granted to group", map[string]interface{}{
			"group_id":      req.GroupID,
			"instance_id":   req.InstanceID,
			"permission":    def.Name,
			"permission_id": req.PermissionID,
			"timestamp":     logger.NowFormatted(),
		})

	return nil
}

// Revoke 撤销组在实例上的权限
// 撤销不存在的授权幂等返回成功
func (s *GrantService) Revoke(ctx context.Context, operatorID string, req *model.GrantRequest) error {
	if err := s.permissionRepo.DeleteGrant(ctx, req.GroupID, req.InstanceID, req.PermissionID); err != nil {
		logger.LogError(err, "", operatorID, "", "grant_revoke", "DELETE", map[string]interface{}{
			"operation":     "revoke",
			"group_id":      req.GroupID,
			"instance_id":   req.InstanceID,
			"permission_id": req.PermissionID,
			"timestamp":     logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("revoke", operatorID, "", "", "", "success",
		"permission revoked from group", map[string]interface{}{
			"group_id":      req.GroupID,
			"instance_id":   req.InstanceID,
			"permission_id": req.PermissionID,
			"timestamp":     logger.NowFormatted(),
		})

	return nil
}

// ListGrants 列出组在实例上已授予的权限定义
func (s *GrantService) ListGrants(ctx context.Context, groupID, instanceID string) ([]*model.PermissionDefinition, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, system.ErrGroupNotFound
	}

	instance, err := s.instanceRepo.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, system.ErrInstanceNotFound
	}

	return s.permissionRepo.GetGrantedDefinitions(ctx, []string{groupID}, instanceID)
}
