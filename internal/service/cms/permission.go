/**
 * 业务层:权限聚合
 * @author: sun977
 * @date: 2025.11.20
 * @description: 计算调用者在模块实例上的有效权限集合(组授予并集)
 * @func:
 * 1.GrantedPermissions 权限并集计算
 * 2.HasPermission 单权限校验
 * 3.GrantedDefinitions 有效权限定义集合(单次一致性读取)
 * 4.PermissionsByResource 按资源分组的权限映射
 * @note: 无服务生命周期级缓存,每次调用都回源数据库,授权变更立即生效
 */
package cms

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/repo/mysql"
)

// PermissionAggregator 权限聚合器
// 将调用者的组成员关系与组授权合并为实例上的有效权限集合
type PermissionAggregator struct {
	groupRepo      *mysql.GroupRepository
	permissionRepo *mysql.PermissionRepository
}

// NewPermissionAggregator 创建权限聚合器
func NewPermissionAggregator(groupRepo *mysql.GroupRepository, permissionRepo *mysql.PermissionRepository) *PermissionAggregator {
	return &PermissionAggregator{
		groupRepo:      groupRepo,
		permissionRepo: permissionRepo,
	}
}

// resolveGroupIDs 解析调用者参与权限聚合的组ID列表
// 匿名调用者(userID为nil)只参与everyone组；
// 登录用户是everyone组的隐式成员，显式成员关系在其之上累加
func (a *PermissionAggregator) resolveGroupIDs(ctx context.Context, userID *string) ([]string, error) {
	everyone, err := a.groupRepo.GetGroupByCode(ctx, model.GroupCodeEveryone)
	if err != nil {
		return nil, fmt.Errorf("failed to load everyone group: %w", err)
	}

	var groupIDs []string
	if everyone != nil {
		groupIDs = append(groupIDs, everyone.ID)
	}

	if userID == nil || *userID == "" {
		return groupIDs, nil
	}

	memberGroupIDs, err := a.groupRepo.GetUserGroupIDs(ctx, *userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user groups: %w", err)
	}

	// 去重:显式加入everyone组的用户不重复计入
	for _, id := range memberGroupIDs {
		if everyone != nil && id == everyone.ID {
			continue
		}
		groupIDs = append(groupIDs, id)
	}

	return groupIDs, nil
}

// GrantedPermissions 计算调用者在指定实例上的有效权限集合
// 并集语义:任一所属组持有的授权即生效,组之间不存在否定或优先级。
// 授权读取走单条JOIN查询,同一请求内的权限视图来自同一个一致性读取
func (a *PermissionAggregator) GrantedPermissions(ctx context.Context, userID *string, instanceID string) (map[string]struct{}, error) {
	groupIDs, err := a.resolveGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	names, err := a.permissionRepo.GetGrantedPermissionNames(ctx, groupIDs, instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate permissions: %w", err)
	}

	granted := make(map[string]struct{}, len(names))
	for _, name := range names {
		granted[name] = struct{}{}
	}
	return granted, nil
}

// HasPermission 检查调用者在指定实例上是否持有某权限
func (a *PermissionAggregator) HasPermission(ctx context.Context, userID *string, instanceID, permission string) (bool, error) {
	granted, err := a.GrantedPermissions(ctx, userID, instanceID)
	if err != nil {
		return false, err
	}
	_, ok := granted[permission]
	return ok, nil
}

// GrantedDefinitions 计算调用者在指定实例上的有效权限定义集合
// 与GrantedPermissions相同的单次一致性读取;
// 返回完整定义,调用方可在同一个快照上同时完成基线门禁与按资源分组
func (a *PermissionAggregator) GrantedDefinitions(ctx context.Context, userID *string, instanceID string) ([]*model.PermissionDefinition, error) {
	groupIDs, err := a.resolveGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	defs, err := a.permissionRepo.GetGrantedDefinitions(ctx, groupIDs, instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate permission definitions: %w", err)
	}
	return defs, nil
}

// PermissionsByResource 计算调用者在指定实例上按资源分组的权限映射
// 返回 resource → []action，供菜单树的MODULE节点负载使用
func (a *PermissionAggregator) PermissionsByResource(ctx context.Context, userID *string, instanceID string) (map[string][]string, error) {
	defs, err := a.GrantedDefinitions(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}
	return groupByResource(defs), nil
}

// groupByResource 将权限定义集合折叠为 resource → []action 映射
func groupByResource(defs []*model.PermissionDefinition) map[string][]string {
	byResource := make(map[string][]string)
	for _, def := range defs {
		byResource[def.Resource] = append(byResource[def.Resource], def.Action)
	}
	return byResource
}
