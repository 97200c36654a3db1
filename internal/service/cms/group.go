/**
 * 业务层:用户组管理
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户组CRUD与成员管理,系统内置组受保护
 * @func:
 * 1.CreateGroup / UpdateGroup / DeleteGroup
 * 2.AddMember / RemoveMember
 * 3.组查询
 */
package cms

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/logger"
	"neocms/internal/pkg/utils"
	"neocms/internal/repo/mysql"
)

// GroupService 用户组管理服务
type GroupService struct {
	groupRepo *mysql.GroupRepository
	userRepo  *mysql.UserRepository
}

// NewGroupService 创建用户组管理服务
func NewGroupService(groupRepo *mysql.GroupRepository, userRepo *mysql.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup 创建用户组
func (s *GroupService) CreateGroup(ctx context.Context, operatorID string, req *model.CreateGroupRequest) (*model.Group, error) {
	existing, err := s.groupRepo.GetGroupByCode(ctx, req.GroupCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, system.NewValidationError(fmt.Sprintf("group code already exists: %s", req.GroupCode))
	}

	group := &model.Group{
		ID:          utils.MustGenerateUUID(),
		GroupCode:   req.GroupCode,
		Name:        req.Name,
		IsSystem:    false,
		OwnerUserID: operatorID,
	}

	if err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		logger.LogError(err, "", operatorID, "", "group_create", "POST", map[string]interface{}{
			"operation":  "create_group",
			"group_code": req.GroupCode,
			"timestamp":  logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("group_create", operatorID, "", "", "", "success",
		"group created", map[string]interface{}{
			"group_id":   group.ID,
			"group_code": group.GroupCode,
			"timestamp":  logger.NowFormatted(),
		})

	return group, nil
}

// GetGroup 根据ID获取用户组
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, system.ErrGroupNotFound
	}
	return group, nil
}

// GetGroupList 分页获取用户组列表
func (s *GroupService) GetGroupList(ctx context.Context, page, pageSize int) ([]*model.Group, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := s.groupRepo.GetGroupCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	groups, err := s.groupRepo.GetGroupList(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// UpdateGroup 更新用户组显示名称
// group_code不可变更;系统内置组同样允许改名
func (s *GroupService) UpdateGroup(ctx context.Context, operatorID, groupID string, req *model.UpdateGroupRequest) (*model.Group, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, system.ErrGroupNotFound
	}

	group.Name = req.Name
	if err := s.groupRepo.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}

	logger.LogBusinessOperation("group_update", operatorID, "", "", "", "success",
		"group updated", map[string]interface{}{
			"group_id":  group.ID,
			"timestamp": logger.NowFormatted(),
		})

	return group, nil
}

// DeleteGroup 删除用户组
// everyone/admin等系统内置组不可删除;组授权与成员关系级联删除
func (s *GroupService) DeleteGroup(ctx context.Context, operatorID, groupID string) error {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return system.ErrGroupNotFound
	}
	if group.IsProtected() {
		return system.ErrSystemGroupProtected
	}

	if err := s.groupRepo.DeleteGroupCascade(ctx, groupID); err != nil {
		logger.LogError(err, "", operatorID, "", "group_delete", "DELETE", map[string]interface{}{
			"operation": "delete_group",
			"group_id":  groupID,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("group_delete", operatorID, "", "", "", "success",
		"group deleted with grants and memberships", map[string]interface{}{
			"group_id":   groupID,
			"group_code": group.GroupCode,
			"timestamp":  logger.NowFormatted(),
		})

	return nil
}

// AddMember 添加组成员
// 重复添加幂等返回成功
func (s *GroupService) AddMember(ctx context.Context, operatorID, groupID, userID string) error {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return system.ErrGroupNotFound
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return system.ErrUserNotFound
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return nil
	}

	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		return err
	}

	logger.LogBusinessOperation("group_member_add", operatorID, "", "", "", "success",
		"member added to group", map[string]interface{}{
			"group_id":  groupID,
			"user_id":   userID,
			"timestamp": logger.NowFormatted(),
		})

	return nil
}

// RemoveMember 移除组成员
func (s *GroupService) RemoveMember(ctx context.Context, operatorID, groupID, userID string) error {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return system.ErrGroupNotFound
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}

	logger.LogBusinessOperation("group_member_remove", operatorID, "", "", "", "success",
		"member removed from group", map[string]interface{}{
			"group_id":  groupID,
			"user_id":   userID,
			"timestamp": logger.NowFormatted(),
		})

	return nil
}

// GetMemberUserIDs 获取组成员用户ID列表
func (s *GroupService) GetMemberUserIDs(ctx context.Context, groupID string) ([]string, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, system.ErrGroupNotFound
	}
	return s.groupRepo.GetMemberUserIDs(ctx, groupID)
}
