/*
 * 用户组仓库层:用户组与组成员数据访问
 * @author: sun977
 * @date: 2025.11.20
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.创建用户组
 * 2.更新用户组
 * 3.删除用户组
 * 4.组成员增删与查询
 */

package mysql

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/pkg/logger"

	"gorm.io/gorm"
)

// GroupRepository 用户组仓库结构体
// 负责处理用户组相关的数据访问，不包含业务逻辑
type GroupRepository struct {
	db *gorm.DB // 数据库连接
}

// NewGroupRepository 创建用户组仓库实例
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateGroup 创建用户组（纯数据访问）
func (r *GroupRepository) CreateGroup(ctx context.Context, group *model.Group) error {
	result := r.db.WithContext(ctx).Create(group)
	return result.Error
}

// GetGroupByID 根据ID获取用户组
func (r *GroupRepository) GetGroupByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", id, "", "group_get", "GET", map[string]interface{}{
			"operation": "get_group_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &group, nil
}

// GetGroupByCode 根据组编码获取用户组
func (r *GroupRepository) GetGroupByCode(ctx context.Context, groupCode string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).Where("group_code = ?", groupCode).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "group_get", "GET", map[string]interface{}{
			"operation":  "get_group_by_code",
			"group_code": groupCode,
			"timestamp":  logger.NowFormatted(),
		})
		return nil, err
	}
	return &group, nil
}

// GetGroupList 分页获取用户组列表
func (r *GroupRepository) GetGroupList(ctx context.Context, offset, limit int) ([]*model.Group, error) {
	var groups []*model.Group
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&groups).Error
	if err != nil {
		logger.LogError(err, "", "", "", "group_list", "GET", map[string]interface{}{
			"operation": "get_group_list",
			"offset":    offset,
			"limit":     limit,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return groups, nil
}

// GetGroupCount 获取用户组总数
func (r *GroupRepository) GetGroupCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Group{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}

// UpdateGroup 更新用户组
func (r *GroupRepository) UpdateGroup(ctx context.Context, group *model.Group) error {
	result := r.db.WithContext(ctx).Save(group)
	return result.Error
}

// DeleteGroupCascade 在单个事务中删除用户组及其关联数据
// 删除顺序: 组授权 -> 组成员关系 -> 组本身
func (r *GroupRepository) DeleteGroupCascade(ctx context.Context, groupID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).
			Delete(&model.PermissionGrant{}).Error; err != nil {
			return fmt.Errorf("failed to delete grants of group: %w", err)
		}

		if err := tx.Where("group_id = ?", groupID).
			Delete(&model.GroupMembership{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships of group: %w", err)
		}

		if err := tx.Where("id = ?", groupID).
			Delete(&model.Group{}).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}

		return nil
	})
}

// AddMember 添加组成员
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	membership := &model.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
	}
	result := r.db.WithContext(ctx).Create(membership)
	return result.Error
}

// RemoveMember 移除组成员
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMembership{})
	return result.Error
}

// IsMember 检查用户是否是组成员
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// GetMemberUserIDs 获取组的全部成员用户ID
func (r *GroupRepository) GetMemberUserIDs(ctx context.Context, groupID string) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		logger.LogError(err, "", "", "", "group_members", "GET", map[string]interface{}{
			"operation": "get_member_user_ids",
			"group_id":  groupID,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return userIDs, nil
}

// GetUserGroupIDs 获取用户所属的全部组ID（显式成员关系）
// everyone组的隐式成员关系由服务层补充，不在数据访问层处理
func (r *GroupRepository) GetUserGroupIDs(ctx context.Context, userID string) ([]string, error) {
	var groupIDs []string
	err := r.db.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		logger.LogError(err, "", userID, "", "user_groups", "GET", map[string]interface{}{
			"operation": "get_user_group_ids",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return groupIDs, nil
}
