/*
 * 菜单仓库层:菜单节点数据访问
 * @author: sun977
 * @date: 2025.11.20
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.创建菜单节点
 * 2.更新菜单节点
 * 3.删除菜单节点
 * 4.菜单节点基础查询
 */

package mysql

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/pkg/logger"

	"gorm.io/gorm"
)

// MenuRepository 菜单仓库结构体
// 负责处理菜单节点相关的数据访问，不包含业务逻辑
type MenuRepository struct {
	db *gorm.DB // 数据库连接
}

// NewMenuRepository 创建菜单仓库实例
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// CreateNode 创建菜单节点（纯数据访问）
func (r *MenuRepository) CreateNode(ctx context.Context, node *model.MenuNode) error {
	result := r.db.WithContext(ctx).Create(node)
	return result.Error
}

// GetNodeByID 根据ID获取菜单节点
func (r *MenuRepository) GetNodeByID(ctx context.Context, id string) (*model.MenuNode, error) {
	var node model.MenuNode
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&node).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", id, "", "menu_get", "GET", map[string]interface{}{
			"operation": "get_node_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &node, nil
}

// GetAllNodes 一次性加载全部菜单节点
// 树构建器基于该快照在内存中完成组装，排序为(sort_order, created_at, id)
func (r *MenuRepository) GetAllNodes(ctx context.Context) ([]*model.MenuNode, error) {
	var nodes []*model.MenuNode
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&nodes).Error
	if err != nil {
		logger.LogError(err, "", "", "", "menu_list", "GET", map[string]interface{}{
			"operation": "get_all_nodes",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return nodes, nil
}

// UpdateNode 更新菜单节点
func (r *MenuRepository) UpdateNode(ctx context.Context, node *model.MenuNode) error {
	result := r.db.WithContext(ctx).Save(node)
	return result.Error
}

// DeleteNodeWithChildren 在单个事务中删除菜单节点及其整棵子树
// 子树通过parent_id在内存中逐层收集，避免依赖数据库方言的递归查询
func (r *MenuRepository) DeleteNodeWithChildren(ctx context.Context, nodeID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 收集子树节点ID
		toDelete := []string{nodeID}
		frontier := []string{nodeID}
		for len(frontier) > 0 {
			var childIDs []string
			if err := tx.Model(&model.MenuNode{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &childIDs).Error; err != nil {
				return fmt.Errorf("failed to collect menu subtree: %w", err)
			}
			toDelete = append(toDelete, childIDs...)
			frontier = childIDs
		}

		if err := tx.Where("id IN ?", toDelete).
			Delete(&model.MenuNode{}).Error; err != nil {
			return fmt.Errorf("failed to delete menu subtree: %w", err)
		}
		return nil
	})
}

// HasChildren 检查节点是否存在子节点
func (r *MenuRepository) HasChildren(ctx context.Context, nodeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MenuNode{}).
		Where("parent_id = ?", nodeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count menu children: %w", err)
	}
	return count > 0, nil
}
