/**
 * 业务层:菜单节点管理
 * @author: sun977
 * @date: 2025.11.20
 * @description: 菜单节点CRUD,类型条件字段与环路在写边界校验
 * @func:
 * 1.CreateNode / UpdateNode / DeleteNode
 * 2.重挂父节点时的环路检测(沿祖先链上溯)
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

// MenuService 菜单节点管理服务
type MenuService struct {
	menuRepo     *mysql.MenuRepository
	instanceRepo *mysql.InstanceRepository
}

// NewMenuService 创建菜单节点管理服务
func NewMenuService(menuRepo *mysql.MenuRepository, instanceRepo *mysql.InstanceRepository) *MenuService {
	return &MenuService{
		menuRepo:     menuRepo,
		instanceRepo: instanceRepo,
	}
}

// validateTypeFields 校验类型条件字段
// MODULE必须引用存在的实例,LINK必须有custom_url,SEPARATOR不承载任何引用
func (s *MenuService) validateTypeFields(ctx context.Context, menuType model.MenuType, instanceID *string, customURL string) error {
	switch menuType {
	case model.MenuTypeModule:
		if instanceID == nil || *instanceID == "" {
			return system.NewValidationError("MODULE menu node requires module_instance_id")
		}
		instance, err := s.instanceRepo.GetInstanceByID(ctx, *instanceID)
		if err != nil {
			return err
		}
		if instance == nil {
			return system.ErrInstanceNotFound
		}
	case model.MenuTypeLink:
		if customURL == "" {
			return system.NewValidationError("LINK menu node requires custom_url")
		}
	case model.MenuTypeSeparator:
		// 分隔符不承载引用
	default:
		return system.NewValidationError(fmt.Sprintf("invalid menu type: %s", menuType))
	}
	return nil
}

// CreateNode 创建菜单节点
func (s *MenuService) CreateNode(ctx context.Context, operatorID string, req *model.CreateMenuNodeRequest) (*model.MenuNode, error) {
	if err := s.validateTypeFields(ctx, req.MenuType, req.ModuleInstanceID, req.CustomURL); err != nil {
		return nil, err
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.menuRepo.GetNodeByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, system.ErrMenuNodeNotFound
		}
	}

	isVisible := true
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	node := &model.MenuNode{
		ID:               utils.MustGenerateUUID(),
		ParentID:         normalizeParentID(req.ParentID),
		Name:             req.Name,
		Icon:             req.Icon,
		MenuType:         req.MenuType,
		ModuleInstanceID: req.ModuleInstanceID,
		CustomURL:        req.CustomURL,
		RequiredRole:     req.RequiredRole,
		SortOrder:        req.SortOrder,
		IsVisible:        isVisible,
	}

	if err := s.menuRepo.CreateNode(ctx, node); err != nil {
		logger.LogError(err, "", operatorID, "", "menu_create", "POST", map[string]interface{}{
			"operation": "create_node",
			"name":      req.Name,
			"menu_type": string(req.MenuType),
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("menu_node_create", operatorID, "", "", "", "success",
		"menu node created", map[string]interface{}{
			"node_id":   node.ID,
			"menu_type": string(node.MenuType),
			"timestamp": logger.NowFormatted(),
		})

	return node, nil
}

// GetNode 根据ID获取菜单节点
func (s *MenuService) GetNode(ctx context.Context, nodeID string) (*model.MenuNode, error) {
	node, err := s.menuRepo.GetNodeByID(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, system.ErrMenuNodeNotFound
	}
	return node, nil
}

// UpdateNode 更新菜单节点
// 调整parent_id时沿祖先链上溯检测环路,节点不能成为自身的后代
func (s *MenuService) UpdateNode(ctx context.Context, operatorID, nodeID string, req *model.UpdateMenuNodeRequest) (*model.MenuNode, error) {
	node, err := s.menuRepo.GetNodeByID(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, system.ErrMenuNodeNotFound
	}

	if req.ParentID != nil {
		newParentID := normalizeParentID(req.ParentID)
		if newParentID != nil {
			if *newParentID == nodeID {
				return nil, system.ErrMenuCycle
			}
			parent, err := s.menuRepo.GetNodeByID(ctx, *newParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, system.ErrMenuNodeNotFound
			}
			if err := s.checkCycle(ctx, nodeID, parent); err != nil {
				return nil, err
			}
		}
		node.ParentID = newParentID
	}

	if req.Name != "" {
		node.Name = req.Name
	}
	if req.Icon != "" {
		node.Icon = req.Icon
	}
	if req.CustomURL != "" {
		if node.MenuType != model.MenuTypeLink {
			return nil, system.NewValidationError("custom_url only applies to LINK menu nodes")
		}
		node.CustomURL = req.CustomURL
	}
	if req.RequiredRole != "" {
		if node.MenuType != model.MenuTypeLink {
			return nil, system.NewValidationError("required_role only applies to LINK menu nodes")
		}
		node.RequiredRole = req.RequiredRole
	}
	if req.SortOrder != nil {
		node.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		node.IsVisible = *req.IsVisible
	}

	if err := s.menuRepo.UpdateNode(ctx, node); err != nil {
		return nil, err
	}

	logger.LogBusinessOperation("menu_node_update", operatorID, "", "", "", "success",
		"menu node updated", map[string]interface{}{
			"node_id":   node.ID,
			"timestamp": logger.NowFormatted(),
		})

	return node, nil
}

// checkCycle 从目标父节点沿祖先链上溯
// 途中遇到被移动节点本身即构成环路
func (s *MenuService) checkCycle(ctx context.Context, movingNodeID string, parent *model.MenuNode) error {
	current := parent
	for current != nil {
		if current.ID == movingNodeID {
			return system.ErrMenuCycle
		}
		if current.IsRoot() {
			return nil
		}
		next, err := s.menuRepo.GetNodeByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		if next == nil {
			// 祖先链断裂,按无环处理,构建器会记录不一致
			return nil
		}
		current = next
	}
	return nil
}

// DeleteNode 删除菜单节点及其整棵子树
func (s *MenuService) DeleteNode(ctx context.Context, operatorID, nodeID string) error {
	node, err := s.menuRepo.GetNodeByID(ctx, nodeID)
	if err != nil {
		return err
	}
	if node == nil {
		return system.ErrMenuNodeNotFound
	}

	if err := s.menuRepo.DeleteNodeWithChildren(ctx, nodeID); err != nil {
		logger.LogError(err, "", operatorID, "", "menu_delete", "DELETE", map[string]interface{}{
			"operation": "delete_node",
			"node_id":   nodeID,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("menu_node_delete", operatorID, "", "", "", "success",
		"menu node deleted with subtree", map[string]interface{}{
			"node_id":   nodeID,
			"timestamp": logger.NowFormatted(),
		})

	return nil
}

// normalizeParentID 空字符串父节点ID归一化为nil(根节点)
func normalizeParentID(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	return parentID
}
