/**
 * 接口层:菜单节点管理接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 菜单节点的增删改查(管理后台)
 * @func:
 * 1.CreateNode / UpdateNode / DeleteNode
 * 2.GetNode
 */
package system

import (
	"neocms/internal/model"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// MenuNodeHandler 菜单节点管理接口处理器
type MenuNodeHandler struct {
	service *cms.MenuService
}

// NewMenuNodeHandler 创建菜单节点处理器实例
func NewMenuNodeHandler(service *cms.MenuService) *MenuNodeHandler {
	return &MenuNodeHandler{
		service: service,
	}
}

// CreateNode 创建菜单节点
// POST /api/v1/admin/menus
func (h *MenuNodeHandler) CreateNode(c *gin.Context) {
	var req model.CreateMenuNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	node, err := h.service.CreateNode(c.Request.Context(), operatorID, &req)
	if err != nil {
		writeServiceError(c, "Failed to create menu node", err)
		return
	}

	writeSuccess(c, "Menu node created successfully", node)
}

// GetNode 获取菜单节点详情
// GET /api/v1/admin/menus/:id
func (h *MenuNodeHandler) GetNode(c *gin.Context) {
	node, err := h.service.GetNode(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, "Failed to get menu node", err)
		return
	}

	writeSuccess(c, "Success", node)
}

// UpdateNode 更新菜单节点
// PUT /api/v1/admin/menus/:id
func (h *MenuNodeHandler) UpdateNode(c *gin.Context) {
	var req model.UpdateMenuNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	node, err := h.service.UpdateNode(c.Request.Context(), operatorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, "Failed to update menu node", err)
		return
	}

	writeSuccess(c, "Menu node updated successfully", node)
}

// DeleteNode 删除菜单节点及其子树
// DELETE /api/v1/admin/menus/:id
func (h *MenuNodeHandler) DeleteNode(c *gin.Context) {
	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.DeleteNode(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		writeServiceError(c, "Failed to delete menu node", err)
		return
	}

	writeSuccess(c, "Menu node deleted successfully", nil)
}
