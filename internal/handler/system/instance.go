/**
 * 接口层:模块实例管理接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 模块实例的增删改查(管理后台)
 * @func:
 * 1.CreateInstance / UpdateInstance / DeleteInstance
 * 2.GetInstance / ListInstances
 */
package system

import (
	"strconv"

	"neocms/internal/model"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// InstanceHandler 模块实例管理接口处理器
type InstanceHandler struct {
	service *cms.InstanceService
}

// NewInstanceHandler 创建模块实例处理器实例
func NewInstanceHandler(service *cms.InstanceService) *InstanceHandler {
	return &InstanceHandler{
		service: service,
	}
}

// CreateInstance 创建模块实例
// POST /api/v1/admin/instances
func (h *InstanceHandler) CreateInstance(c *gin.Context) {
	var req model.CreateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	instance, err := h.service.CreateInstance(c.Request.Context(), operatorID, &req)
	if err != nil {
		writeServiceError(c, "Failed to create instance", err)
		return
	}

	writeSuccess(c, "Instance created successfully", instance)
}

// GetInstance 获取模块实例详情
// GET /api/v1/admin/instances/:id
func (h *InstanceHandler) GetInstance(c *gin.Context) {
	instance, err := h.service.GetInstance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, "Failed to get instance", err)
		return
	}

	writeSuccess(c, "Success", instance)
}

// ListInstances 分页获取模块实例列表
// GET /api/v1/admin/instances
func (h *InstanceHandler) ListInstances(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	instances, total, err := h.service.GetInstanceList(c.Request.Context(), page, pageSize)
	if err != nil {
		writeServiceError(c, "Failed to list instances", err)
		return
	}

	writeSuccess(c, "Success", buildPagination(total, page, pageSize, instances))
}

// UpdateInstance 更新模块实例
// PUT /api/v1/admin/instances/:id
func (h *InstanceHandler) UpdateInstance(c *gin.Context) {
	var req model.UpdateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	instance, err := h.service.UpdateInstance(c.Request.Context(), operatorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, "Failed to update instance", err)
		return
	}

	writeSuccess(c, "Instance updated successfully", instance)
}

// DeleteInstance 级联删除模块实例
// DELETE /api/v1/admin/instances/:id
func (h *InstanceHandler) DeleteInstance(c *gin.Context) {
	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.DeleteInstance(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		writeServiceError(c, "Failed to delete instance", err)
		return
	}

	writeSuccess(c, "Instance deleted successfully", nil)
}
