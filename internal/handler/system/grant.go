/**
 * 接口层:权限授予管理接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 组在模块实例上的权限授予/撤销/查询(管理后台)
 * @func:
 * 1.Grant / Revoke
 * 2.ListGrants
 */
package system

import (
	"net/http"

	"neocms/internal/model"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// GrantHandler 权限授予管理接口处理器
type GrantHandler struct {
	service *cms.GrantService
}

// NewGrantHandler 创建权限授予处理器实例
func NewGrantHandler(service *cms.GrantService) *GrantHandler {
	return &GrantHandler{
		service: service,
	}
}

// Grant 向组授予实例上的权限
// POST /api/v1/admin/grants
func (h *GrantHandler) Grant(c *gin.Context) {
	var req model.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.Grant(c.Request.Context(), operatorID, &req); err != nil {
		writeServiceError(c, "Failed to grant permission", err)
		return
	}

	writeSuccess(c, "Permission granted successfully", nil)
}

// Revoke 撤销组在实例上的权限
// DELETE /api/v1/admin/grants
func (h *GrantHandler) Revoke(c *gin.Context) {
	var req model.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.Revoke(c.Request.Context(), operatorID, &req); err != nil {
		writeServiceError(c, "Failed to revoke permission", err)
		return
	}

	writeSuccess(c, "Permission revoked successfully", nil)
}

// ListGrants 列出组在实例上已授予的权限
// GET /api/v1/admin/grants?group_id=xxx&instance_id=yyy
func (h *GrantHandler) ListGrants(c *gin.Context) {
	groupID := c.Query("group_id")
	instanceID := c.Query("instance_id")
	if groupID == "" || instanceID == "" {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "error",
			Message: "group_id and instance_id are required",
		})
		return
	}

	defs, err := h.service.ListGrants(c.Request.Context(), groupID, instanceID)
	if err != nil {
		writeServiceError(c, "Failed to list grants", err)
		return
	}

	granted := make([]model.PermissionDefinition, 0, len(defs))
	for _, def := range defs {
		granted = append(granted, *def)
	}

	writeSuccess(c, "Success", &model.GrantListResponse{
		GroupID:    groupID,
		InstanceID: instanceID,
		Granted:    granted,
	})
}
