/**
 * 接口层:用户组管理接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户组与组成员管理(管理后台)
 * @func:
 * 1.CreateGroup / UpdateGroup / DeleteGroup
 * 2.GetGroup / ListGroups
 * 3.AddMember / RemoveMember / ListMembers
 */
package system

import (
	"strconv"

	"neocms/internal/model"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// GroupHandler 用户组管理接口处理器
type GroupHandler struct {
	service *cms.GroupService
}

// NewGroupHandler 创建用户组处理器实例
func NewGroupHandler(service *cms.GroupService) *GroupHandler {
	return &GroupHandler{
		service: service,
	}
}

// CreateGroup 创建用户组
// POST /api/v1/admin/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req model.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	group, err := h.service.CreateGroup(c.Request.Context(), operatorID, &req)
	if err != nil {
		writeServiceError(c, "Failed to create group", err)
		return
	}

	writeSuccess(c, "Group created successfully", group)
}

// GetGroup 获取用户组详情
// GET /api/v1/admin/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.service.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, "Failed to get group", err)
		return
	}

	writeSuccess(c, "Success", group)
}

// ListGroups 分页获取用户组列表
// GET /api/v1/admin/groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	groups, total, err := h.service.GetGroupList(c.Request.Context(), page, pageSize)
	if err != nil {
		writeServiceError(c, "Failed to list groups", err)
		return
	}

	writeSuccess(c, "Success", buildPagination(total, page, pageSize, groups))
}

// UpdateGroup 更新用户组
// PUT /api/v1/admin/groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var req model.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	group, err := h.service.UpdateGroup(c.Request.Context(), operatorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, "Failed to update group", err)
		return
	}

	writeSuccess(c, "Group updated successfully", group)
}

// DeleteGroup 删除用户组
// DELETE /api/v1/admin/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.DeleteGroup(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		writeServiceError(c, "Failed to delete group", err)
		return
	}

	writeSuccess(c, "Group deleted successfully", nil)
}

// AddMember 添加组成员
// POST /api/v1/admin/groups/:id/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	var req model.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.AddMember(c.Request.Context(), operatorID, c.Param("id"), req.UserID); err != nil {
		writeServiceError(c, "Failed to add member", err)
		return
	}

	writeSuccess(c, "Member added successfully", nil)
}

// RemoveMember 移除组成员
// DELETE /api/v1/admin/groups/:id/members/:userId
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	operatorID := utils.GetCurrentUserIDFromGinContext(c)
	if err := h.service.RemoveMember(c.Request.Context(), operatorID, c.Param("id"), c.Param("userId")); err != nil {
		writeServiceError(c, "Failed to remove member", err)
		return
	}

	writeSuccess(c, "Member removed successfully", nil)
}

// ListMembers 获取组成员用户ID列表
// GET /api/v1/admin/groups/:id/members
func (h *GroupHandler) ListMembers(c *gin.Context) {
	userIDs, err := h.service.GetMemberUserIDs(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, "Failed to list members", err)
		return
	}

	writeSuccess(c, "Success", userIDs)
}
