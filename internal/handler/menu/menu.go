/**
 * 接口层:菜单接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 调用者可见菜单树与管理后台完整菜单树
 * @func:
 * 1.GetMyMenu 当前调用者的可见菜单树
 * 2.GetAdminMenu 未裁剪的完整菜单树(管理后台)
 */
package menu

import (
	"net/http"

	"neocms/internal/model"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// MenuHandler 菜单接口处理器
type MenuHandler struct {
	builder *cms.MenuTreeBuilder
}

// NewMenuHandler 创建菜单处理器实例
func NewMenuHandler(builder *cms.MenuTreeBuilder) *MenuHandler {
	return &MenuHandler{
		builder: builder,
	}
}

// GetMyMenu 获取当前调用者的可见菜单树
// GET /api/v1/menus/me
// 匿名调用者同样可用,按everyone组的授权裁剪
func (h *MenuHandler) GetMyMenu(c *gin.Context) {
	var userID *string
	if id := utils.GetCurrentUserIDFromGinContext(c); id != "" {
		userID = &id
	}
	roles := utils.GetCurrentRolesFromGinContext(c)

	tree, err := h.builder.BuildVisibleTree(c.Request.Context(), userID, roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "error",
			Message: "Failed to build menu tree",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Success",
		Data:    tree,
	})
}

// GetAdminMenu 获取未裁剪的完整菜单树
// GET /api/v1/admin/menus/tree
func (h *MenuHandler) GetAdminMenu(c *gin.Context) {
	tree, err := h.builder.BuildAdminTree(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "error",
			Message: "Failed to build menu tree",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Success",
		Data:    tree,
	})
}
