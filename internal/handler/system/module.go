/**
 * 接口层:模块定义查询接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: 注册模块清单与权限目录查询(管理后台)
 * @func:
 * 1.ListModules 注册模块清单
 * 2.GetPermissionCatalogue 模块权限目录
 */
package system

import (
	"net/http"

	"neocms/internal/model"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// ModuleHandler 模块定义查询接口处理器
type ModuleHandler struct {
	registry *cms.ModuleRegistry
}

// NewModuleHandler 创建模块定义处理器实例
func NewModuleHandler(registry *cms.ModuleRegistry) *ModuleHandler {
	return &ModuleHandler{
		registry: registry,
	}
}

// ListModules 获取注册模块清单
// GET /api/v1/admin/modules
func (h *ModuleHandler) ListModules(c *gin.Context) {
	writeSuccess(c, "Success", h.registry.DefinitionViews())
}

// GetPermissionCatalogue 获取模块的权限目录
// GET /api/v1/admin/modules/:code/permissions
func (h *ModuleHandler) GetPermissionCatalogue(c *gin.Context) {
	catalogue, err := h.registry.PermissionCatalogue(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:    http.StatusNotFound,
			Status:  "error",
			Message: "Module not found",
			Error:   err.Error(),
		})
		return
	}

	writeSuccess(c, "Success", catalogue)
}
