/**
 * 接口层:管理接口通用响应
 * @author: sun977
 * @date: 2025.11.20
 * @description: 管理接口的错误码映射与分页组装
 * @func:
 * 1.writeServiceError 业务错误到HTTP状态码映射
 * 2.buildPagination 分页响应组装
 */
package system

import (
	"errors"
	"math"
	"net/http"

	"neocms/internal/model"
	"neocms/internal/model/system"

	"github.com/gin-gonic/gin"
)

// writeServiceError 业务错误统一映射到HTTP状态码
func writeServiceError(c *gin.Context, message string, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case system.IsValidationError(err),
		errors.Is(err, system.ErrInvalidSlug),
		errors.Is(err, system.ErrCrossModuleGrant),
		errors.Is(err, system.ErrMenuCycle),
		errors.Is(err, system.ErrSingleModuleInstance):
		statusCode = http.StatusBadRequest
	case errors.Is(err, system.ErrSlugAlreadyExists):
		statusCode = http.StatusConflict
	case errors.Is(err, system.ErrSystemGroupProtected):
		statusCode = http.StatusForbidden
	case errors.Is(err, system.ErrUserNotFound),
		errors.Is(err, system.ErrGroupNotFound),
		errors.Is(err, system.ErrInstanceNotFound),
		errors.Is(err, system.ErrPermissionDefNotFound),
		errors.Is(err, system.ErrMenuNodeNotFound):
		statusCode = http.StatusNotFound
	}

	c.JSON(statusCode, model.APIResponse{
		Code:    statusCode,
		Status:  "error",
		Message: message,
		Error:   err.Error(),
	})
}

// writeSuccess 成功响应
func writeSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// writeBindError 请求体解析失败响应
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.APIResponse{
		Code:    http.StatusBadRequest,
		Status:  "error",
		Message: "Invalid request body",
		Error:   err.Error(),
	})
}

// buildPagination 组装分页响应
func buildPagination(total int64, page, pageSize int, data interface{}) *model.PaginationResponse {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	return &model.PaginationResponse{
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		Data:        data,
	}
}
