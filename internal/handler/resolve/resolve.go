/**
 * 接口层:路径解析接口
 * @author: sun977
 * @date: 2025.11.20
 * @description: slug到模块实例的解析入口,匿名与认证调用者共用
 * @func:
 * 1.ResolveSingle 单段路径解析
 * 2.ResolveMulti 双段路径解析
 */
package resolve

import (
	"errors"
	"net/http"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/utils"
	"neocms/internal/service/cms"

	"github.com/gin-gonic/gin"
)

// ResolveHandler 路径解析接口处理器
type ResolveHandler struct {
	resolver *cms.SlugResolver
}

// NewResolveHandler 创建路径解析处理器实例
func NewResolveHandler(resolver *cms.SlugResolver) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// ResolveSingle 解析单段路径
// GET /api/v1/resolve/:moduleSlug
func (h *ResolveHandler) ResolveSingle(c *gin.Context) {
	result, err := h.resolver.ResolveSingle(c.Request.Context(), c.Param("moduleSlug"), callerID(c))
	if err != nil {
		writeResolveError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Resolved",
		Data:    result,
	})
}

// ResolveMulti 解析双段路径
// GET /api/v1/resolve/:moduleSlug/:instanceSlug
func (h *ResolveHandler) ResolveMulti(c *gin.Context) {
	result, err := h.resolver.ResolveMulti(c.Request.Context(), c.Param("moduleSlug"), c.Param("instanceSlug"), callerID(c))
	if err != nil {
		writeResolveError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Resolved",
		Data:    result,
	})
}

// callerID 从Gin上下文取调用者身份,匿名调用者返回nil
func callerID(c *gin.Context) *string {
	userID := utils.GetCurrentUserIDFromGinContext(c)
	if userID == "" {
		return nil
	}
	return &userID
}

// writeResolveError 解析失败的统一响应
// 不存在与无权访问返回同一个404,不区分两种情况
func writeResolveError(c *gin.Context, err error) {
	if errors.Is(err, system.ErrNotFound) {
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:    http.StatusNotFound,
			Status:  "error",
			Message: "Not found",
			Error:   system.ErrNotFound.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, model.APIResponse{
		Code:    http.StatusInternalServerError,
		Status:  "error",
		Message: "Resolve failed",
		Error:   err.Error(),
	})
}
