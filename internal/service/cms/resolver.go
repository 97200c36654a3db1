/**
 * 业务层:slug解析
 * @author: sun977
 * @date: 2025.11.20
 * @description: URL路径段到模块实例的解析,附带基线访问权限校验
 * @func:
 * 1.ResolveSingle 单实例模块解析
 * 2.ResolveMulti 多实例模块解析
 * @note: 纯读操作,幂等;"不存在"与"无权访问"对外统一为NotFound,真实原因仅记录日志
 */
package cms

import (
	"context"
	"sort"

	"neocms/internal/model"
	"neocms/internal/model/system"
	"neocms/internal/pkg/logger"
	"neocms/internal/repo/mysql"
)

// SlugResolver slug解析器
type SlugResolver struct {
	registry     *ModuleRegistry
	instanceRepo *mysql.InstanceRepository
	aggregator   *PermissionAggregator
}

// NewSlugResolver 创建slug解析器
func NewSlugResolver(registry *ModuleRegistry, instanceRepo *mysql.InstanceRepository, aggregator *PermissionAggregator) *SlugResolver {
	return &SlugResolver{
		registry:     registry,
		instanceRepo: instanceRepo,
		aggregator:   aggregator,
	}
}

// ResolveSingle 解析单实例模块路径 /{moduleSlug}
// SINGLE模块安装时必然存在唯一隐式实例,缺失属于数据不一致而非NotFound
func (s *SlugResolver) ResolveSingle(ctx context.Context, moduleSlug string, userID *string) (*model.ResolutionResult, error) {
	def, ok := s.registry.GetBySlug(moduleSlug)
	if !ok || def.Type != model.ModuleTypeSingle {
		return nil, system.ErrNotFound
	}

	// 按模块编码定位唯一隐式实例,不依赖实例slug与模块slug保持一致
	instances, err := s.instanceRepo.GetInstancesByModule(ctx, def.Code)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		// 隐式实例缺失:安装流程或迁移缺陷
		logger.LogError(system.ErrInternalInconsistency, "", derefUserID(userID), "", "slug_resolve", "GET", map[string]interface{}{
			"operation":   "resolve_single",
			"module_code": def.Code,
			"module_slug": moduleSlug,
			"cause":       "implicit instance missing",
			"timestamp":   logger.NowFormatted(),
		})
		return nil, system.ErrInternalInconsistency
	}
	if len(instances) > 1 {
		// 单实例模块出现多个实例同样属于数据不一致
		logger.LogError(system.ErrInternalInconsistency, "", derefUserID(userID), "", "slug_resolve", "GET", map[string]interface{}{
			"operation":      "resolve_single",
			"module_code":    def.Code,
			"module_slug":    moduleSlug,
			"instance_count": len(instances),
			"cause":          "multiple instances of single-type module",
			"timestamp":      logger.NowFormatted(),
		})
		return nil, system.ErrInternalInconsistency
	}

	return s.buildResult(ctx, def, instances[0], userID)
}

// ResolveMulti 解析多实例模块路径 /{moduleSlug}/{instanceSlug}
// slug比较区分大小写,不做任何标准化
func (s *SlugResolver) ResolveMulti(ctx context.Context, moduleSlug, instanceSlug string, userID *string) (*model.ResolutionResult, error) {
	def, ok := s.registry.GetBySlug(moduleSlug)
	if !ok || def.Type != model.ModuleTypeMulti {
		return nil, system.ErrNotFound
	}

	instance, err := s.instanceRepo.GetInstanceBySlug(ctx, def.Code, instanceSlug)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, system.ErrNotFound
	}

	return s.buildResult(ctx, def, instance, userID)
}

// buildResult 校验基线访问权限并组装解析结果
// 缺少基线权限与实例不存在返回完全相同的错误,防止资源存在性泄露
func (s *SlugResolver) buildResult(ctx context.Context, def *model.ModuleDefinition, instance *model.ModuleInstance, userID *string) (*model.ResolutionResult, error) {
	granted, err := s.aggregator.GrantedPermissions(ctx, userID, instance.ID)
	if err != nil {
		return nil, err
	}

	if _, ok := granted[def.AccessPermission()]; !ok {
		// 真实原因只进日志,对外与"不存在"不可区分
		logger.LogBusinessOperation("slug_resolve_denied", derefUserID(userID), "", "", "", "denied",
			"caller lacks baseline access permission", map[string]interface{}{
				"module_code": def.Code,
				"instance_id": instance.ID,
				"slug":        instance.Slug,
				"required":    def.AccessPermission(),
				"timestamp":   logger.NowFormatted(),
			})
		return nil, system.ErrNotFound
	}

	permissions := make([]string, 0, len(granted))
	for name := range granted {
		permissions = append(permissions, name)
	}
	sort.Strings(permissions)

	return &model.ResolutionResult{
		ModuleCode:   def.Code,
		ModuleType:   def.Type,
		InstanceID:   instance.ID,
		InstanceName: instance.InstanceName,
		Slug:         instance.Slug,
		Permissions:  permissions,
	}, nil
}

// derefUserID 解引用可空用户ID,匿名调用者返回空字符串
func derefUserID(userID *string) string {
	if userID == nil {
		return ""
	}
	return *userID
}
