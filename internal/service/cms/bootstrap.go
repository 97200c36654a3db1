/**
 * 业务层:平台启动引导
 * @author: sun977
 * @date: 2025.11.20
 * @description: 进程启动时的平台数据准备,任一步失败则进程不允许启动
 * @func:
 * 1.平台表结构迁移
 * 2.模块依赖表前置检查
 * 3.权限定义同步
 * 4.系统内置组种子
 * 5.SINGLE模块隐式实例供给
 */
package cms

import (
	"context"
	"fmt"

	"neocms/internal/model"
	"neocms/internal/pkg/logger"
	"neocms/internal/pkg/utils"
	"neocms/internal/repo/mysql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Bootstrapper 平台启动引导器
type Bootstrapper struct {
	db             *gorm.DB
	registry       *ModuleRegistry
	groupRepo      *mysql.GroupRepository
	instanceRepo   *mysql.InstanceRepository
	permissionRepo *mysql.PermissionRepository
}

// NewBootstrapper 创建启动引导器
func NewBootstrapper(db *gorm.DB, registry *ModuleRegistry, groupRepo *mysql.GroupRepository, instanceRepo *mysql.InstanceRepository, permissionRepo *mysql.PermissionRepository) *Bootstrapper {
	return &Bootstrapper{
		db:             db,
		registry:       registry,
		groupRepo:      groupRepo,
		instanceRepo:   instanceRepo,
		permissionRepo: permissionRepo,
	}
}

// Run 执行完整启动引导
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.migratePlatformTables(); err != nil {
		return fmt.Errorf("platform table migration failed: %w", err)
	}

	// 模块业务表由部署脚本创建,缺表意味着迁移未执行
	if err := b.registry.CheckRequiredTables(b.db); err != nil {
		return fmt.Errorf("required table check failed: %w", err)
	}

	if err := b.syncPermissionDefinitions(ctx); err != nil {
		return fmt.Errorf("permission definition sync failed: %w", err)
	}

	if err := b.seedSystemGroups(ctx); err != nil {
		return fmt.Errorf("system group seed failed: %w", err)
	}

	if err := b.provisionSingleInstances(ctx); err != nil {
		return fmt.Errorf("single module provisioning failed: %w", err)
	}

	logger.LogSystemEvent("bootstrap", "completed", "platform bootstrap finished", logrus.InfoLevel, map[string]interface{}{
		"module_count": len(b.registry.All()),
		"timestamp":    logger.NowFormatted(),
	})

	return nil
}

// migratePlatformTables 迁移平台自身的表结构
func (b *Bootstrapper) migratePlatformTables() error {
	return b.db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Group{},
		&model.GroupMembership{},
		&model.ModuleInstance{},
		&model.PermissionDefinition{},
		&model.PermissionGrant{},
		&model.MenuNode{},
	)
}

// syncPermissionDefinitions 将注册表权限目录同步到数据库
func (b *Bootstrapper) syncPermissionDefinitions(ctx context.Context) error {
	return b.permissionRepo.SyncDefinitions(ctx, b.registry.FullCatalogue())
}

// seedSystemGroups 种入系统内置组
// everyone: 全体调用者(含匿名)的隐式组; admin: 平台管理组
func (b *Bootstrapper) seedSystemGroups(ctx context.Context) error {
	systemGroups := []struct {
		code string
		name string
	}{
		{model.GroupCodeEveryone, "所有人"},
		{model.GroupCodeAdmin, "平台管理员"},
	}

	for _, sg := range systemGroups {
		existing, err := b.groupRepo.GetGroupByCode(ctx, sg.code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		group := &model.Group{
			ID:        utils.MustGenerateUUID(),
			GroupCode: sg.code,
			Name:      sg.name,
			IsSystem:  true,
		}
		if err := b.groupRepo.CreateGroup(ctx, group); err != nil {
			return err
		}

		logger.LogSystemEvent("bootstrap", "group_seeded", "system group created", logrus.InfoLevel, map[string]interface{}{
			"group_code": sg.code,
			"timestamp":  logger.NowFormatted(),
		})
	}

	return nil
}

// provisionSingleInstances 为SINGLE模块供给唯一隐式实例
// 实例slug与模块slug一致,幂等:已存在则跳过
func (b *Bootstrapper) provisionSingleInstances(ctx context.Context) error {
	for _, def := range b.registry.All() {
		if def.Type != model.ModuleTypeSingle {
			continue
		}

		count, err := b.instanceRepo.CountByModule(ctx, def.Code)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		instance := &model.ModuleInstance{
			ID:           utils.MustGenerateUUID(),
			ModuleCode:   def.Code,
			InstanceName: def.DisplayName,
			Slug:         def.Slug,
		}
		if err := b.instanceRepo.CreateInstance(ctx, instance); err != nil {
			return err
		}

		logger.LogSystemEvent("bootstrap", "instance_provisioned", "implicit single-module instance created", logrus.InfoLevel, map[string]interface{}{
			"module_code": def.Code,
			"instance_id": instance.ID,
			"timestamp":   logger.NowFormatted(),
		})
	}

	return nil
}
