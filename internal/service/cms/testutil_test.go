/**
 * 业务层测试:共享测试环境
 * @author: sun977
 * @date: 2025.11.20
 * @description: 内存数据库上完整引导的平台测试环境与数据种子辅助函数
 */
package cms

import (
	"context"
	"testing"

	"neocms/internal/model"
	"neocms/internal/pkg/utils"
	"neocms/internal/repo/mysql"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// testEnv 单个测试用例的平台环境
// 每个用例独享一个内存库,引导流程与进程启动完全一致
type testEnv struct {
	db             *gorm.DB
	registry       *ModuleRegistry
	groupRepo      *mysql.GroupRepository
	instanceRepo   *mysql.InstanceRepository
	permissionRepo *mysql.PermissionRepository
	menuRepo       *mysql.MenuRepository
	userRepo       *mysql.UserRepository
	aggregator     *PermissionAggregator
}

// newTestEnv 创建测试环境并执行完整启动引导
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// 1. 打开内存数据库
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}

	// 2. 创建模块业务依赖表(生产环境由部署脚本负责)
	moduleTables := []string{
		`CREATE TABLE board_posts (id TEXT PRIMARY KEY, instance_id TEXT NOT NULL, author_id TEXT NOT NULL, title TEXT NOT NULL, content TEXT, is_pinned INTEGER NOT NULL DEFAULT 0, created_at DATETIME, updated_at DATETIME)`,
		`CREATE TABLE board_comments (id TEXT PRIMARY KEY, post_id TEXT NOT NULL, author_id TEXT NOT NULL, content TEXT, created_at DATETIME)`,
		`CREATE TABLE page_contents (id TEXT PRIMARY KEY, instance_id TEXT NOT NULL, body TEXT, editor_id TEXT, created_at DATETIME, updated_at DATETIME)`,
	}
	for _, stmt := range moduleTables {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("创建模块业务表失败: %v", err)
		}
	}

	// 3. 构建注册中心与仓库
	registry, err := NewModuleRegistry(BuiltinModuleDefinitions())
	if err != nil {
		t.Fatalf("构建模块注册中心失败: %v", err)
	}

	env := &testEnv{
		db:             db,
		registry:       registry,
		groupRepo:      mysql.NewGroupRepository(db),
		instanceRepo:   mysql.NewInstanceRepository(db),
		permissionRepo: mysql.NewPermissionRepository(db),
		menuRepo:       mysql.NewMenuRepository(db),
		userRepo:       mysql.NewUserRepository(db),
	}
	env.aggregator = NewPermissionAggregator(env.groupRepo, env.permissionRepo)

	// 4. 执行启动引导:表迁移/依赖表检查/权限目录同步/系统组种子/SINGLE实例供给
	bootstrapper := NewBootstrapper(db, registry, env.groupRepo, env.instanceRepo, env.permissionRepo)
	if err := bootstrapper.Run(context.Background()); err != nil {
		t.Fatalf("平台启动引导失败: %v", err)
	}

	return env
}

// mustGroupByCode 按组编码获取组,不存在则测试失败
func (env *testEnv) mustGroupByCode(t *testing.T, code string) *model.Group {
	t.Helper()
	group, err := env.groupRepo.GetGroupByCode(context.Background(), code)
	if err != nil {
		t.Fatalf("查询组%s失败: %v", code, err)
	}
	if group == nil {
		t.Fatalf("组%s不存在", code)
	}
	return group
}

// mustDefinition 按模块编码和权限规范名获取权限定义
func (env *testEnv) mustDefinition(t *testing.T, moduleCode, name string) *model.PermissionDefinition {
	t.Helper()
	def, err := env.permissionRepo.GetDefinitionByName(context.Background(), moduleCode, name)
	if err != nil {
		t.Fatalf("查询权限定义%s失败: %v", name, err)
	}
	if def == nil {
		t.Fatalf("权限定义%s不存在", name)
	}
	return def
}

// mustPageInstance 获取启动引导供给的page模块隐式实例
func (env *testEnv) mustPageInstance(t *testing.T) *model.ModuleInstance {
	t.Helper()
	instance, err := env.instanceRepo.GetInstanceBySlug(context.Background(), "page", "pages")
	if err != nil {
		t.Fatalf("查询page隐式实例失败: %v", err)
	}
	if instance == nil {
		t.Fatalf("page隐式实例未供给")
	}
	return instance
}

// createBoardInstance 直接通过仓库创建一个board实例
func (env *testEnv) createBoardInstance(t *testing.T, name, slug string) *model.ModuleInstance {
	t.Helper()
	instance := &model.ModuleInstance{
		ID:           utils.MustGenerateUUID(),
		ModuleCode:   "board",
		InstanceName: name,
		Slug:         slug,
	}
	if err := env.instanceRepo.CreateInstance(context.Background(), instance); err != nil {
		t.Fatalf("创建board实例失败: %v", err)
	}
	return instance
}

// grantPermission 向组授予实例上的指定权限
func (env *testEnv) grantPermission(t *testing.T, groupID, instanceID, moduleCode, permName string) {
	t.Helper()
	def := env.mustDefinition(t, moduleCode, permName)
	grant := &model.PermissionGrant{
		GroupID:      groupID,
		InstanceID:   instanceID,
		PermissionID: def.ID,
	}
	if err := env.permissionRepo.CreateGrant(context.Background(), grant); err != nil {
		t.Fatalf("创建授权%s失败: %v", permName, err)
	}
}

// revokePermission 撤销组在实例上的指定权限
func (env *testEnv) revokePermission(t *testing.T, groupID, instanceID, moduleCode, permName string) {
	t.Helper()
	def := env.mustDefinition(t, moduleCode, permName)
	if err := env.permissionRepo.DeleteGrant(context.Background(), groupID, instanceID, def.ID); err != nil {
		t.Fatalf("撤销授权%s失败: %v", permName, err)
	}
}

// createUser 创建测试用户
func (env *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		ID:       utils.MustGenerateUUID(),
		Username: username,
		Email:    username + "@test.local",
		Password: "not-a-real-hash",
		Status:   model.UserStatusEnabled,
	}
	if err := env.userRepo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("创建用户%s失败: %v", username, err)
	}
	return user
}

// createGroupWithMember 创建自定义组并加入成员
func (env *testEnv) createGroupWithMember(t *testing.T, groupCode string, userID string) *model.Group {
	t.Helper()
	group := &model.Group{
		ID:        utils.MustGenerateUUID(),
		GroupCode: groupCode,
		Name:      groupCode,
	}
	if err := env.groupRepo.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("创建组%s失败: %v", groupCode, err)
	}
	if userID != "" {
		if err := env.groupRepo.AddMember(context.Background(), group.ID, userID); err != nil {
			t.Fatalf("添加组成员失败: %v", err)
		}
	}
	return group
}

// createMenuNode 直接通过仓库创建菜单节点
func (env *testEnv) createMenuNode(t *testing.T, node *model.MenuNode) *model.MenuNode {
	t.Helper()
	if node.ID == "" {
		node.ID = utils.MustGenerateUUID()
	}
	if err := env.menuRepo.CreateNode(context.Background(), node); err != nil {
		t.Fatalf("创建菜单节点%s失败: %v", node.Name, err)
	}
	return node
}

// strPtr 返回字符串指针
func strPtr(s string) *string {
	return &s
}

// boolPtr 返回布尔指针
func boolPtr(b bool) *bool {
	return &b
}
