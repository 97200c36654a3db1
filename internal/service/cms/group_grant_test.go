/**
 * 业务层测试:用户组与权限授予管理
 * @author: sun977
 * @date: 2025.11.20
 * @description: 组CRUD/成员管理/授权写边界与幂等语义的测试
 */
package cms

import (
	"context"
	"errors"
	"testing"

	"neocms/internal/model"
	"neocms/internal/model/system"
)

func newTestGroupService(env *testEnv) *GroupService {
	return NewGroupService(env.groupRepo, env.userRepo)
}

func newTestGrantService(env *testEnv) *GrantService {
	return NewGrantService(env.groupRepo, env.instanceRepo, env.permissionRepo)
}

func TestBootstrapSeedsSystemGroups(t *testing.T) {
	env := newTestEnv(t)

	// everyone与admin由启动引导种入且标记为系统组
	for _, code := range []string{model.GroupCodeEveryone, model.GroupCodeAdmin} {
		group := env.mustGroupByCode(t, code)
		if !group.IsSystem {
			t.Errorf("组%s应标记为系统组", code)
		}
	}
}

func TestCreateGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	// 1. 正常创建
	group, err := svc.CreateGroup(ctx, "operator-1", &model.CreateGroupRequest{
		GroupCode: "editors",
		Name:      "编辑组",
	})
	if err != nil {
		t.Fatalf("创建组失败: %v", err)
	}
	if group.IsSystem {
		t.Errorf("手动创建的组不应是系统组")
	}
	if group.OwnerUserID != "operator-1" {
		t.Errorf("组归属错误: %s", group.OwnerUserID)
	}

	// 2. 组编码全局唯一
	_, err = svc.CreateGroup(ctx, "operator-1", &model.CreateGroupRequest{
		GroupCode: "editors",
		Name:      "重复",
	})
	if !system.IsValidationError(err) {
		t.Fatalf("重复组编码应返回校验错误: %v", err)
	}
}

func TestDeleteSystemGroupProtected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	for _, code := range []string{model.GroupCodeEveryone, model.GroupCodeAdmin} {
		group := env.mustGroupByCode(t, code)
		if err := svc.DeleteGroup(ctx, "operator-1", group.ID); !errors.Is(err, system.ErrSystemGroupProtected) {
			t.Errorf("系统组%s应受删除保护: %v", code, err)
		}
	}
}

func TestDeleteGroupCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	// 1. 准备:自定义组+成员+授权
	user := env.createUser(t, "alice")
	group := env.createGroupWithMember(t, "readers", user.ID)
	instance := env.createBoardInstance(t, "综合讨论", "general")
	env.grantPermission(t, group.ID, instance.ID, "board", "POST_READ")

	// 2. 删除组
	if err := svc.DeleteGroup(ctx, "operator-1", group.ID); err != nil {
		t.Fatalf("删除组失败: %v", err)
	}

	// 3. 成员关系与授权级联清理
	isMember, err := env.groupRepo.IsMember(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("检查成员关系失败: %v", err)
	}
	if isMember {
		t.Errorf("组成员关系应已删除")
	}

	def := env.mustDefinition(t, "board", "POST_READ")
	exists, err := env.permissionRepo.GrantExists(ctx, group.ID, instance.ID, def.ID)
	if err != nil {
		t.Fatalf("检查授权失败: %v", err)
	}
	if exists {
		t.Errorf("组的授权应已删除")
	}

	// 4. 不存在的组
	if err := svc.DeleteGroup(ctx, "operator-1", group.ID); !errors.Is(err, system.ErrGroupNotFound) {
		t.Errorf("重复删除应返回NotFound: %v", err)
	}
}

func TestAddMemberIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	user := env.createUser(t, "alice")
	group := env.createGroupWithMember(t, "readers", "")

	// 1. 首次添加
	if err := svc.AddMember(ctx, "operator-1", group.ID, user.ID); err != nil {
		t.Fatalf("添加成员失败: %v", err)
	}

	// 2. 重复添加幂等成功
	if err := svc.AddMember(ctx, "operator-1", group.ID, user.ID); err != nil {
		t.Fatalf("重复添加应幂等成功: %v", err)
	}

	members, err := svc.GetMemberUserIDs(ctx, group.ID)
	if err != nil {
		t.Fatalf("查询成员失败: %v", err)
	}
	if len(members) != 1 || members[0] != user.ID {
		t.Errorf("成员列表错误: %v", members)
	}
}

func TestAddMemberUnknownTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	user := env.createUser(t, "alice")
	group := env.createGroupWithMember(t, "readers", "")

	if err := svc.AddMember(ctx, "operator-1", "no-such-group", user.ID); !errors.Is(err, system.ErrGroupNotFound) {
		t.Errorf("未知组应返回GroupNotFound: %v", err)
	}
	if err := svc.AddMember(ctx, "operator-1", group.ID, "no-such-user"); !errors.Is(err, system.ErrUserNotFound) {
		t.Errorf("未知用户应返回UserNotFound: %v", err)
	}
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	user := env.createUser(t, "alice")
	group := env.createGroupWithMember(t, "readers", user.ID)

	if err := svc.RemoveMember(ctx, "operator-1", group.ID, user.ID); err != nil {
		t.Fatalf("移除成员失败: %v", err)
	}

	// 移除不存在的成员幂等成功
	if err := svc.RemoveMember(ctx, "operator-1", group.ID, user.ID); err != nil {
		t.Fatalf("重复移除应幂等成功: %v", err)
	}
}

func TestGrantAndRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGrantService(env)

	group := env.createGroupWithMember(t, "readers", "")
	instance := env.createBoardInstance(t, "综合讨论", "general")
	def := env.mustDefinition(t, "board", "POST_READ")

	req := &model.GrantRequest{
		GroupID:      group.ID,
		InstanceID:   instance.ID,
		PermissionID: def.ID,
	}

	// 1. 授予
	if err := svc.Grant(ctx, "operator-1", req); err != nil {
		t.Fatalf("授权失败: %v", err)
	}

	// 2. 重复授予幂等成功,不产生重复记录
	if err := svc.Grant(ctx, "operator-1", req); err != nil {
		t.Fatalf("重复授权应幂等成功: %v", err)
	}
	grants, err := env.permissionRepo.GetGrantsByGroupAndInstance(ctx, group.ID, instance.ID)
	if err != nil {
		t.Fatalf("查询授权失败: %v", err)
	}
	if len(grants) != 1 {
		t.Errorf("授权记录数量错误: %d", len(grants))
	}

	// 3. 撤销
	if err := svc.Revoke(ctx, "operator-1", req); err != nil {
		t.Fatalf("撤销失败: %v", err)
	}

	// 4. 撤销不存在的授权幂等成功
	if err := svc.Revoke(ctx, "operator-1", req); err != nil {
		t.Fatalf("重复撤销应幂等成功: %v", err)
	}

	defs, err := svc.ListGrants(ctx, group.ID, instance.ID)
	if err != nil {
		t.Fatalf("列出授权失败: %v", err)
	}
	if len(defs) != 0 {
		t.Errorf("撤销后授权列表应为空: %v", defs)
	}
}

func TestGrantCrossModuleRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGrantService(env)

	// page模块的权限定义不能授予在board实例上
	group := env.createGroupWithMember(t, "editors", "")
	instance := env.createBoardInstance(t, "综合讨论", "general")
	pageEdit := env.mustDefinition(t, "page", "PAGE_EDIT")

	err := svc.Grant(ctx, "operator-1", &model.GrantRequest{
		GroupID:      group.ID,
		InstanceID:   instance.ID,
		PermissionID: pageEdit.ID,
	})
	if !errors.Is(err, system.ErrCrossModuleGrant) {
		t.Fatalf("跨模块授权应拒绝: %v", err)
	}
}

func TestGrantUnknownTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGrantService(env)

	group := env.createGroupWithMember(t, "readers", "")
	instance := env.createBoardInstance(t, "综合讨论", "general")
	def := env.mustDefinition(t, "board", "POST_READ")

	cases := []struct {
		name string
		req  *model.GrantRequest
		want error
	}{
		{"未知组", &model.GrantRequest{GroupID: "x", InstanceID: instance.ID, PermissionID: def.ID}, system.ErrGroupNotFound},
		{"未知实例", &model.GrantRequest{GroupID: group.ID, InstanceID: "x", PermissionID: def.ID}, system.ErrInstanceNotFound},
		{"未知权限定义", &model.GrantRequest{GroupID: group.ID, InstanceID: instance.ID, PermissionID: "x"}, system.ErrPermissionDefNotFound},
	}
	for _, tc := range cases {
		if err := svc.Grant(ctx, "operator-1", tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestUpdateGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestGroupService(env)

	group := env.createGroupWithMember(t, "readers", "")

	updated, err := svc.UpdateGroup(ctx, "operator-1", group.ID, &model.UpdateGroupRequest{Name: "阅读组"})
	if err != nil {
		t.Fatalf("更新组失败: %v", err)
	}
	if updated.Name != "阅读组" {
		t.Errorf("组名称未更新: %s", updated.Name)
	}
	// 组编码不可变更
	if updated.GroupCode != "readers" {
		t.Errorf("组编码不应变更: %s", updated.GroupCode)
	}
}
