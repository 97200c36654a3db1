/**
 * 业务层测试:权限聚合
 * @author: sun977
 * @date: 2025.11.20
 * @description: 组授予并集语义与匿名调用者的权限聚合测试
 */
package cms

import (
	"context"
	"sort"
	"testing"

	"neocms/internal/model"
)

func TestGrantedPermissionsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 1. 准备数据:everyone组持有BOARD_ACCESS,自定义组持有POST_READ
	instance := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, instance.ID, "board", "BOARD_ACCESS")

	user := env.createUser(t, "alice")
	readers := env.createGroupWithMember(t, "readers", user.ID)
	env.grantPermission(t, readers.ID, instance.ID, "board", "POST_READ")

	// 2. 匿名调用者只参与everyone组
	granted, err := env.aggregator.GrantedPermissions(ctx, nil, instance.ID)
	if err != nil {
		t.Fatalf("匿名权限聚合失败: %v", err)
	}
	if len(granted) != 1 {
		t.Fatalf("匿名权限数量错误: %d", len(granted))
	}
	if _, ok := granted["BOARD_ACCESS"]; !ok {
		t.Errorf("匿名调用者应持有everyone组的BOARD_ACCESS")
	}
	if _, ok := granted["POST_READ"]; ok {
		t.Errorf("匿名调用者不应持有自定义组的POST_READ")
	}
}

func TestGrantedPermissionsUnion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 1. everyone组授予BOARD_ACCESS,自定义组授予POST_READ和POST_WRITE
	instance := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, instance.ID, "board", "BOARD_ACCESS")

	user := env.createUser(t, "alice")
	writers := env.createGroupWithMember(t, "writers", user.ID)
	env.grantPermission(t, writers.ID, instance.ID, "board", "POST_READ")
	env.grantPermission(t, writers.ID, instance.ID, "board", "POST_WRITE")

	// 2. 登录用户持有everyone隐式成员资格与显式组的并集
	granted, err := env.aggregator.GrantedPermissions(ctx, &user.ID, instance.ID)
	if err != nil {
		t.Fatalf("权限聚合失败: %v", err)
	}
	for _, name := range []string{"BOARD_ACCESS", "POST_READ", "POST_WRITE"} {
		if _, ok := granted[name]; !ok {
			t.Errorf("并集中缺少权限%s", name)
		}
	}
	if len(granted) != 3 {
		t.Errorf("并集权限数量错误: %d", len(granted))
	}
}

func TestGrantedPermissionsExplicitEveryoneMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 显式加入everyone组的用户不应重复计入,聚合结果与隐式成员一致
	instance := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, instance.ID, "board", "BOARD_ACCESS")

	user := env.createUser(t, "bob")
	if err := env.groupRepo.AddMember(ctx, everyone.ID, user.ID); err != nil {
		t.Fatalf("添加everyone成员失败: %v", err)
	}

	granted, err := env.aggregator.GrantedPermissions(ctx, &user.ID, instance.ID)
	if err != nil {
		t.Fatalf("权限聚合失败: %v", err)
	}
	if len(granted) != 1 {
		t.Errorf("显式everyone成员的权限数量错误: %d", len(granted))
	}
}

func TestGrantedPermissionsScopedToInstance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 授权绑定到具体实例,同模块的其他实例不受影响
	general := env.createBoardInstance(t, "综合讨论", "general")
	offtopic := env.createBoardInstance(t, "闲聊", "offtopic")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, general.ID, "board", "BOARD_ACCESS")

	granted, err := env.aggregator.GrantedPermissions(ctx, nil, offtopic.ID)
	if err != nil {
		t.Fatalf("权限聚合失败: %v", err)
	}
	if len(granted) != 0 {
		t.Errorf("未授权实例上的权限集合应为空: %v", granted)
	}
}

func TestHasPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	instance := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, instance.ID, "board", "BOARD_ACCESS")

	ok, err := env.aggregator.HasPermission(ctx, nil, instance.ID, "BOARD_ACCESS")
	if err != nil {
		t.Fatalf("权限检查失败: %v", err)
	}
	if !ok {
		t.Errorf("BOARD_ACCESS应命中")
	}

	ok, err = env.aggregator.HasPermission(ctx, nil, instance.ID, "POST_WRITE")
	if err != nil {
		t.Fatalf("权限检查失败: %v", err)
	}
	if ok {
		t.Errorf("未授予的POST_WRITE不应命中")
	}
}

func TestGrantedDefinitionsSingleSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 1. 授予基线权限与资源权限
	instance := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, instance.ID, "board", "BOARD_ACCESS")
	env.grantPermission(t, everyone.ID, instance.ID, "board", "POST_READ")

	// 2. 一次读取同时覆盖基线门禁与按资源分组两种视图
	defs, err := env.aggregator.GrantedDefinitions(ctx, nil, instance.ID)
	if err != nil {
		t.Fatalf("权限定义聚合失败: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("权限定义数量错误: %d", len(defs))
	}

	names := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		names[def.Name] = struct{}{}
	}
	if _, ok := names["BOARD_ACCESS"]; !ok {
		t.Errorf("定义集合缺少基线权限BOARD_ACCESS")
	}
	if _, ok := names["POST_READ"]; !ok {
		t.Errorf("定义集合缺少POST_READ")
	}

	// 3. 撤销后重新读取,两种视图同步收敛
	env.revokePermission(t, everyone.ID, instance.ID, "board", "POST_READ")
	defs, err = env.aggregator.GrantedDefinitions(ctx, nil, instance.ID)
	if err != nil {
		t.Fatalf("权限定义聚合失败: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "BOARD_ACCESS" {
		t.Errorf("撤销后的定义集合错误: %v", defs)
	}
	byResource, err := env.aggregator.PermissionsByResource(ctx, nil, instance.ID)
	if err != nil {
		t.Fatalf("按资源聚合失败: %v", err)
	}
	if len(byResource) != 1 || len(byResource["board"]) != 1 {
		t.Errorf("撤销后的资源映射错误: %v", byResource)
	}
}

func TestPermissionsByResource(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 1. 授予跨两个资源的权限
	instance := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, instance.ID, "board", "BOARD_ACCESS")
	env.grantPermission(t, everyone.ID, instance.ID, "board", "POST_READ")
	env.grantPermission(t, everyone.ID, instance.ID, "board", "POST_WRITE")

	// 2. 按资源分组
	byResource, err := env.aggregator.PermissionsByResource(ctx, nil, instance.ID)
	if err != nil {
		t.Fatalf("按资源聚合失败: %v", err)
	}
	if len(byResource) != 2 {
		t.Fatalf("资源分组数量错误: %v", byResource)
	}

	boardActions := byResource["board"]
	if len(boardActions) != 1 || boardActions[0] != "access" {
		t.Errorf("board资源动作错误: %v", boardActions)
	}

	postActions := byResource["post"]
	sort.Strings(postActions)
	if len(postActions) != 2 || postActions[0] != "read" || postActions[1] != "write" {
		t.Errorf("post资源动作错误: %v", postActions)
	}
}
