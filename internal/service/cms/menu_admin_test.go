/**
 * 业务层测试:菜单节点管理
 * @author: sun977
 * @date: 2025.11.20
 * @description: 菜单节点类型条件字段校验/环路检测/子树删除的测试
 */
package cms

import (
	"context"
	"errors"
	"testing"

	"neocms/internal/model"
	"neocms/internal/model/system"
)

func newTestMenuService(env *testEnv) *MenuService {
	return NewMenuService(env.menuRepo, env.instanceRepo)
}

func TestCreateNodeModuleRequiresInstance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	// 1. MODULE节点缺少实例引用
	_, err := svc.CreateNode(ctx, "operator-1", &model.CreateMenuNodeRequest{
		Name:     "讨论板",
		MenuType: model.MenuTypeModule,
	})
	if !system.IsValidationError(err) {
		t.Fatalf("缺少实例引用应返回校验错误: %v", err)
	}

	// 2. 引用不存在的实例
	_, err = svc.CreateNode(ctx, "operator-1", &model.CreateMenuNodeRequest{
		Name:             "讨论板",
		MenuType:         model.MenuTypeModule,
		ModuleInstanceID: strPtr("no-such-instance"),
	})
	if !errors.Is(err, system.ErrInstanceNotFound) {
		t.Fatalf("引用不存在的实例应拒绝: %v", err)
	}
}

func TestCreateNodeLinkRequiresURL(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestMenuService(env)

	_, err := svc.CreateNode(context.Background(), "operator-1", &model.CreateMenuNodeRequest{
		Name:     "外部链接",
		MenuType: model.MenuTypeLink,
	})
	if !system.IsValidationError(err) {
		t.Fatalf("LINK节点缺少custom_url应返回校验错误: %v", err)
	}
}

func TestCreateNodeInvalidType(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestMenuService(env)

	_, err := svc.CreateNode(context.Background(), "operator-1", &model.CreateMenuNodeRequest{
		Name:     "异常节点",
		MenuType: "BANNER",
	})
	if !system.IsValidationError(err) {
		t.Fatalf("非法节点类型应返回校验错误: %v", err)
	}
}

func TestCreateNodeDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	// 1. 可见性缺省为true
	node, err := svc.CreateNode(ctx, "operator-1", &model.CreateMenuNodeRequest{
		Name:     "分隔符",
		MenuType: model.MenuTypeSeparator,
	})
	if err != nil {
		t.Fatalf("创建分隔符失败: %v", err)
	}
	if !node.IsVisible {
		t.Errorf("可见性应缺省为true")
	}
	if node.ParentID != nil {
		t.Errorf("缺省应为根节点")
	}

	// 2. 空字符串父节点ID归一化为根节点
	child, err := svc.CreateNode(ctx, "operator-1", &model.CreateMenuNodeRequest{
		Name:      "另一个分隔符",
		MenuType:  model.MenuTypeSeparator,
		ParentID:  strPtr(""),
		IsVisible: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("创建节点失败: %v", err)
	}
	if child.ParentID != nil {
		t.Errorf("空父节点ID应归一化为根节点")
	}
	if child.IsVisible {
		t.Errorf("显式不可见未生效")
	}
}

func TestCreateNodeUnknownParent(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestMenuService(env)

	_, err := svc.CreateNode(context.Background(), "operator-1", &model.CreateMenuNodeRequest{
		Name:     "孤儿节点",
		MenuType: model.MenuTypeSeparator,
		ParentID: strPtr("no-such-parent"),
	})
	if !errors.Is(err, system.ErrMenuNodeNotFound) {
		t.Fatalf("未知父节点应拒绝: %v", err)
	}
}

func TestUpdateNodeSelfParentCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	node := env.createMenuNode(t, &model.MenuNode{
		Name: "节点A", MenuType: model.MenuTypeSeparator, IsVisible: true,
	})

	_, err := svc.UpdateNode(ctx, "operator-1", node.ID, &model.UpdateMenuNodeRequest{
		ParentID: &node.ID,
	})
	if !errors.Is(err, system.ErrMenuCycle) {
		t.Fatalf("自挂父节点应返回环路错误: %v", err)
	}
}

func TestUpdateNodeDescendantCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	// 构造链 a → b → c,把a重挂到c下构成环路
	a := env.createMenuNode(t, &model.MenuNode{Name: "a", MenuType: model.MenuTypeSeparator, IsVisible: true})
	b := env.createMenuNode(t, &model.MenuNode{Name: "b", ParentID: &a.ID, MenuType: model.MenuTypeSeparator, IsVisible: true})
	c := env.createMenuNode(t, &model.MenuNode{Name: "c", ParentID: &b.ID, MenuType: model.MenuTypeSeparator, IsVisible: true})

	_, err := svc.UpdateNode(ctx, "operator-1", a.ID, &model.UpdateMenuNodeRequest{
		ParentID: &c.ID,
	})
	if !errors.Is(err, system.ErrMenuCycle) {
		t.Fatalf("重挂到自身后代应返回环路错误: %v", err)
	}
}

func TestUpdateNodeReparent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	// 合法重挂:c从b移到a下
	a := env.createMenuNode(t, &model.MenuNode{Name: "a", MenuType: model.MenuTypeSeparator, IsVisible: true})
	b := env.createMenuNode(t, &model.MenuNode{Name: "b", MenuType: model.MenuTypeSeparator, IsVisible: true})
	c := env.createMenuNode(t, &model.MenuNode{Name: "c", ParentID: &b.ID, MenuType: model.MenuTypeSeparator, IsVisible: true})

	updated, err := svc.UpdateNode(ctx, "operator-1", c.ID, &model.UpdateMenuNodeRequest{
		ParentID: &a.ID,
	})
	if err != nil {
		t.Fatalf("合法重挂失败: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != a.ID {
		t.Errorf("父节点未更新: %v", updated.ParentID)
	}

	// 提升为根节点
	updated, err = svc.UpdateNode(ctx, "operator-1", c.ID, &model.UpdateMenuNodeRequest{
		ParentID: strPtr(""),
	})
	if err != nil {
		t.Fatalf("提升为根节点失败: %v", err)
	}
	if updated.ParentID != nil {
		t.Errorf("节点应提升为根节点")
	}
}

func TestUpdateNodeLinkOnlyFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	separator := env.createMenuNode(t, &model.MenuNode{
		Name: "分隔符", MenuType: model.MenuTypeSeparator, IsVisible: true,
	})

	// custom_url与required_role只属于LINK节点
	_, err := svc.UpdateNode(ctx, "operator-1", separator.ID, &model.UpdateMenuNodeRequest{
		CustomURL: "/somewhere",
	})
	if !system.IsValidationError(err) {
		t.Fatalf("分隔符设置custom_url应返回校验错误: %v", err)
	}

	_, err = svc.UpdateNode(ctx, "operator-1", separator.ID, &model.UpdateMenuNodeRequest{
		RequiredRole: "admin",
	})
	if !system.IsValidationError(err) {
		t.Fatalf("分隔符设置required_role应返回校验错误: %v", err)
	}

	link := env.createMenuNode(t, &model.MenuNode{
		Name: "链接", MenuType: model.MenuTypeLink, CustomURL: "/old", IsVisible: true,
	})
	updated, err := svc.UpdateNode(ctx, "operator-1", link.ID, &model.UpdateMenuNodeRequest{
		CustomURL:    "/new",
		RequiredRole: "admin",
	})
	if err != nil {
		t.Fatalf("更新LINK节点失败: %v", err)
	}
	if updated.CustomURL != "/new" || updated.RequiredRole != "admin" {
		t.Errorf("LINK节点字段未更新: %+v", updated)
	}
}

func TestDeleteNodeSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestMenuService(env)

	// 1. 构造三层子树
	root := env.createMenuNode(t, &model.MenuNode{Name: "根", MenuType: model.MenuTypeSeparator, IsVisible: true})
	mid := env.createMenuNode(t, &model.MenuNode{Name: "中", ParentID: &root.ID, MenuType: model.MenuTypeSeparator, IsVisible: true})
	leaf := env.createMenuNode(t, &model.MenuNode{Name: "叶", ParentID: &mid.ID, MenuType: model.MenuTypeSeparator, IsVisible: true})
	other := env.createMenuNode(t, &model.MenuNode{Name: "无关节点", MenuType: model.MenuTypeSeparator, IsVisible: true})

	// 2. 删除根节点连带整棵子树
	if err := svc.DeleteNode(ctx, "operator-1", root.ID); err != nil {
		t.Fatalf("删除子树失败: %v", err)
	}

	for _, id := range []string{root.ID, mid.ID, leaf.ID} {
		node, err := env.menuRepo.GetNodeByID(ctx, id)
		if err != nil {
			t.Fatalf("查询节点失败: %v", err)
		}
		if node != nil {
			t.Errorf("子树节点%s应已删除", id)
		}
	}

	// 3. 无关节点不受影响
	survivor, err := env.menuRepo.GetNodeByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("查询节点失败: %v", err)
	}
	if survivor == nil {
		t.Errorf("无关节点不应被删除")
	}

	// 4. 删除不存在的节点
	if err := svc.DeleteNode(ctx, "operator-1", root.ID); !errors.Is(err, system.ErrMenuNodeNotFound) {
		t.Errorf("重复删除应返回NotFound: %v", err)
	}
}
