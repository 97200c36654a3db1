/**
 * 业务层测试:菜单树构建
 * @author: sun977
 * @date: 2025.11.20
 * @description: 可见树裁剪规则与管理结构树的测试
 */
package cms

import (
	"context"
	"testing"

	"neocms/internal/model"
)

func newTestMenuBuilder(env *testEnv) *MenuTreeBuilder {
	return NewMenuTreeBuilder(env.registry, env.menuRepo, env.instanceRepo, env.aggregator)
}

func TestBuildVisibleTreeModuleNode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 1. 两个board实例,只有general对everyone开放
	general := env.createBoardInstance(t, "综合讨论", "general")
	offtopic := env.createBoardInstance(t, "闲聊", "offtopic")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, general.ID, "board", "BOARD_ACCESS")
	env.grantPermission(t, everyone.ID, general.ID, "board", "POST_READ")

	env.createMenuNode(t, &model.MenuNode{
		Name: "综合讨论", MenuType: model.MenuTypeModule,
		ModuleInstanceID: &general.ID, SortOrder: 1, IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "闲聊", MenuType: model.MenuTypeModule,
		ModuleInstanceID: &offtopic.ID, SortOrder: 2, IsVisible: true,
	})

	// 2. 匿名视角只能看到有基线权限的节点
	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("可见节点数量错误: %d", len(views))
	}

	// 3. MULTI模块URL为/{moduleSlug}/{instanceSlug},并附带resource→actions映射
	node := views[0]
	if node.URL != "/boards/general" {
		t.Errorf("MODULE节点URL错误: %s", node.URL)
	}
	if len(node.Permissions["board"]) != 1 || node.Permissions["board"][0] != "access" {
		t.Errorf("board资源动作错误: %v", node.Permissions)
	}
	if len(node.Permissions["post"]) != 1 || node.Permissions["post"][0] != "read" {
		t.Errorf("post资源动作错误: %v", node.Permissions)
	}
}

func TestBuildVisibleTreeSingleModuleURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// SINGLE模块URL只有模块slug一段
	page := env.mustPageInstance(t)
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, page.ID, "page", "PAGE_ACCESS")

	env.createMenuNode(t, &model.MenuNode{
		Name: "关于我们", MenuType: model.MenuTypeModule,
		ModuleInstanceID: &page.ID, IsVisible: true,
	})

	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 1 || views[0].URL != "/pages" {
		t.Fatalf("SINGLE模块URL错误: %+v", views)
	}
}

func TestBuildVisibleTreeInvisibleKillsSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 不可见节点连同整棵子树裁掉,即使子节点本身可见
	parent := env.createMenuNode(t, &model.MenuNode{
		Name: "隐藏分组", MenuType: model.MenuTypeSeparator, IsVisible: false,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "子分隔符", ParentID: &parent.ID,
		MenuType: model.MenuTypeSeparator, IsVisible: true,
	})

	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("不可见子树应整体裁掉: %+v", views)
	}
}

func TestBuildVisibleTreeLinkRequiredRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	env.createMenuNode(t, &model.MenuNode{
		Name: "管理后台", MenuType: model.MenuTypeLink,
		CustomURL: "/admin", RequiredRole: "admin", IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "帮助中心", MenuType: model.MenuTypeLink,
		CustomURL: "/help", IsVisible: true,
	})

	// 1. 未持有admin角色:只剩无角色要求的链接
	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 1 || views[0].Name != "帮助中心" {
		t.Fatalf("角色裁剪结果错误: %+v", views)
	}
	if views[0].URL != "/help" {
		t.Errorf("LINK节点URL错误: %s", views[0].URL)
	}

	// 2. 持有admin角色:两个链接都可见
	user := env.createUser(t, "admin-user")
	views, err = builder.BuildVisibleTree(ctx, &user.ID, []string{"admin"})
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("admin角色应看到两个链接: %d", len(views))
	}
}

func TestBuildVisibleTreeSeparatorKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	env.createMenuNode(t, &model.MenuNode{
		Name: "----", MenuType: model.MenuTypeSeparator, IsVisible: true,
	})

	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("分隔符应原样保留: %d", len(views))
	}
	if views[0].MenuType != model.MenuTypeSeparator || views[0].URL != "" {
		t.Errorf("分隔符不应承载URL: %+v", views[0])
	}
}

func TestBuildVisibleTreeDanglingInstanceSkipped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 引用不存在实例的MODULE节点跳过,不让整棵树构建失败
	env.createMenuNode(t, &model.MenuNode{
		Name: "悬空引用", MenuType: model.MenuTypeModule,
		ModuleInstanceID: strPtr("00000000-0000-4000-8000-deadbeef0000"), IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "正常分隔符", MenuType: model.MenuTypeSeparator, IsVisible: true,
	})

	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("悬空引用不应导致构建失败: %v", err)
	}
	if len(views) != 1 || views[0].Name != "正常分隔符" {
		t.Fatalf("悬空引用节点应被跳过: %+v", views)
	}
}

func TestBuildVisibleTreeSiblingOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 兄弟节点按sort_order升序
	env.createMenuNode(t, &model.MenuNode{Name: "第三", MenuType: model.MenuTypeSeparator, SortOrder: 30, IsVisible: true})
	env.createMenuNode(t, &model.MenuNode{Name: "第一", MenuType: model.MenuTypeSeparator, SortOrder: 10, IsVisible: true})
	env.createMenuNode(t, &model.MenuNode{Name: "第二", MenuType: model.MenuTypeSeparator, SortOrder: 20, IsVisible: true})

	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("节点数量错误: %d", len(views))
	}
	for i, want := range []string{"第一", "第二", "第三"} {
		if views[i].Name != want {
			t.Errorf("第%d个节点错误: got %s, want %s", i, views[i].Name, want)
		}
	}
}

func TestBuildVisibleTreeNestedChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 父分隔符下挂一个有权限的MODULE子节点
	general := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	env.grantPermission(t, everyone.ID, general.ID, "board", "BOARD_ACCESS")

	parent := env.createMenuNode(t, &model.MenuNode{
		Name: "社区", MenuType: model.MenuTypeSeparator, IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "综合讨论", ParentID: &parent.ID,
		MenuType: model.MenuTypeModule, ModuleInstanceID: &general.ID, IsVisible: true,
	})

	views, err := builder.BuildVisibleTree(ctx, nil, nil)
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	if len(views) != 1 || len(views[0].Children) != 1 {
		t.Fatalf("树结构错误: %+v", views)
	}
	if views[0].Children[0].URL != "/boards/general" {
		t.Errorf("子节点URL错误: %s", views[0].Children[0].URL)
	}
}

// flattenMenuNames 先序遍历收集树中全部节点名称
func flattenMenuNames(views []*model.MenuView) []string {
	var names []string
	for _, view := range views {
		names = append(names, view.Name)
		names = append(names, flattenMenuNames(view.Children)...)
	}
	return names
}

func TestBuildVisibleTreeMatchesAdminTreeForFullGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 1. 全量授权:everyone组持有board实例的全部权限,调用者持有链接要求的角色
	general := env.createBoardInstance(t, "综合讨论", "general")
	everyone := env.mustGroupByCode(t, model.GroupCodeEveryone)
	for _, name := range []string{"BOARD_ACCESS", "BOARD_MANAGE", "POST_READ", "POST_WRITE", "POST_COMMENT"} {
		env.grantPermission(t, everyone.ID, general.ID, "board", name)
	}
	user := env.createUser(t, "alice")

	// 2. 混合树:可见分组下挂MODULE/LINK子节点,旁边有一棵不可见子树
	root := env.createMenuNode(t, &model.MenuNode{
		Name: "导航", MenuType: model.MenuTypeSeparator, SortOrder: 1, IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "综合讨论", ParentID: &root.ID,
		MenuType: model.MenuTypeModule, ModuleInstanceID: &general.ID, SortOrder: 1, IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "帮助中心", ParentID: &root.ID,
		MenuType: model.MenuTypeLink, CustomURL: "/help", RequiredRole: "member", SortOrder: 2, IsVisible: true,
	})
	hidden := env.createMenuNode(t, &model.MenuNode{
		Name: "停用分组", MenuType: model.MenuTypeSeparator, SortOrder: 2, IsVisible: false,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "停用链接", ParentID: &hidden.ID,
		MenuType: model.MenuTypeLink, CustomURL: "/legacy", IsVisible: true,
	})

	// 3. 全量授权调用者的可见树 == 管理结构树去掉不可见子树
	visible, err := builder.BuildVisibleTree(ctx, &user.ID, []string{"member"})
	if err != nil {
		t.Fatalf("构建可见树失败: %v", err)
	}
	admin, err := builder.BuildAdminTree(ctx)
	if err != nil {
		t.Fatalf("构建管理结构树失败: %v", err)
	}

	hiddenSubtree := map[string]struct{}{"停用分组": {}, "停用链接": {}}
	var want []string
	for _, name := range flattenMenuNames(admin) {
		if _, ok := hiddenSubtree[name]; ok {
			continue
		}
		want = append(want, name)
	}

	got := flattenMenuNames(visible)
	if len(got) != len(want) {
		t.Fatalf("可见树节点集合错误: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("第%d个节点错误: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBuildAdminTreeUnpruned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := newTestMenuBuilder(env)

	// 不可见节点与无授权的MODULE节点在管理结构树中原样保留
	general := env.createBoardInstance(t, "综合讨论", "general")
	env.createMenuNode(t, &model.MenuNode{
		Name: "隐藏节点", MenuType: model.MenuTypeSeparator, SortOrder: 1, IsVisible: false,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "无授权讨论板", MenuType: model.MenuTypeModule,
		ModuleInstanceID: &general.ID, SortOrder: 2, IsVisible: true,
	})
	env.createMenuNode(t, &model.MenuNode{
		Name: "悬空引用", MenuType: model.MenuTypeModule,
		ModuleInstanceID: strPtr("00000000-0000-4000-8000-deadbeef0000"), SortOrder: 3, IsVisible: true,
	})

	views, err := builder.BuildAdminTree(ctx)
	if err != nil {
		t.Fatalf("构建管理结构树失败: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("管理结构树不应裁剪节点: %d", len(views))
	}

	// URL能合成则合成,悬空引用保留但无URL
	if views[1].URL != "/boards/general" {
		t.Errorf("管理树MODULE节点URL错误: %s", views[1].URL)
	}
	if views[2].URL != "" {
		t.Errorf("悬空引用节点不应合成URL: %s", views[2].URL)
	}
}
