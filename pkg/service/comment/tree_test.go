package comment

import (
	"testing"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
)

func makeComment(id uint, parentID *uint) *model.Comment {
	return &model.Comment{ID: id, ParentID: parentID}
}

func pid(v uint) *uint { return &v }

func TestBuildTree_平铺列表按父子关系组装(t *testing.T) {
	flat := []*model.Comment{
		makeComment(1, nil),
		makeComment(2, pid(1)),
		makeComment(3, nil),
		makeComment(4, pid(2)),
		makeComment(5, pid(3)),
	}

	tree := BuildTree(flat)

	if len(tree) != 2 {
		t.Fatalf("期望 2 条顶级评论, 得到 %d", len(tree))
	}
	// 顶级顺序保持输入顺序
	if tree[0].ID != 1 || tree[1].ID != 3 {
		t.Fatalf("顶级顺序应保持输入顺序: %d, %d", tree[0].ID, tree[1].ID)
	}
	// 深层回复挂在各自父节点下
	if len(tree[0].Replies) != 1 || tree[0].Replies[0].ID != 2 {
		t.Fatal("回复未挂到父评论下")
	}
	if len(tree[0].Replies[0].Replies) != 1 || tree[0].Replies[0].Replies[0].ID != 4 {
		t.Fatal("回复的回复未挂到对应节点下")
	}
	// 节点总数不变
	if got := CountNodes(tree); got != len(flat) {
		t.Fatalf("组装前后节点数应一致: 期望 %d, 得到 %d", len(flat), got)
	}
}

func TestBuildTree_孤儿评论提升为顶级(t *testing.T) {
	flat := []*model.Comment{
		makeComment(1, nil),
		// 父评论 99 不在集合里（可能已被删除）
		makeComment(2, pid(99)),
	}

	tree := BuildTree(flat)

	if len(tree) != 2 {
		t.Fatalf("孤儿评论应提升为顶级而不是丢弃, 顶级数 %d", len(tree))
	}
	if tree[1].ID != 2 {
		t.Fatal("孤儿评论应按原始顺序出现在顶级")
	}
}

func TestBuildTree_信任已嵌套的形状(t *testing.T) {
	nested := []*model.Comment{
		{ID: 1, Replies: []*model.Comment{{ID: 2, ParentID: pid(1)}}},
		{ID: 3},
	}

	tree := BuildTree(nested)

	if len(tree) != 2 || len(tree[0].Replies) != 1 {
		t.Fatal("已嵌套的列表应原样返回")
	}
}

func TestBuildTree_空输入(t *testing.T) {
	if tree := BuildTree(nil); tree == nil || len(tree) != 0 {
		t.Fatal("空输入应返回空切片而不是 nil")
	}
}

func TestFlattenReplies_先序展开全部层级(t *testing.T) {
	top := &model.Comment{ID: 1, Replies: []*model.Comment{
		{ID: 2, Replies: []*model.Comment{
			{ID: 4},
			{ID: 5},
		}},
		{ID: 3},
	}}

	flat := FlattenReplies(top)

	want := []uint{2, 4, 5, 3}
	if len(flat) != len(want) {
		t.Fatalf("期望 %d 条回复, 得到 %d", len(want), len(flat))
	}
	for i, id := range want {
		if flat[i].ID != id {
			t.Fatalf("先序第 %d 位期望 %d, 得到 %d", i, id, flat[i].ID)
		}
	}
}
