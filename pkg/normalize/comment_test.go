package normalize

import "testing"

func TestCommentFromRecord_两种命名风格等价(t *testing.T) {
	snake := Decode([]byte(`{
		"id": 1, "article_id": 9, "parent_id": null,
		"nickname": "鱼鱼", "avatar_url": "https://a/1.png",
		"content": "沙发", "like_count": 3, "is_liked": true, "is_author": false,
		"created_at": "2026-03-01T08:00:00Z"
	}`))
	camel := Decode([]byte(`{
		"id": 1, "articleId": 9, "parentId": null,
		"nickname": "鱼鱼", "avatarUrl": "https://a/1.png",
		"content": "沙发", "likeCount": 3, "isLiked": true, "isAuthor": false,
		"createdAt": "2026-03-01T08:00:00Z"
	}`))

	a := CommentFromRecord(snake)
	b := CommentFromRecord(camel)

	if a.ArticleID != b.ArticleID || a.LikeCount != b.LikeCount || a.IsLiked != b.IsLiked {
		t.Fatalf("两种命名风格应收敛出同样的模型: %+v vs %+v", a, b)
	}
	if a.LikeCount != 3 || !a.IsLiked || a.Nickname != "鱼鱼" {
		t.Fatalf("字段收敛结果错误: %+v", a)
	}
	if a.ParentID != nil {
		t.Fatal("null parent_id 应收敛为 nil")
	}
}

func TestCommentFromRecord_递归收敛嵌套回复(t *testing.T) {
	r := Decode([]byte(`{
		"id": 1, "content": "顶级",
		"replies": [
			{"id": 2, "parent_id": 1, "content": "一层回复",
			 "replies": [{"id": 3, "parent_id": 2, "content": "二层回复"}]}
		]
	}`))

	c := CommentFromRecord(r)
	if len(c.Replies) != 1 {
		t.Fatalf("期望 1 条直接回复, 得到 %d", len(c.Replies))
	}
	if len(c.Replies[0].Replies) != 1 || c.Replies[0].Replies[0].ID != 3 {
		t.Fatal("二层回复未被递归收敛")
	}
}

func TestCommentsFromRecords_跳过nil记录(t *testing.T) {
	out := CommentsFromRecords([]Record{nil, {"id": float64(1)}})
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("nil 记录应被跳过: %v", out)
	}
}
