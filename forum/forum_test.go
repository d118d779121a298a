package forum

import (
	"reflect"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"aicportal/models"
)

func TestToggleLikeMirrorsSet(t *testing.T) {
	p := models.Post{LikesBy: []string{}}

	users := []string{"u1", "u2", "u3", "u1", "u2", "u1"}
	for _, u := range users {
		ToggleLike(&p, u)
		if int(p.Likes) != len(p.LikesBy) {
			t.Fatalf("likes counter %d out of sync with set size %d", p.Likes, len(p.LikesBy))
		}
	}

	// u1 toggled three times: liked. u2 twice: not liked. u3 once: liked.
	if !HasLiked(&p, "u1") || HasLiked(&p, "u2") || !HasLiked(&p, "u3") {
		t.Errorf("unexpected like membership: %v", p.LikesBy)
	}
	if p.Likes != 2 {
		t.Errorf("want 2 likes, got %d", p.Likes)
	}
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	p := models.Post{Likes: 1, LikesBy: []string{"other"}}

	ToggleLike(&p, "u1")
	ToggleLike(&p, "u1")

	if p.Likes != 1 || !reflect.DeepEqual(p.LikesBy, []string{"other"}) {
		t.Errorf("double toggle changed state: likes=%d likesBy=%v", p.Likes, p.LikesBy)
	}
}

func TestToggleLikeNeverNegative(t *testing.T) {
	// Counter drifted below the set; unlike must not push it negative.
	p := models.Post{Likes: 0, LikesBy: []string{"u1"}}
	ToggleLike(&p, "u1")
	if p.Likes != 0 {
		t.Errorf("likes went negative: %d", p.Likes)
	}
}

func TestToggleLikeNoDuplicates(t *testing.T) {
	p := models.Post{}
	ToggleLike(&p, "u1")
	// Simulates a stale client re-sending a like after losing the ack.
	p.LikesBy = append(p.LikesBy, "u1")
	p.Likes++
	ToggleLike(&p, "u1")
	for _, id := range p.LikesBy {
		if id == "u1" {
			t.Errorf("duplicate membership survived unlike: %v", p.LikesBy)
		}
	}
}

func TestFilterByCategoryExact(t *testing.T) {
	posts := []models.Post{
		{Title: "a", Category: CategoryJobs},
		{Title: "b", Category: CategoryStudents},
		{Title: "c"}, // uncategorized, belongs to rules
		{Title: "d", Category: CategoryRules},
		{Title: "e", Category: CategoryJobs},
	}

	jobs := FilterByCategory(posts, CategoryJobs)
	if len(jobs) != 2 || jobs[0].Title != "a" || jobs[1].Title != "e" {
		t.Errorf("jobs filter wrong: %+v", jobs)
	}

	rules := FilterByCategory(posts, CategoryRules)
	if len(rules) != 2 || rules[0].Title != "c" || rules[1].Title != "d" {
		t.Errorf("rules filter must include uncategorized posts: %+v", rules)
	}

	if got := FilterByCategory(posts, CategoryData); len(got) != 0 {
		t.Errorf("empty category must yield empty slice, got %+v", got)
	}
}

func TestSortPostsPinnedFirstThenNewest(t *testing.T) {
	posts := []models.Post{
		{Title: "unpinned-new", CreatedAt: 300},
		{Title: "pinned-old", CreatedAt: 100, IsPinned: true},
		{Title: "unpinned-old", CreatedAt: 200},
		{Title: "pinned-new", CreatedAt: 250, IsPinned: true},
	}

	SortPosts(posts)

	want := []string{"pinned-new", "pinned-old", "unpinned-new", "unpinned-old"}
	for i, w := range want {
		if posts[i].Title != w {
			t.Fatalf("position %d: want %s, got %s", i, w, posts[i].Title)
		}
	}
}

func TestEditReplyTouchesContentOnly(t *testing.T) {
	replies := []models.Reply{
		{ID: "r1", AuthorID: "u1", Date: "2026-01-01T00:00:00Z", Content: "before"},
		{ID: "r2", AuthorID: "u2", Date: "2026-01-02T00:00:00Z", Content: "other"},
	}

	out, ok := EditReply(replies, "r1", "after")
	if !ok {
		t.Fatal("reply r1 not found")
	}
	if out[0].Content != "after" {
		t.Errorf("content not replaced: %q", out[0].Content)
	}
	if out[0].ID != "r1" || out[0].AuthorID != "u1" || out[0].Date != "2026-01-01T00:00:00Z" {
		t.Errorf("edit changed id/author/date: %+v", out[0])
	}
	if !reflect.DeepEqual(out[1], replies[1]) {
		t.Errorf("edit leaked onto sibling reply: %+v", out[1])
	}
	if replies[0].Content != "before" {
		t.Error("EditReply mutated its input")
	}

	if _, ok := EditReply(replies, "missing", "x"); ok {
		t.Error("editing a missing reply must report failure")
	}
}

func TestRemoveReply(t *testing.T) {
	replies := []models.Reply{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}

	out, ok := RemoveReply(replies, "r2")
	if !ok || len(out) != 2 || out[0].ID != "r1" || out[1].ID != "r3" {
		t.Errorf("remove failed: ok=%v out=%+v", ok, out)
	}

	if _, ok := RemoveReply(replies, "nope"); ok {
		t.Error("removing a missing reply must report failure")
	}
}

func TestAuthorizationPredicates(t *testing.T) {
	authorID := primitive.NewObjectID()
	author := &models.User{ID: authorID}
	admin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true}
	stranger := &models.User{ID: primitive.NewObjectID()}

	post := &models.Post{AuthorID: authorID.Hex()}
	if !CanModifyPost(author, post) || !CanModifyPost(admin, post) {
		t.Error("author and admin must be able to modify a post")
	}
	if CanModifyPost(stranger, post) {
		t.Error("non-author non-admin must be rejected")
	}

	reply := models.Reply{AuthorID: authorID.Hex()}
	if !CanModifyReply(author, reply) || !CanModifyReply(admin, reply) {
		t.Error("reply author and admin must be able to modify a reply")
	}
	if CanModifyReply(stranger, reply) {
		t.Error("non-author non-admin must not modify a reply")
	}

	if !CanPin(admin) {
		t.Error("admin must be able to pin")
	}
	if CanPin(author) || CanPin(stranger) {
		t.Error("pinning must be rejected for everyone but admins, author included")
	}
}

func TestStudentCategoryRestrictions(t *testing.T) {
	for _, c := range []string{CategoryJobs, CategoryBusiness, CategoryData} {
		if CanView(models.RoleStudent, c) {
			t.Errorf("student must not view %s", c)
		}
		if !CanView(models.RoleEngineer, c) {
			t.Errorf("engineer must view %s", c)
		}
	}

	visible := VisibleCategories(models.RoleStudent)
	for _, c := range visible {
		if IsRestricted(c) {
			t.Errorf("restricted category %s listed for student", c)
		}
	}

	if got := CreationCategory(models.RoleStudent, CategoryJobs); got != CategoryStudents {
		t.Errorf("student creation must be forced to students board, got %s", got)
	}
	if got := CreationCategory(models.RoleEngineer, ""); got != CategoryRules {
		t.Errorf("uncategorized engineer post must land on rules, got %s", got)
	}
}

func TestPresentationContent(t *testing.T) {
	got := PresentationContent("Ana Pérez", "Constructor Civil", "10 años en obras", "Revit, AutoCAD", "Aportar")

	for _, want := range []string{
		"Hola Colegas,",
		"**Nombre:** Ana Pérez",
		"**Especialidad:** Constructor Civil",
		"**Mi Background:** 10 años en obras",
		"**Herramientas que domino:**\nRevit, AutoCAD",
		"**Objetivo en el foro:** Aportar",
		"Un saludo.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("assembled content missing %q:\n%s", want, got)
		}
	}

	if PresentationTitle("Ana Pérez") != "Presentación: Ana Pérez" {
		t.Errorf("unexpected presentation title")
	}
}

// Mirrors the end to end flow: create a post, like and unlike it, reply
// as a second member, then remove the reply as an admin.
func TestAggregateLifecycle(t *testing.T) {
	posts := []models.Post{}

	created := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     "Prueba",
		Content:   "Hola",
		Category:  CategoryStudents,
		CreatedAt: 1000,
		Likes:     0,
		LikesBy:   []string{},
		Replies:   []models.Reply{},
	}
	posts = append(posts, created)

	listed := FilterByCategory(posts, CategoryStudents)
	if len(listed) != 1 {
		t.Fatalf("want exactly one post on the students board, got %d", len(listed))
	}
	if listed[0].Likes != 0 || len(listed[0].Replies) != 0 {
		t.Fatalf("fresh post must start with no likes and no replies: %+v", listed[0])
	}

	p := &posts[0]
	if !ToggleLike(p, "U1") {
		t.Fatal("first toggle must like")
	}
	if p.Likes != 1 || !reflect.DeepEqual(p.LikesBy, []string{"U1"}) {
		t.Fatalf("after like: likes=%d likesBy=%v", p.Likes, p.LikesBy)
	}

	if ToggleLike(p, "U1") {
		t.Fatal("second toggle must unlike")
	}
	if p.Likes != 0 || len(p.LikesBy) != 0 {
		t.Fatalf("after unlike: likes=%d likesBy=%v", p.Likes, p.LikesBy)
	}

	AppendReply(p, models.Reply{ID: "r1", AuthorID: "U2", Content: "Respuesta", Date: "2026-08-31T12:00:00Z"})
	if len(p.Replies) != 1 || p.Replies[0].AuthorID != "U2" {
		t.Fatalf("reply not appended: %+v", p.Replies)
	}

	admin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true}
	if !CanModifyReply(admin, p.Replies[0]) {
		t.Fatal("admin must be allowed to delete any reply")
	}
	remaining, ok := RemoveReply(p.Replies, "r1")
	if !ok || len(remaining) != 0 {
		t.Fatalf("reply not removed: %+v", remaining)
	}
	p.Replies = remaining
}
