// Package forum holds the post/reply aggregate rules: category
// visibility, listing order, the like toggle protocol and the
// whole-array reply rewrite.
package forum

import (
	"fmt"
	"sort"
	"strings"

	"aicportal/models"
)

// Forum categories. A post with no category belongs to the rules board.
const (
	CategoryRules         = "rules"
	CategoryPresentations = "presentations"
	CategoryJobs          = "jobs"
	CategoryBusiness      = "business"
	CategoryData          = "data"
	CategoryStudents      = "students"
)

// PointsPerPost is the bonus awarded to the author of a new post.
const PointsPerPost = 10

var categories = []string{
	CategoryRules,
	CategoryPresentations,
	CategoryJobs,
	CategoryBusiness,
	CategoryData,
	CategoryStudents,
}

var restricted = map[string]bool{
	CategoryJobs:     true,
	CategoryBusiness: true,
	CategoryData:     true,
}

// Categories returns every board id in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

func IsValidCategory(category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsRestricted reports whether a category is off limits for students.
func IsRestricted(category string) bool {
	return restricted[Bucket(category)]
}

// Bucket maps a stored category to the board it renders under.
// Uncategorized posts land on the rules board.
func Bucket(category string) string {
	if category == "" {
		return CategoryRules
	}
	return category
}

// CanView applies the student restriction. Non-student roles see every
// category.
func CanView(role, category string) bool {
	if role != models.RoleStudent {
		return true
	}
	return !IsRestricted(category)
}

// VisibleCategories returns the boards a role may browse.
func VisibleCategories(role string) []string {
	if role != models.RoleStudent {
		return Categories()
	}
	var out []string
	for _, c := range categories {
		if !restricted[c] {
			out = append(out, c)
		}
	}
	return out
}

// CreationCategory forces student posts onto the student board.
func CreationCategory(role, requested string) string {
	if role == models.RoleStudent {
		return CategoryStudents
	}
	return Bucket(requested)
}

// FilterByCategory keeps the posts belonging to the given board. The
// listing endpoint expresses the same bucket rule as a Mongo filter,
// matching missing and empty categories for the rules board.
func FilterByCategory(posts []models.Post, category string) []models.Post {
	out := []models.Post{}
	for _, p := range posts {
		if Bucket(p.Category) == Bucket(category) {
			out = append(out, p)
		}
	}
	return out
}

// SortPosts orders pinned posts first, then newest first within each
// partition.
func SortPosts(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].IsPinned != posts[j].IsPinned {
			return posts[i].IsPinned
		}
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
}

// HasLiked reports membership in the post's like set. The set is the
// source of truth; the counter merely mirrors it.
func HasLiked(p *models.Post, userID string) bool {
	for _, id := range p.LikesBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike flips the (post, user) like state in place and returns the
// state after the toggle. The counter moves by exactly one and never
// goes negative, and the set never holds duplicates.
func ToggleLike(p *models.Post, userID string) bool {
	if HasLiked(p, userID) {
		kept := p.LikesBy[:0]
		for _, id := range p.LikesBy {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.LikesBy = kept
		if p.Likes > 0 {
			p.Likes--
		}
		return false
	}
	p.LikesBy = append(p.LikesBy, userID)
	p.Likes++
	return true
}

// AppendReply adds a reply to the end of the sequence, the in-memory
// counterpart of the $push the reply endpoint issues.
func AppendReply(p *models.Post, r models.Reply) {
	p.Replies = append(p.Replies, r)
}

// FindReply locates a reply by id.
func FindReply(replies []models.Reply, replyID string) (models.Reply, bool) {
	for _, r := range replies {
		if r.ID == replyID {
			return r, true
		}
	}
	return models.Reply{}, false
}

// EditReply rewrites the sequence with the target's content replaced.
// Id, author and date are left untouched. The second return value is
// false when the reply no longer exists.
func EditReply(replies []models.Reply, replyID, content string) ([]models.Reply, bool) {
	out := make([]models.Reply, len(replies))
	copy(out, replies)
	for i := range out {
		if out[i].ID == replyID {
			out[i].Content = content
			return out, true
		}
	}
	return out, false
}

// RemoveReply rewrites the sequence without the target element.
func RemoveReply(replies []models.Reply, replyID string) ([]models.Reply, bool) {
	out := make([]models.Reply, 0, len(replies))
	found := false
	for _, r := range replies {
		if r.ID == replyID {
			found = true
			continue
		}
		out = append(out, r)
	}
	return out, found
}

// CanModifyPost allows the author and admins to edit or delete a post.
func CanModifyPost(actor *models.User, p *models.Post) bool {
	return actor.IsAdmin || p.AuthorID == actor.ID.Hex()
}

// CanModifyReply allows the reply author and admins to edit or delete
// a reply.
func CanModifyReply(actor *models.User, r models.Reply) bool {
	return actor.IsAdmin || r.AuthorID == actor.ID.Hex()
}

// CanPin allows only admins to pin or unpin a post. Authorship grants
// nothing here.
func CanPin(actor *models.User) bool {
	return actor.IsAdmin
}

// PresentationTitle is the fixed title given to introduction posts.
func PresentationTitle(displayName string) string {
	return "Presentación: " + displayName
}

// PresentationContent assembles the structured introduction form into
// the single content block stored on the post. There is no separate
// storage for the individual fields.
func PresentationContent(name, specialty, background, tools, objective string) string {
	var b strings.Builder
	b.WriteString("Hola Colegas,\n\n")
	fmt.Fprintf(&b, "**Nombre:** %s\n", name)
	fmt.Fprintf(&b, "**Especialidad:** %s\n\n", specialty)
	fmt.Fprintf(&b, "**Mi Background:** %s\n\n", background)
	fmt.Fprintf(&b, "**Herramientas que domino:**\n%s\n\n", tools)
	fmt.Fprintf(&b, "**Objetivo en el foro:** %s\n\n", objective)
	b.WriteString("Un saludo.")
	return b.String()
}
