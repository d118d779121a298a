package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"aicportal/database"
	"aicportal/forum"
	"aicportal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`

	// Presentation mode fields, used when category is "presentations".
	Specialty  string `json:"specialty"`
	Background string `json:"background"`
	Tools      string `json:"tools"`
	Objective  string `json:"objective"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func loadPost(c *gin.Context) (*models.Post, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var post models.Post
	err = database.ForumPosts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return &post, true
}

// GetCategories returns the boards the requesting member may browse.
// Students never see the restricted boards.
func GetCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": forum.VisibleCategories(user.Role)})
}

// GetPosts lists one board: pinned posts first, then newest first.
// Uncategorized posts render on the rules board. An empty board is an
// empty list, not an error.
func GetPosts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	category := forum.Bucket(c.Query("category"))
	if !forum.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	if !forum.CanView(user.Role, category) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Category restricted"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	filter := bson.M{"category": category}
	if category == forum.CategoryRules {
		filter = bson.M{"$or": []bson.M{
			{"category": forum.CategoryRules},
			{"category": bson.M{"$exists": false}},
			{"category": ""},
		}}
	}

	cursor, err := database.ForumPosts.Find(ctx, filter)
	if err != nil {
		log.Printf("GetPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	forum.SortPosts(posts)
	c.JSON(http.StatusOK, posts)
}

// CreatePost persists a new topic with a snapshot of its author and
// awards the posting bonus. The bonus is a second, independent write:
// when it fails the post stands and the miss is only logged.
func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	category := forum.CreationCategory(user.Role, req.Category)
	if !forum.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	title := req.Title
	content := req.Content
	if category == forum.CategoryPresentations {
		if strings.TrimSpace(req.Background) == "" || strings.TrimSpace(req.Objective) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Background and objective are required"})
			return
		}
		title = forum.PresentationTitle(user.DisplayName)
		content = forum.PresentationContent(user.DisplayName, req.Specialty, req.Background, req.Tools, req.Objective)
	} else {
		if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
			return
		}
	}

	post := models.Post{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Content:       content,
		Category:      category,
		AuthorID:      user.ID.Hex(),
		AuthorName:    user.DisplayName,
		AuthorRank:    user.Rank,
		AuthorCompany: user.Company,
		AuthorPhoto:   user.PhotoURL,
		CreatedAt:     time.Now().Unix(),
		Likes:         0,
		LikesBy:       []string{},
		IsPinned:      false,
		Replies:       []models.Reply{},
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := database.ForumPosts.InsertOne(ctx, post); err != nil {
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	awardPoints(user, forum.PointsPerPost)
	broadcastForum("post_created", post)

	c.JSON(http.StatusCreated, post)
}

// awardPoints credits the posting bonus and walks the rank ladder.
// There is no transaction binding this to the post insert.
func awardPoints(user *models.User, amount int64) {
	ctx, cancel := dbCtx()
	defer cancel()

	newPoints := user.Points + amount
	newRank := models.RankForPoints(user.Role, newPoints)

	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$inc": bson.M{"points": amount},
		"$set": bson.M{"rank": newRank},
	})
	if err != nil {
		log.Printf("awardPoints: failed to credit %d points to %s: %v", amount, user.ID.Hex(), err)
		return
	}

	if newRank != user.Rank {
		_, err := database.MembersIndex.UpdateOne(ctx,
			bson.M{"uid": user.ID.Hex()},
			bson.M{"$set": bson.M{"rank": newRank}},
		)
		if err != nil {
			log.Printf("awardPoints: members index rank sync failed for %s: %v", user.ID.Hex(), err)
		}
	}
}

func UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}
	post, ok := loadPost(c)
	if !ok {
		return
	}
	if !forum.CanModifyPost(user, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or an admin may edit this post"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	_, err := database.ForumPosts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{"title": req.Title, "content": req.Content},
	})
	if err != nil {
		log.Printf("UpdatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	broadcastForum("post_updated", gin.H{"id": post.ID.Hex(), "title": req.Title, "content": req.Content})
	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DeletePost removes the topic and every embedded reply immediately.
// There is no tombstone.
func DeletePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	post, ok := loadPost(c)
	if !ok {
		return
	}
	if !forum.CanModifyPost(user, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or an admin may delete this post"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := database.ForumPosts.DeleteOne(ctx, bson.M{"_id": post.ID}); err != nil {
		log.Printf("DeletePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	broadcastForum("post_deleted", gin.H{"id": post.ID.Hex()})
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// LikePost toggles the (post, member) like. Membership in likesBy is
// authoritative; the counter is a denormalized mirror moved by exactly
// one in the same update. The toggle outcome decides which update
// document is sent: $addToSet/$inc +1 on like, $pull/$inc -1 on unlike.
func LikePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	post, ok := loadPost(c)
	if !ok {
		return
	}

	uid := user.ID.Hex()
	liked := forum.ToggleLike(post, uid)

	update := bson.M{
		"$addToSet": bson.M{"likesBy": uid},
		"$inc":      bson.M{"likes": 1},
	}
	if !liked {
		update = bson.M{
			"$pull": bson.M{"likesBy": uid},
			"$inc":  bson.M{"likes": -1},
		}
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := database.ForumPosts.UpdateOne(ctx, bson.M{"_id": post.ID}, update); err != nil {
		log.Printf("LikePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like"})
		return
	}

	broadcastForum("post_updated", gin.H{"id": post.ID.Hex(), "liked": liked})
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// PinPost flips the pinned flag, nothing else. Admin only.
func PinPost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !forum.CanPin(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins may pin posts"})
		return
	}
	post, ok := loadPost(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	newState := !post.IsPinned
	_, err := database.ForumPosts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{"isPinned": newState},
	})
	if err != nil {
		log.Printf("PinPost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pin post"})
		return
	}

	broadcastForum("post_updated", gin.H{"id": post.ID.Hex(), "isPinned": newState})
	c.JSON(http.StatusOK, gin.H{"isPinned": newState})
}
