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
	"github.com/gofrs/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type AddReplyRequest struct {
	Content string `json:"content" binding:"required"`
	// Date is the caller's ISO timestamp. It is stored as sent, so a
	// skewed client clock can place a reply out of order relative to
	// replies from other clients.
	Date string `json:"date"`
}

type EditReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddReply appends to the post's reply array with a single $push.
func AddReply(c *gin.Context) {
	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply content is required"})
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

	replyID, err := uuid.NewV4()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reply ID"})
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	reply := models.Reply{
		ID:          replyID.String(),
		AuthorID:    user.ID.Hex(),
		AuthorName:  user.DisplayName,
		AuthorPhoto: user.PhotoURL,
		Content:     req.Content,
		Date:        date,
	}

	ctx, cancel := dbCtx()
	defer cancel()

	_, err = database.ForumPosts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$push": bson.M{"replies": reply},
	})
	if err != nil {
		log.Printf("AddReply error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reply"})
		return
	}

	broadcastForum("post_updated", gin.H{"id": post.ID.Hex(), "reply": reply})
	c.JSON(http.StatusCreated, reply)
}

// EditReply replaces the content of one reply and writes the whole
// sequence back. Two concurrent rewrites of the same post's replies
// race last-writer-wins; the embedded-array model is kept on purpose.
func EditReply(c *gin.Context) {
	var req EditReplyRequest
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

	replyID := c.Param("replyId")
	reply, found := forum.FindReply(post.Replies, replyID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}
	if !forum.CanModifyReply(user, reply) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or an admin may edit this reply"})
		return
	}

	updated, _ := forum.EditReply(post.Replies, replyID, req.Content)

	ctx, cancel := dbCtx()
	defer cancel()

	_, err := database.ForumPosts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{"replies": updated},
	})
	if err != nil {
		log.Printf("EditReply error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit reply"})
		return
	}

	broadcastForum("post_updated", gin.H{"id": post.ID.Hex(), "replyEdited": replyID})
	c.JSON(http.StatusOK, gin.H{"message": "Reply updated"})
}

// DeleteReply removes one reply via the same whole-sequence rewrite.
func DeleteReply(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	post, ok := loadPost(c)
	if !ok {
		return
	}

	replyID := c.Param("replyId")
	reply, found := forum.FindReply(post.Replies, replyID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}
	if !forum.CanModifyReply(user, reply) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or an admin may delete this reply"})
		return
	}

	remaining, _ := forum.RemoveReply(post.Replies, replyID)

	ctx, cancel := dbCtx()
	defer cancel()

	_, err := database.ForumPosts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{"replies": remaining},
	})
	if err != nil {
		log.Printf("DeleteReply error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}

	broadcastForum("post_updated", gin.H{"id": post.ID.Hex(), "replyDeleted": replyID})
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted"})
}
