package handlers

import (
	"context"
	"net/http"
	"time"

	"aicportal/database"
	"aicportal/models"
	"aicportal/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var wsManager *websocket.Manager

// SetWebSocketManager wires the hub used to push forum changes to
// connected viewers.
func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// currentUser loads the authenticated member's profile. Role checks are
// always made against the stored document, never against
// client-supplied fields. A valid token without a profile means the
// member never finished registration; the client routes that back to
// the landing flow.
func currentUser(c *gin.Context) (*models.User, bool) {
	userIDStr := c.GetString("userId")
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return nil, false
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	err = database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found", "code": "NOT_REGISTERED"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return &user, true
}

func broadcastForum(event string, payload interface{}) {
	if wsManager != nil {
		wsManager.BroadcastForumEvent(event, payload)
	}
}
