package handlers

import (
	"log"
	"net/http"
	"time"

	"aicportal/database"
	"aicportal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateShowcaseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// The business showcase is closed to students.
func showcaseActor(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	if user.Role == models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "The showcase is restricted to engineers"})
		return nil, false
	}
	return user, true
}

func GetShowcase(c *gin.Context) {
	if _, ok := showcaseActor(c); !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Showcase.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("GetShowcase error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch showcase"})
		return
	}
	defer cursor.Close(ctx)

	items := []models.ShowcaseItem{}
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode showcase"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func CreateShowcaseItem(c *gin.Context) {
	var req CreateShowcaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := showcaseActor(c)
	if !ok {
		return
	}

	item := models.ShowcaseItem{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    user.ID.Hex(),
		AuthorName:  user.DisplayName,
		CreatedAt:   time.Now().Unix(),
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := database.Showcase.InsertOne(ctx, item); err != nil {
		log.Printf("CreateShowcaseItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create showcase item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func DeleteShowcaseItem(c *gin.Context) {
	user, ok := showcaseActor(c)
	if !ok {
		return
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	filter := bson.M{"_id": itemID}
	if !user.IsAdmin {
		filter["authorId"] = user.ID.Hex()
	}

	result, err := database.Showcase.DeleteOne(ctx, filter)
	if err != nil {
		log.Printf("DeleteShowcaseItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete showcase item"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Showcase item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Showcase item deleted"})
}
