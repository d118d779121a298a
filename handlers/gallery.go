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

type CreateGalleryImageRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
}

func galleryActor(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	if user.Role == models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "The gallery is restricted to engineers"})
		return nil, false
	}
	return user, true
}

func GetGallery(c *gin.Context) {
	if _, ok := galleryActor(c); !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Gallery.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("GetGallery error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gallery"})
		return
	}
	defer cursor.Close(ctx)

	images := []models.GalleryImage{}
	if err := cursor.All(ctx, &images); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode gallery"})
		return
	}
	c.JSON(http.StatusOK, images)
}

func CreateGalleryImage(c *gin.Context) {
	var req CreateGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := galleryActor(c)
	if !ok {
		return
	}

	image := models.GalleryImage{
		ID:         primitive.NewObjectID(),
		Title:      req.Title,
		URL:        req.URL,
		AuthorID:   user.ID.Hex(),
		AuthorName: user.DisplayName,
		CreatedAt:  time.Now().Unix(),
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := database.Gallery.InsertOne(ctx, image); err != nil {
		log.Printf("CreateGalleryImage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

func DeleteGalleryImage(c *gin.Context) {
	user, ok := galleryActor(c)
	if !ok {
		return
	}

	imageID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	filter := bson.M{"_id": imageID}
	if !user.IsAdmin {
		filter["authorId"] = user.ID.Hex()
	}

	result, err := database.Gallery.DeleteOne(ctx, filter)
	if err != nil {
		log.Printf("DeleteGalleryImage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
