package handlers

import (
	"log"
	"net/http"
	"regexp"

	"aicportal/database"
	"aicportal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	JobTitle  string `json:"jobTitle"`
}

func GetMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMyProfile saves the editable profile fields and syncs the
// directory mirror. Author snapshots embedded in existing posts and
// replies are deliberately left as they were at posting time.
func UpdateMyProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	fullName := req.FirstName + " " + req.LastName
	update := bson.M{
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
		"displayName": fullName,
		"phone":       req.Phone,
		"company":     req.Company,
		"jobTitle":    req.JobTitle,
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
		log.Printf("UpdateMyProfile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if _, err := database.MembersIndex.UpdateOne(ctx,
		bson.M{"uid": user.ID.Hex()},
		bson.M{"$set": bson.M{"displayName": fullName, "company": req.Company}},
	); err != nil {
		log.Printf("UpdateMyProfile members index sync error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "displayName": fullName})
}

// ToggleAdminMode flips the admin flag together with directory access.
func ToggleAdminMode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	newStatus := !user.IsAdmin

	ctx, cancel := dbCtx()
	defer cancel()

	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"isAdmin": newStatus, "canViewDirectory": newStatus},
	})
	if err != nil {
		log.Printf("ToggleAdminMode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin mode"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAdmin": newStatus, "canViewDirectory": newStatus})
}

// memberSearchFilter matches the query as a literal, case-insensitive
// substring of name or company. Regex metacharacters in the input are
// search text, not pattern syntax.
func memberSearchFilter(q string) bson.M {
	if q == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"displayName": re},
		{"company": re},
	}}
}

// GetMembers lists the public directory, optionally filtered by a
// case-insensitive name or company substring.
func GetMembers(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	filter := memberSearchFilter(c.Query("q"))

	cursor, err := database.MembersIndex.Find(ctx, filter)
	if err != nil {
		log.Printf("GetMembers error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}
	defer cursor.Close(ctx)

	members := []models.MemberSummary{}
	if err := cursor.All(ctx, &members); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode members"})
		return
	}

	c.JSON(http.StatusOK, members)
}
