package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type GalleryImage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	URL        string             `bson:"url" json:"url"`
	AuthorID   string             `bson:"authorId" json:"authorId"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
}
