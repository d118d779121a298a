package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Reply is embedded in its post's reply array, it is not a standalone
// document. The date is the ISO timestamp supplied by the writing
// client, so ordering across replies from different clients can be
// skewed by their clocks.
type Reply struct {
	ID          string `bson:"id" json:"id"`
	AuthorID    string `bson:"authorId" json:"authorId"`
	AuthorName  string `bson:"authorName" json:"authorName"`
	AuthorPhoto string `bson:"authorPhoto" json:"authorPhoto"`
	Content     string `bson:"content" json:"content"`
	Date        string `bson:"date" json:"date"`
}

// Post carries a denormalized snapshot of its author taken at creation
// time. The snapshot is never updated when the member later edits their
// profile.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"`
	Category      string             `bson:"category,omitempty" json:"category"`
	AuthorID      string             `bson:"authorId" json:"authorId"`
	AuthorName    string             `bson:"authorName" json:"authorName"`
	AuthorRank    string             `bson:"authorRank" json:"authorRank"`
	AuthorCompany string             `bson:"authorCompany" json:"authorCompany"`
	AuthorPhoto   string             `bson:"authorPhoto" json:"authorPhoto"`
	CreatedAt     int64              `bson:"createdAt" json:"createdAt"`
	Likes         int64              `bson:"likes" json:"likes"`
	LikesBy       []string           `bson:"likesBy" json:"likesBy"`
	IsPinned      bool               `bson:"isPinned" json:"isPinned"`
	Replies       []Reply            `bson:"replies" json:"replies"`
}
