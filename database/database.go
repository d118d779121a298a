package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Name = "aicportal"

var Client *mongo.Client

var (
	Users        *mongo.Collection
	MembersIndex *mongo.Collection
	ForumPosts   *mongo.Collection
	MarketNews   *mongo.Collection
	Indicators   *mongo.Collection
	Showcase     *mongo.Collection
	Gallery      *mongo.Collection
)

func ConnectDB() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Println("MONGODB_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	db := Client.Database(Name)
	Users = db.Collection("users")
	MembersIndex = db.Collection("members_index")
	ForumPosts = db.Collection("forum_posts")
	MarketNews = db.Collection("market_news")
	Indicators = db.Collection("market_indicators")
	Showcase = db.Collection("showcase")
	Gallery = db.Collection("gallery")

	log.Println("Connected to MongoDB successfully")
	return nil
}

func DisconnectDB() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
