// The robot is the offline content updater. It runs on a schedule,
// pulls sector news from an RSS feed, regenerates the synthetic tender
// set and commits everything to the shared market collection in one
// batch.
package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aicportal/database"
	"aicportal/models"
	"aicportal/robot"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading environment directly")
	}

	if os.Getenv("MONGODB_URI") == "" {
		log.Fatal("MONGODB_URI must be set")
	}

	if err := database.ConnectDB(); err != nil {
		log.WithError(err).Error("Failed to connect to MongoDB")
		// A failed Ping can leave a half-open client behind.
		database.DisconnectDB()
		os.Exit(1)
	}

	now := time.Now()
	failed := false

	feedURL := os.Getenv("NEWS_FEED_URL")
	if feedURL == "" {
		feedURL = robot.DefaultFeedURL
	}

	// A dead feed must not block the tender refresh, so the batch is
	// committed either way and the failure only surfaces in the exit
	// status.
	var news []models.MarketItem
	fetchCtx, fetchCancel := context.WithTimeout(context.Background(), 30*time.Second)
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, fetchCtx)
	fetchCancel()
	if err != nil {
		log.WithError(err).WithField("url", feedURL).Error("Feed fetch failed")
		failed = true
	} else {
		news = robot.NewsFromFeed(feed, now)
		log.WithField("count", len(news)).Info("News items prepared")
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	tenders := robot.GenerateTenders(rng, now, robot.TenderCount)
	log.WithField("count", len(tenders)).Info("Tenders generated")

	writes := robot.WriteModels(news, tenders)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := database.MarketNews.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		log.WithError(err).Error("Batch commit failed")
		database.DisconnectDB()
		os.Exit(1)
	}

	log.WithFields(logrus.Fields{
		"upserted": result.UpsertedCount,
		"modified": result.ModifiedCount,
		"deleted":  result.DeletedCount,
	}).Info("Market data committed")

	database.DisconnectDB()
	if failed {
		os.Exit(1)
	}
}
