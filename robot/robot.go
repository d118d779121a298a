// Package robot builds the content batch the offline updater writes
// into the shared market_news collection: deduplicated news rows from
// an RSS feed plus a fresh set of synthetic tender rows.
package robot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"aicportal/models"
)

const (
	// NewsCap bounds how many news rows one run may upsert.
	NewsCap = 10
	// TenderCount is the size of the daily synthetic tender set.
	TenderCount = 20

	DefaultFeedURL = "https://news.google.com/rss/search?q=construccion+chile+when:1d&hl=es-419&gl=CL&ceid=CL:es-419"
)

var regions = []string{"Metropolitana", "Valparaíso", "O'Higgins"}

var tenderTypes = []string{"Obra Pública", "Vialidad", "Edificación", "Mantención", "Remodelación", "Infraestructura"}

var titlePrefixes = []string{"Construcción", "Remodelación", "Mantención", "Mejoramiento", "Reposición", "Habilitación", "Conservación", "Restauración"}

var titleObjects = []string{"Escuela Básica", "CESFAM", "Ruta", "Plaza", "Sede Social", "Pavimentación Participativa", "Edificio Consistorial", "Multicancha", "Red de Alcantarillado", "Jardín Infantil"}

var titleSuffixes = []string{"Sector Norte", "Etapa II", "Tramo 3", "Global Mixta", ""}

var placeholderImages = []string{
	"https://images.unsplash.com/photo-1541888946425-d81bb19240f5?q=80&w=600&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1503387762-592deb58ef4e?q=80&w=600&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1581094794329-c8112a89af12?q=80&w=600&auto=format&fit=crop",
}

var imgSrcRe = regexp.MustCompile(`src="([^"]+)"`)

// NewsID derives the stable document id for a feed item from its link,
// so re-running the robot upserts instead of duplicating.
func NewsID(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}

func itemImage(item *gofeed.Item, id string) string {
	if len(item.Enclosures) > 0 && item.Enclosures[0].URL != "" {
		return item.Enclosures[0].URL
	}
	if m := imgSrcRe.FindStringSubmatch(item.Content); m != nil {
		return m[1]
	}
	n, err := strconv.ParseUint(id[:8], 16, 64)
	if err != nil {
		n = 0
	}
	return placeholderImages[n%uint64(len(placeholderImages))]
}

// NewsFromFeed converts feed items to news rows, deduplicating by link
// hash and stopping at NewsCap.
func NewsFromFeed(feed *gofeed.Feed, now time.Time) []models.MarketItem {
	news := []models.MarketItem{}
	seen := map[string]bool{}

	for _, item := range feed.Items {
		if len(news) >= NewsCap {
			break
		}
		id := NewsID(item.Link)
		if seen[id] {
			continue
		}
		seen[id] = true

		source := "Google News"
		if item.Author != nil && item.Author.Name != "" {
			source = item.Author.Name
		}

		published := now
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		news = append(news, models.MarketItem{
			ID:        id,
			Type:      models.MarketTypeNews,
			Source:    source,
			Category:  "Construcción",
			Title:     item.Title,
			Date:      published.Format("02-01-2006"),
			ISODate:   published.UTC().Format(time.RFC3339),
			URL:       item.Link,
			Image:     itemImage(item, id),
			Timestamp: now.Unix(),
		})
	}
	return news
}

func formatAmount(utm int) string {
	s := strconv.Itoa(utm)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + " UTM"
}

// GenerateTenders produces the day's synthetic tender rows: random
// region, type, composite title, amount in UTM and a closing date 15
// to 60 days out, with public-market style id codes.
func GenerateTenders(rng *rand.Rand, now time.Time, count int) []models.MarketItem {
	tenders := make([]models.MarketItem, 0, count)

	for i := 0; i < count; i++ {
		region := regions[rng.Intn(len(regions))]
		tenderType := tenderTypes[rng.Intn(len(tenderTypes))]
		title := strings.TrimSpace(fmt.Sprintf("%s %s %s",
			titlePrefixes[rng.Intn(len(titlePrefixes))],
			titleObjects[rng.Intn(len(titleObjects))],
			titleSuffixes[rng.Intn(len(titleSuffixes))],
		)) + " - " + region

		closing := now.AddDate(0, 0, 15+rng.Intn(46))
		series := []byte{'P', 'Q', 'R'}[rng.Intn(3)]
		id := fmt.Sprintf("%d-%d-L%c%s",
			1000+rng.Intn(9000),
			10+rng.Intn(90),
			series,
			now.Format("06"),
		)

		tenders = append(tenders, models.MarketItem{
			ID:          id,
			Type:        models.MarketTypeTender,
			Source:      "Mercado Público",
			Category:    tenderType,
			Title:       title,
			Region:      region,
			Amount:      formatAmount(1000 + rng.Intn(49001)),
			ClosingDate: closing.Format("02-01-2006"),
			PublishDate: now.Format("02-01-2006"),
			URL:         "https://www.mercadopublico.cl",
			Timestamp:   now.Unix(),
		})
	}
	return tenders
}

// WriteModels assembles the single ordered batch one run commits: news
// upserts, then a wipe of the previous tender set, then the new
// tenders. Every row is an upsert, so a random id collision within one
// run overwrites instead of failing the batch.
func WriteModels(news, tenders []models.MarketItem) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(news)+len(tenders)+1)
	for _, item := range news {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": item.ID}).
			SetReplacement(item).
			SetUpsert(true))
	}
	writes = append(writes, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"type": models.MarketTypeTender}))
	for _, tender := range tenders {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": tender.ID}).
			SetReplacement(tender).
			SetUpsert(true))
	}
	return writes
}
