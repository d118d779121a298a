package robot

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"go.mongodb.org/mongo-driver/mongo"

	"aicportal/models"
)

func TestNewsIDDeterministic(t *testing.T) {
	a := NewsID("https://example.com/article-1")
	b := NewsID("https://example.com/article-1")
	if a != b {
		t.Fatalf("same link produced different ids: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d (%s)", len(a), a)
	}
	if a == NewsID("https://example.com/article-2") {
		t.Fatal("different links produced the same id")
	}
}

func TestNewsFromFeedDedupesAndCaps(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	feed := &gofeed.Feed{}
	for i := 0; i < NewsCap+5; i++ {
		feed.Items = append(feed.Items, &gofeed.Item{
			Title: "Noticia",
			Link:  "https://example.com/n/" + strings.Repeat("x", i+1),
		})
	}
	// Duplicate of the first link, should be skipped.
	feed.Items = append([]*gofeed.Item{{Title: "Repetida", Link: "https://example.com/n/x"}}, feed.Items...)

	news := NewsFromFeed(feed, now)
	if len(news) != NewsCap {
		t.Fatalf("expected %d news items, got %d", NewsCap, len(news))
	}

	seen := map[string]bool{}
	for _, item := range news {
		if item.Type != models.MarketTypeNews {
			t.Fatalf("expected type %q, got %q", models.MarketTypeNews, item.Type)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id in batch: %s", item.ID)
		}
		seen[item.ID] = true
		if item.Image == "" {
			t.Fatal("news item missing image")
		}
		if item.Timestamp != now.Unix() {
			t.Fatalf("expected timestamp %d, got %d", now.Unix(), item.Timestamp)
		}
	}
}

func TestNewsFromFeedPrefersEnclosureImage(t *testing.T) {
	now := time.Now()
	feed := &gofeed.Feed{Items: []*gofeed.Item{
		{
			Title:      "Con imagen",
			Link:       "https://example.com/img",
			Enclosures: []*gofeed.Enclosure{{URL: "https://cdn.example.com/a.jpg"}},
		},
		{
			Title:   "Imagen embebida",
			Link:    "https://example.com/embedded",
			Content: `<p><img src="https://cdn.example.com/b.jpg"/></p>`,
		},
	}}

	news := NewsFromFeed(feed, now)
	if news[0].Image != "https://cdn.example.com/a.jpg" {
		t.Fatalf("expected enclosure image, got %s", news[0].Image)
	}
	if news[1].Image != "https://cdn.example.com/b.jpg" {
		t.Fatalf("expected embedded image, got %s", news[1].Image)
	}
}

func TestGenerateTenders(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))

	tenders := GenerateTenders(rng, now, TenderCount)
	if len(tenders) != TenderCount {
		t.Fatalf("expected %d tenders, got %d", TenderCount, len(tenders))
	}

	idPattern := regexp.MustCompile(`^\d{4}-\d{2}-L[PQR]25$`)
	for _, tender := range tenders {
		if tender.Type != models.MarketTypeTender {
			t.Fatalf("expected type %q, got %q", models.MarketTypeTender, tender.Type)
		}
		if !idPattern.MatchString(tender.ID) {
			t.Fatalf("unexpected tender id format: %s", tender.ID)
		}
		if !strings.HasSuffix(tender.Amount, " UTM") {
			t.Fatalf("unexpected amount format: %s", tender.Amount)
		}
		if tender.Region == "" || tender.Title == "" || tender.Category == "" {
			t.Fatalf("tender missing fields: %+v", tender)
		}
		if !strings.HasSuffix(tender.Title, " - "+tender.Region) {
			t.Fatalf("title should end with region: %s", tender.Title)
		}

		closing, err := time.Parse("02-01-2006", tender.ClosingDate)
		if err != nil {
			t.Fatalf("unparseable closing date %s: %v", tender.ClosingDate, err)
		}
		days := int(closing.Sub(now).Hours() / 24)
		if days < 14 || days > 60 {
			t.Fatalf("closing date out of range: %s (%d days)", tender.ClosingDate, days)
		}
	}
}

func TestWriteModelsUpsertsEverything(t *testing.T) {
	news := []models.MarketItem{
		{ID: "n1", Type: models.MarketTypeNews},
		{ID: "n2", Type: models.MarketTypeNews},
	}
	// Two tenders sharing an id code; the batch must still be writable,
	// so every row has to be an upsert, never a plain insert.
	tenders := []models.MarketItem{
		{ID: "1234-56-LP25", Type: models.MarketTypeTender},
		{ID: "1234-56-LP25", Type: models.MarketTypeTender},
	}

	writes := WriteModels(news, tenders)
	if len(writes) != len(news)+len(tenders)+1 {
		t.Fatalf("expected %d write models, got %d", len(news)+len(tenders)+1, len(writes))
	}

	if _, ok := writes[len(news)].(*mongo.DeleteManyModel); !ok {
		t.Fatalf("expected the tender wipe after the news rows, got %T", writes[len(news)])
	}

	for i, w := range writes {
		if i == len(news) {
			continue
		}
		replace, ok := w.(*mongo.ReplaceOneModel)
		if !ok {
			t.Fatalf("write %d: expected ReplaceOneModel, got %T", i, w)
		}
		if replace.Upsert == nil || !*replace.Upsert {
			t.Fatalf("write %d: replace is not an upsert", i)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int]string{
		999:   "999 UTM",
		1000:  "1.000 UTM",
		25500: "25.500 UTM",
	}
	for in, want := range cases {
		if got := formatAmount(in); got != want {
			t.Errorf("formatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}
