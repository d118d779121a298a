package models

// MarketItem lives in the shared market_news collection. The Type field
// ("news" or "tender") decides which view consumes the record; the
// seeder writes both kinds into the same collection.
type MarketItem struct {
	ID          string `bson:"_id" json:"id"`
	Type        string `bson:"type" json:"type"`
	Source      string `bson:"source" json:"source"`
	Category    string `bson:"category" json:"category"`
	Title       string `bson:"title" json:"title"`
	Date        string `bson:"date,omitempty" json:"date,omitempty"`
	ISODate     string `bson:"isoDate,omitempty" json:"isoDate,omitempty"`
	URL         string `bson:"url" json:"url"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Region      string `bson:"region,omitempty" json:"region,omitempty"`
	Amount      string `bson:"amount,omitempty" json:"amount,omitempty"`
	ClosingDate string `bson:"closingDate,omitempty" json:"closingDate,omitempty"`
	PublishDate string `bson:"publishDate,omitempty" json:"publishDate,omitempty"`
	Timestamp   int64  `bson:"timestamp" json:"timestamp"`
}

const (
	MarketTypeNews   = "news"
	MarketTypeTender = "tender"
)

// Indicator is one entry of the economic indicators board.
type Indicator struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
	Trend string `bson:"trend" json:"trend"`
}
