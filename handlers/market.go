package handlers

import (
	"log"
	"net/http"
	"sort"

	"aicportal/database"
	"aicportal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Defaults served while the seeder has not populated the collections
// yet.
var defaultNews = []models.MarketItem{
	{ID: "1", Type: models.MarketTypeNews, Source: "CChC", Category: "Inversión", Title: "Proyección 2025: Inversión en construcción crecería un 2,2%", Date: "Hace 4 horas", URL: "https://cchc.cl"},
	{ID: "2", Type: models.MarketTypeNews, Source: "Diario Financiero", Category: "Empresas", Title: "SalfaCorp y Besalco reportan alza de utilidades por boom minero", Date: "Hace 6 horas", URL: "https://www.df.cl"},
	{ID: "3", Type: models.MarketTypeNews, Source: "MOP", Category: "Licitaciones", Title: "Cartera de Concesiones 2025-2026: USD 5.000 millones en obras viales", Date: "Ayer", URL: "https://mop.cl"},
}

var defaultTenders = []models.MarketItem{
	{ID: "2450-12-LR24", Type: models.MarketTypeTender, Title: "Mejoramiento Borde Costero Playa Brava", Region: "Tarapacá", Amount: "2.500 UTM", ClosingDate: "15/04/2026", Category: "Obra Pública"},
	{ID: "1050-45-LQ24", Type: models.MarketTypeTender, Title: "Conservación Vial Global Caminos Básicos", Region: "Maule", Amount: "15.000 UTM", ClosingDate: "20/04/2026", Category: "Vialidad"},
}

var defaultIndicators = []models.Indicator{
	{ID: "uf", Name: "UF", Value: "$36.563", Trend: "+0.1%"},
	{ID: "utm", Name: "UTM", Value: "$64.216", Trend: "0.0%"},
	{ID: "dolar", Name: "Dólar", Value: "$945", Trend: "-0.5%"},
	{ID: "imacon", Name: "IMACON", Value: "142 pts", Trend: "+1.2%"},
}

func findMarketItems(c *gin.Context, itemType string) ([]models.MarketItem, bool) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := database.MarketNews.Find(ctx, bson.M{"type": itemType})
	if err != nil {
		log.Printf("findMarketItems(%s) error: %v", itemType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch market data"})
		return nil, false
	}
	defer cursor.Close(ctx)

	items := []models.MarketItem{}
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode market data"})
		return nil, false
	}
	return items, true
}

// GetNews serves the market news board, newest first. The built-in
// defaults stand in while the collection is empty.
func GetNews(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	items, ok := findMarketItems(c, models.MarketTypeNews)
	if !ok {
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusOK, defaultNews)
		return
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	c.JSON(http.StatusOK, items)
}

// GetTenders serves the public tender listing. Students have no access
// to tenders.
func GetTenders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Role == models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Tenders are restricted to engineers"})
		return
	}

	items, ok := findMarketItems(c, models.MarketTypeTender)
	if !ok {
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusOK, defaultTenders)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetIndicators serves the economic indicators board from its single
// document, or the defaults when it was never written.
func GetIndicators(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var doc struct {
		Items []models.Indicator `bson:"items"`
	}
	err := database.Indicators.FindOne(ctx, bson.M{"_id": "current"}).Decode(&doc)
	if err == mongo.ErrNoDocuments || (err == nil && len(doc.Items) == 0) {
		c.JSON(http.StatusOK, defaultIndicators)
		return
	}
	if err != nil {
		log.Printf("GetIndicators error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch indicators"})
		return
	}

	c.JSON(http.StatusOK, doc.Items)
}
