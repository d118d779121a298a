package routes

import (
	"time"

	"aicportal/handlers"
	"aicportal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "AIC portal API is running",
			"time":    time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes, rate limited against credential guessing.
	authLimiter := middleware.NewIPRateLimiter(20, time.Minute)
	public := router.Group("/api")
	public.Use(middleware.RateLimit(authLimiter))
	public.POST("/signup", handlers.Signup)
	public.POST("/login", handlers.Login)

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Profile
	protected.GET("/me", handlers.GetMyProfile)
	protected.PUT("/me", handlers.UpdateMyProfile)
	protected.PUT("/me/admin", handlers.ToggleAdminMode)

	// Directory
	protected.GET("/members", handlers.GetMembers)

	// Forum
	protected.GET("/forum/categories", handlers.GetCategories)
	protected.GET("/forum/posts", handlers.GetPosts)
	protected.POST("/forum/posts", handlers.CreatePost)
	protected.PUT("/forum/posts/:id", handlers.UpdatePost)
	protected.DELETE("/forum/posts/:id", handlers.DeletePost)
	protected.POST("/forum/posts/:id/like", handlers.LikePost)
	protected.POST("/forum/posts/:id/pin", handlers.PinPost)
	protected.POST("/forum/posts/:id/replies", handlers.AddReply)
	protected.PUT("/forum/posts/:id/replies/:replyId", handlers.EditReply)
	protected.DELETE("/forum/posts/:id/replies/:replyId", handlers.DeleteReply)
	protected.POST("/forum/assist", handlers.GenerateReply)

	// Market data
	protected.GET("/news", handlers.GetNews)
	protected.GET("/tenders", handlers.GetTenders)
	protected.GET("/indicators", handlers.GetIndicators)

	// Showcase
	protected.GET("/showcase", handlers.GetShowcase)
	protected.POST("/showcase", handlers.CreateShowcaseItem)
	protected.DELETE("/showcase/:id", handlers.DeleteShowcaseItem)

	// Gallery
	protected.GET("/gallery", handlers.GetGallery)
	protected.POST("/gallery", handlers.CreateGalleryImage)
	protected.DELETE("/gallery/:id", handlers.DeleteGalleryImage)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
