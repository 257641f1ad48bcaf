package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/copyforge/backend/abtest"
	"github.com/copyforge/backend/analyzer"
	"github.com/copyforge/backend/extractor"
	"github.com/copyforge/backend/logging"
	"github.com/copyforge/backend/middleware"
	"github.com/copyforge/backend/stats"
)

var (
	textAnalyzer  *analyzer.Analyzer
	pageExtractor *extractor.Extractor
	abTests       *abtest.Store
	usage         *stats.Storage
	rateLimiter   *middleware.RateLimiter
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func newRouter(runtimeStats *logging.Statistics) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.Tracking(runtimeStats))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.GET("/statistics", func(c *gin.Context) {
			snapshot := runtimeStats.GetStatistics()
			snapshot["currentMonth"] = usage.GetCurrentStats()
			c.JSON(http.StatusOK, snapshot)
		})

		analytics := api.Group("/analytics")
		{
			analytics.POST("/readability", analyzeReadability)
			analytics.POST("/sentiment", analyzeSentiment)
			analytics.POST("/seo", analyzeSEO)
			analytics.POST("/engagement", predictEngagement)
			analytics.POST("/full", fullAnalysis)
			analytics.POST("/url", analyzeContentURL)

			analytics.POST("/ab-tests", createABTest)
			analytics.GET("/ab-tests", listABTests)
			analytics.GET("/ab-tests-stats", abTestStats)
			analytics.GET("/ab-tests/:id", getABTest)
			analytics.PUT("/ab-tests/:id", decideABTest)
			analytics.DELETE("/ab-tests/:id", deleteABTest)
		}
	}

	return r
}

func main() {
	loadEnv()
	setupGinMode()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	var err error
	usage, err = stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize stats storage:", err)
	}

	textAnalyzer = analyzer.New()
	pageExtractor = extractor.New(usage)
	abTests = abtest.NewStore(filepath.Join(dataDir, "abtests.json"))
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	runtimeStats := logging.Initialize()

	r := newRouter(runtimeStats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
