package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"ieltslab/internal/ai"
	"ieltslab/internal/api"
	"ieltslab/internal/config"
	"ieltslab/internal/ratelimit"
	"ieltslab/internal/store"
	"ieltslab/internal/stt"
)

const (
	testQuota       = 5
	testQuotaWindow = 24 * time.Hour
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := openai.NewClient(cfg.OpenAIKey)

	handler := api.NewHandler(
		store.NewMemoryStore(),
		ratelimit.NewSlidingWindow(testQuota, testQuotaWindow),
		ai.NewGenerator(client, cfg.OpenAIModel),
		ai.NewGrader(client, cfg.OpenAIModel),
		stt.NewWhisperProvider(client),
		cfg.SiteBaseURL,
	)

	r := gin.Default()

	// Add CORS middleware for the web client
	r.Use(corsMiddleware(cfg.CORSOrigin))

	// Register routes
	handler.RegisterRoutes(r)

	log.Printf("ieltslab backend running on :%s (model: %s)", cfg.Port, cfg.OpenAIModel)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the configured origin
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
