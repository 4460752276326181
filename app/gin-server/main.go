package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/greenpass/greenpass-support/config"
	"github.com/greenpass/greenpass-support/internal/api/handlers"
	"github.com/greenpass/greenpass-support/internal/api/middleware"
	"github.com/greenpass/greenpass-support/internal/api/routes"
	"github.com/greenpass/greenpass-support/internal/cache"
	"github.com/greenpass/greenpass-support/internal/logger"
	"github.com/greenpass/greenpass-support/internal/providers/llm"
	mongorepo "github.com/greenpass/greenpass-support/internal/repositories/mongo"
	pgrepo "github.com/greenpass/greenpass-support/internal/repositories/postgres"
	"github.com/greenpass/greenpass-support/internal/services"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init PostgreSQL (conversations + FAQ knowledge base)
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init MongoDB (message transcripts)
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	// FAQ cache: Redis when configured, in-process otherwise
	var faqCache cache.Cache
	if os.Getenv("REDIS_ADDR") == "" && os.Getenv("REDIS_URL") == "" {
		faqCache = cache.NewMemoryCache()
		l.Warn("Redis not configured, FAQ cache is in-process only")
	} else {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		faqCache = cache.NewRedisCache(config.RedisClient)
		l.Info("Redis connected")
	}

	// LLM provider
	ctx := context.Background()
	provider, err := llm.NewVertexGemini(ctx,
		os.Getenv("VERTEX_PROJECT_ID"),
		os.Getenv("VERTEX_LOCATION"),
		os.Getenv("VERTEX_MODEL"),
	)
	if err != nil {
		log.Fatalf("Vertex AI init error: %v", err)
	}
	defer provider.Close()

	llmTimeout := 20 * time.Second
	if d, err := time.ParseDuration(os.Getenv("LLM_TIMEOUT")); err == nil && d > 0 {
		llmTimeout = d
	}

	// Repositories
	mongoDB := config.MongoClient.Database(config.MongoDBName())
	convRepo := pgrepo.NewConversationRepo(config.PostgresDB)
	faqRepo := pgrepo.NewFAQRepo(config.PostgresDB, faqCache)
	msgRepo := mongorepo.NewMessageRepo(mongoDB)

	// Services
	faqSvc := services.NewFAQService(faqRepo, l)
	responderSvc := services.NewResponderService(provider, llmTimeout, l)
	escalationSvc := services.NewEscalationService(convRepo, msgRepo, l)
	chatSvc := services.NewChatService(convRepo, msgRepo, faqSvc, responderSvc, escalationSvc, l)
	supportSvc := services.NewSupportService(convRepo, msgRepo, l)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Chat:  handlers.NewChatHandler(chatSvc),
		FAQ:   handlers.NewFAQHandler(faqRepo),
		Admin: handlers.NewAdminHandler(supportSvc),
		WS:    handlers.NewWSHandler(chatSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
