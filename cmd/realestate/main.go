package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	accountApp "github.com/Khangithub17/real-estate-project/internal/account/application"
	accountHttp "github.com/Khangithub17/real-estate-project/internal/account/infra/inbound/http"
	accountRepo "github.com/Khangithub17/real-estate-project/internal/account/infra/outbound/db/mongodb"
	"github.com/Khangithub17/real-estate-project/internal/analytics"
	chSink "github.com/Khangithub17/real-estate-project/internal/analytics/clickhouse"
	blogApp "github.com/Khangithub17/real-estate-project/internal/blog/application"
	blogHttp "github.com/Khangithub17/real-estate-project/internal/blog/infra/inbound/http"
	blogRepo "github.com/Khangithub17/real-estate-project/internal/blog/infra/outbound/db/mongodb"
	config "github.com/Khangithub17/real-estate-project/internal/config"
	jobApp "github.com/Khangithub17/real-estate-project/internal/job/application"
	jobHttp "github.com/Khangithub17/real-estate-project/internal/job/infra/inbound/http"
	jobRepo "github.com/Khangithub17/real-estate-project/internal/job/infra/outbound/db/mongodb"
	listingApp "github.com/Khangithub17/real-estate-project/internal/listing/application"
	listingHttp "github.com/Khangithub17/real-estate-project/internal/listing/infra/inbound/http"
	listingRepo "github.com/Khangithub17/real-estate-project/internal/listing/infra/outbound/db/mongodb"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/cache"
	mongoClient "github.com/Khangithub17/real-estate-project/internal/shared/infra/db/mongodb"
	infraEvents "github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/metrics"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/storage"
	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
	"github.com/Khangithub17/real-estate-project/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	logger.Init()
	log := logger.Logger()
	defer log.Sync()

	ctx := context.Background()
	cfg := config.LoadConfig()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// ---------------- DB ----------------
	client, err := mongoClient.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	listings, err := listingRepo.NewListingRepo(ctx, db)
	if err != nil {
		log.Fatal("failed to initialize listing collection", zap.Error(err))
	}
	blogs, err := blogRepo.NewBlogRepo(ctx, db)
	if err != nil {
		log.Fatal("failed to initialize blog collection", zap.Error(err))
	}
	jobs, err := jobRepo.NewJobRepo(ctx, db)
	if err != nil {
		log.Fatal("failed to initialize job collection", zap.Error(err))
	}
	accounts, err := accountRepo.NewAccountRepo(ctx, db)
	if err != nil {
		log.Fatal("failed to initialize user collection", zap.Error(err))
	}

	// ---------------- Cache ----------------
	var cacheInstance cache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, using in-memory cache", zap.Error(err))
		cacheInstance = cache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = cache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("Redis connected, cache enabled")
	}

	// ---------------- Events ---------------
	topics := []string{
		sharedEvents.TopicListings,
		sharedEvents.TopicBlogs,
		sharedEvents.TopicJobs,
		sharedEvents.TopicAccounts,
	}

	publishers := make(map[string]sharedBus.EventPublisher, len(topics))
	var global sharedBus.EventPublisher

	if cfg.UseKafka {
		log.Info("Using Kafka as event bus")
		for _, topic := range topics {
			writer := kafka.NewWriter(kafka.WriterConfig{
				Brokers: cfg.KafkaBrokers,
				Topic:   topic,
			})
			defer writer.Close()
			publishers[topic] = infraEvents.NewKafkaPublisher(writer, log)
		}
		globalWriter := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   sharedEvents.TopicGlobal,
		})
		defer globalWriter.Close()
		global = infraEvents.NewKafkaPublisher(globalWriter, log)
	} else {
		log.Info("Using in-memory event bus (Go channels)")
		for _, topic := range topics {
			publishers[topic] = infraEvents.NewInMemoryEventBus(topic)
		}
		global = infraEvents.NewInMemoryEventBus(sharedEvents.TopicGlobal)
	}

	notifier := infraEvents.NewNotifier(publishers, global, log)

	// ---------------- Analytics ---------------
	var views *analytics.Collector
	if cfg.ClickHouseAddr != "" {
		sink, err := chSink.NewViewSink(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("ClickHouse not available, view analytics disabled", zap.Error(err))
		} else {
			views = analytics.NewCollector(sink, cfg.AnalyticsFlush, log)
			views.Start(ctx)
			defer views.Stop()
		}
	}

	// ---------------- Storage ---------------
	var files storage.FileStore
	if cfg.Minio.Endpoint != "" {
		files, err = storage.NewMinioStore(cfg.Minio)
		if err != nil {
			log.Fatal("failed to initialize MinIO storage", zap.Error(err))
		}
		log.Info("MinIO storage enabled", zap.String("bucket", cfg.Minio.Bucket))
	} else {
		files, err = storage.NewLocalStore(cfg.UploadDir, cfg.UploadBase)
		if err != nil {
			log.Fatal("failed to initialize local storage", zap.Error(err))
		}
	}

	// --------------- Services --------------
	tokens := accountApp.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	listingService := listingApp.NewListingService(listings, cacheInstance, notifier, files, views, log)
	blogService := blogApp.NewBlogService(blogs, cacheInstance, notifier, files, views, log)
	jobService := jobApp.NewJobService(jobs, cacheInstance, notifier, views, log)
	accountService := accountApp.NewAccountService(accounts, tokens, notifier, log)

	// ---------------- HTTP ----------------
	router := gin.Default()
	router.Use(metrics.Middleware())
	metrics.RegisterEndpoint(router)

	admin := accountHttp.RequireAdmin(accountService)
	listingHttp.RegisterListingRoutes(router, listingHttp.NewListingHandler(listingService), admin)
	blogHttp.RegisterBlogRoutes(router, blogHttp.NewBlogHandler(blogService), admin)
	jobHttp.RegisterJobRoutes(router, jobHttp.NewJobHandler(jobService), admin)
	accountHttp.RegisterAccountRoutes(router, accountHttp.NewAccountHandler(accountService), accountService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
