package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"ptalk-server/config"
	"ptalk-server/dao/redis"
	"ptalk-server/db"
	"ptalk-server/server"
	"ptalk-server/server/handlers"
	"ptalk-server/server/middleware"
	services "ptalk-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                config.Config
	RedisClient           db.RedisClient
	RedisVenueDao         *redis.RedisVenueDAO
	VenueService          *services.VenueService
	AuthService           *services.AuthService
	MerchantService       *services.MerchantService
	CommentService        *services.CommentService
	TagService            *services.TagService
	MockDataSeederService *services.MockDataSeederService
	MuxRouter             *mux.Router
	Router                *server.Router
	PTalkHttpServer       *server.PTalkHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg config.Config) *Container {
	log.Printf("initializing container - env: %s", cfg.Env)
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}
	ctx := context.Background()

	var redisClient db.RedisClient
	if cfg.UseMockStore() {
		log.Printf("Using in-memory store")
		redisClient = db.NewMockRedisClient(ctx)
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		geoClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
		if err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
		redisClient = geoClient
	}

	redisVenueDao := redis.NewRedisVenueDAO(redisClient)
	redisTagDao := redis.NewRedisTagDAO(redisClient)
	redisCommentDao := redis.NewRedisCommentDAO(redisClient)
	redisMerchantDao := redis.NewRedisMerchantDAO(redisClient)
	redisSessionDao := redis.NewRedisSessionDAO(redisClient)

	venueService := services.NewVenueService(redisVenueDao, redisTagDao)
	authService := services.NewAuthService(redisMerchantDao, redisSessionDao,
		cfg.JWTSecret, config.JWT_ISSUER, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	merchantService := services.NewMerchantService(redisMerchantDao)
	commentService := services.NewCommentService(redisCommentDao, redisVenueDao)
	tagService := services.NewTagService(redisTagDao)

	seeder := services.NewMockDataSeederService(redisVenueDao, redisTagDao, redisCommentDao, redisMerchantDao,
		redis.NewRedisStorePurger(redisClient),
		services.NewResourceSeedLoader(cfg.ResourcesDirPath))

	muxRouter := mux.NewRouter()
	router := server.NewRouter(server.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Merchant:   handlers.NewMerchantHandler(merchantService),
		Venue:      handlers.NewVenueHandler(venueService),
		Comment:    handlers.NewCommentHandler(commentService),
		Tag:        handlers.NewTagHandler(tagService),
		SmartPaste: handlers.NewSmartPasteHandler(),
	}, authService, middleware.NewRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst, cfg.TrustedProxies...), muxRouter)

	httpServer := server.NewPTalkHttpServer(router, muxRouter, cfg.HTTPAddress)

	return &Container{
		Config:                cfg,
		RedisClient:           redisClient,
		RedisVenueDao:         redisVenueDao,
		VenueService:          venueService,
		AuthService:           authService,
		MerchantService:       merchantService,
		CommentService:        commentService,
		TagService:            tagService,
		MockDataSeederService: seeder,
		MuxRouter:             muxRouter,
		Router:                router,
		PTalkHttpServer:       httpServer,
	}
}
