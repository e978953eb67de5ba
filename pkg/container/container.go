package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"marketplace-backend/internal/config"
	infraCache "marketplace-backend/internal/infrastructure/cache"
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/internal/infrastructure/mongodb"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/jwt"

	productHandler "marketplace-backend/internal/domains/product/handler"
	productRepo "marketplace-backend/internal/domains/product/repository"
	productService "marketplace-backend/internal/domains/product/service"
	purchaseHandler "marketplace-backend/internal/domains/purchase/handler"
	purchaseRepo "marketplace-backend/internal/domains/purchase/repository"
	purchaseService "marketplace-backend/internal/domains/purchase/service"
	reviewHandler "marketplace-backend/internal/domains/review/handler"
	reviewRepo "marketplace-backend/internal/domains/review/repository"
	reviewService "marketplace-backend/internal/domains/review/service"
	userHandler "marketplace-backend/internal/domains/user/handler"
	userRepo "marketplace-backend/internal/domains/user/repository"
	userService "marketplace-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the dependency graph of the API process
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // set when STORAGE_DRIVER=postgres
	Mongo      *mongodb.Client      // set when STORAGE_DRIVER=mongo
	Cache      cache.Cache          // nil when Redis is disabled or unreachable
	JWTManager *jwt.Manager

	// Repositories
	UserRepo     userRepo.UserRepository
	ProductRepo  productRepo.ProductRepository
	PurchaseRepo purchaseRepo.PurchaseRepository
	ReviewRepo   reviewRepo.ReviewRepository

	// Services
	UserService     userService.ServiceInterface
	ProductService  productService.ServiceInterface
	PurchaseService purchaseService.ServiceInterface
	ReviewService   reviewService.ServiceInterface

	// Handlers
	UserHandler     *userHandler.UserHandler
	ProductHandler  *productHandler.ProductHandler
	PurchaseHandler *purchaseHandler.PurchaseHandler
	ReviewHandler   *reviewHandler.ReviewHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config, storage, cache, repositories, services, handlers
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// STEP 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Str("storage", cfg.Storage.Driver).Msg("Config loaded")

	// STEP 2: storage and repositories
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		err = c.initMongo(ctx)
	default:
		err = c.initPostgres(ctx)
	}
	if err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 3: cache
	c.initCache(ctx)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// STEP 4: services
	c.initServices()

	// STEP 5: handlers
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initPostgres(ctx context.Context) error {
	log.Info().Msg("Connecting to PostgreSQL")

	db := database.NewPostgresDB(c.Config.LoadDatabaseConfig())
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	pool := db.Pool
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.ProductRepo = productRepo.NewPostgresProductRepository(pool)
	c.PurchaseRepo = purchaseRepo.NewPostgresPurchaseRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
	return nil
}

func (c *Container) initMongo(ctx context.Context) error {
	log.Info().Msg("Connecting to MongoDB")

	client, err := mongodb.Connect(ctx, c.Config.LoadMongoConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	c.Mongo = client
	db := client.Database

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, ensure := range []func(context.Context) error{
		func(ctx context.Context) error { return userRepo.EnsureUserIndexes(ctx, db) },
		func(ctx context.Context) error { return productRepo.EnsureProductIndexes(ctx, db) },
		func(ctx context.Context) error { return purchaseRepo.EnsurePurchaseIndexes(ctx, db) },
		func(ctx context.Context) error { return reviewRepo.EnsureReviewIndexes(ctx, db) },
	} {
		if err := ensure(indexCtx); err != nil {
			return err
		}
	}

	c.UserRepo = userRepo.NewMongoUserRepository(db)
	c.ProductRepo = productRepo.NewMongoProductRepository(db)
	c.PurchaseRepo = purchaseRepo.NewMongoPurchaseRepository(db, c.ProductRepo)
	c.ReviewRepo = reviewRepo.NewMongoReviewRepository(db)
	return nil
}

// initCache connects Redis; failure is not fatal, rating summaries are
// then computed on every read
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled")
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		_ = redisCache.Close()
		return
	}

	c.Cache = redisCache
	log.Info().Msg("Redis connected")
}

func (c *Container) initServices() {
	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.PurchaseRepo,
		c.Cache,
		c.Config.Redis.StatsTTL,
	)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.ReviewService)
	c.PurchaseService = purchaseService.NewPurchaseService(c.PurchaseRepo, c.ProductRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Config.JWT.BcryptCost)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.PurchaseHandler = purchaseHandler.NewPurchaseHandler(c.PurchaseService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// ========================================
// HEALTH AND SHUTDOWN
// ========================================

// HealthCheck pings the active store and, if configured, Redis
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{}

	switch {
	case c.DB != nil:
		status["database"] = healthStatus(c.DB.HealthCheck(ctx))
	case c.Mongo != nil:
		status["database"] = healthStatus(c.Mongo.HealthCheck(ctx))
	}

	if c.Cache != nil {
		status["redis"] = healthStatus(c.Cache.Ping(ctx))
	} else {
		status["redis"] = "disabled"
	}

	return status
}

func healthStatus(err error) string {
	if err != nil {
		return "unhealthy"
	}
	return "healthy"
}

// Cleanup releases connections; called during graceful shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
