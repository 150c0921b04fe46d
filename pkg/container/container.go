package container

import (
	"context"
	"fmt"
	"time"

	"bookshelves-backend/internal/config"
	infraCache "bookshelves-backend/internal/infrastructure/cache"
	"bookshelves-backend/internal/infrastructure/database"
	"bookshelves-backend/pkg/cache"
	"bookshelves-backend/pkg/jwt"
	"bookshelves-backend/pkg/logger"

	bookHandler "bookshelves-backend/internal/domains/book/handler"
	bookRepo "bookshelves-backend/internal/domains/book/repository"
	bookService "bookshelves-backend/internal/domains/book/service"
	ratingHandler "bookshelves-backend/internal/domains/rating/handler"
	ratingRepo "bookshelves-backend/internal/domains/rating/repository"
	ratingService "bookshelves-backend/internal/domains/rating/service"
	shelfHandler "bookshelves-backend/internal/domains/shelf/handler"
	shelfRepo "bookshelves-backend/internal/domains/shelf/repository"
	shelfService "bookshelves-backend/internal/domains/shelf/service"
	userHandler "bookshelves-backend/internal/domains/user/handler"
	userRepo "bookshelves-backend/internal/domains/user/repository"
	userService "bookshelves-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	BookRepo   bookRepo.BookRepository
	RatingRepo ratingRepo.RatingRepository
	ShelfRepo  shelfRepo.ShelfRepository
	UserRepo   userRepo.UserRepository

	BookService   bookService.ServiceInterface
	RatingService ratingService.ServiceInterface
	ShelfService  shelfService.ServiceInterface
	UserService   userService.ServiceInterface

	BookHandler   *bookHandler.BookHandler
	RatingHandler *ratingHandler.RatingHandler
	ShelfHandler  *shelfHandler.ShelfHandler
	UserHandler   *userHandler.UserHandler
}

// NewContainer builds the whole dependency graph in order: config first,
// then infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	logger.Info("configuration loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// Step 2: Connect to PostgreSQL
	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// Step 3: Connect to Redis. The cache is an optimization; a dead Redis
	// must not keep the service from starting
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, continuing without cache", map[string]interface{}{"error": err.Error()})
		c.Cache = nil
	} else {
		c.Cache = redisCache
	}

	// Step 4: JWT manager
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// Step 5: Repositories
	c.BookRepo = bookRepo.NewPostgresBookRepository(db.Pool)
	c.RatingRepo = ratingRepo.NewPostgresRatingRepository(db.Pool)
	c.ShelfRepo = shelfRepo.NewPostgresShelfRepository(db.Pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(db.Pool)

	// Step 6: Services
	c.BookService = bookService.NewBookService(c.BookRepo, c.RatingRepo, c.Cache)
	c.RatingService = ratingService.NewRatingService(c.RatingRepo, c.BookRepo, c.UserRepo, c.Cache)
	c.ShelfService = shelfService.NewShelfService(c.ShelfRepo, c.BookRepo, c.UserRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.ShelfRepo, c.BookRepo, c.RatingRepo, c.JWTManager)

	// Step 7: Handlers
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.RatingHandler = ratingHandler.NewRatingHandler(c.RatingService)
	c.ShelfHandler = shelfHandler.NewShelfHandler(c.ShelfService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	logger.Info("container initialized", nil)
	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(*infraCache.RedisCache); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
