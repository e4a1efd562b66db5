package di

import (
	"github.com/enuri14/EcoTour-Enuri/internal/handler"
	"github.com/enuri14/EcoTour-Enuri/internal/repository"
	"github.com/enuri14/EcoTour-Enuri/internal/service"
	"github.com/enuri14/EcoTour-Enuri/pkg/config"
	"github.com/enuri14/EcoTour-Enuri/pkg/database"
	"github.com/enuri14/EcoTour-Enuri/pkg/redis"
)

// Container holds all dependencies for the API
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	TourRepo    repository.TourRepository
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository

	// Services
	Publisher      service.EventPublisher
	TourService    service.TourService
	BookingService service.BookingService
	AuthService    service.AuthService
	WeatherService service.WeatherService

	// Handlers
	HealthHandler  *handler.HealthHandler
	TourHandler    *handler.TourHandler
	BookingHandler *handler.BookingHandler
	AuthHandler    *handler.AuthHandler
	WeatherHandler *handler.WeatherHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config    *config.Config
	DB        *database.PostgresDB
	Redis     *redis.Client
	Publisher service.EventPublisher
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:        cfg.DB,
		Redis:     cfg.Redis,
		Publisher: cfg.Publisher,
	}

	// Repositories
	pgTourRepo := repository.NewPostgresTourRepository(c.DB.Pool())

	// Wrap with cache if Redis is available
	if c.Redis != nil {
		c.TourRepo = repository.NewCachedTourRepository(pgTourRepo, c.Redis, cfg.Config.Redis.CacheTTL)
	} else {
		c.TourRepo = pgTourRepo
	}
	c.BookingRepo = repository.NewPostgresBookingRepository(c.DB.Pool())
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())

	// Services
	if c.Publisher == nil {
		c.Publisher = service.NewNoOpEventPublisher()
	}
	c.TourService = service.NewTourService(c.TourRepo, c.BookingRepo)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.Publisher)
	c.AuthService = service.NewAuthService(c.UserRepo, &service.AuthServiceConfig{
		JWTSecret:         cfg.Config.JWT.Secret,
		AccessTokenExpiry: cfg.Config.JWT.AccessTokenTTL,
		Issuer:            cfg.Config.JWT.Issuer,
	})
	c.WeatherService = service.NewWeatherService(&service.WeatherServiceConfig{
		BaseURL: cfg.Config.Weather.BaseURL,
		Timeout: cfg.Config.Weather.Timeout,
	})

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(cfg.Config.App.Name, cfg.Config.App.Version, c.DB, c.Redis)
	c.TourHandler = handler.NewTourHandler(c.TourService)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.WeatherHandler = handler.NewWeatherHandler(c.WeatherService)

	return c
}
