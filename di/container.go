package di

import (
	"context"
	"fmt"
	"log"

	"weather-dashboard/api"
	"weather-dashboard/api/openmeteo"
	"weather-dashboard/config"
	"weather-dashboard/dao/redis"
	"weather-dashboard/db"
	"weather-dashboard/metrics"
	"weather-dashboard/server"
	"weather-dashboard/server/handlers"
	services "weather-dashboard/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Container holds all application dependencies.
type Container struct {
	Config                *config.AppConfig
	RedisClient           db.RedisClient
	RedisSessionDao       *redis.RedisSessionDAO
	WeatherAPI            openmeteo.WeatherAPI
	Registry              *prometheus.Registry
	Metrics               *metrics.DashboardMetrics
	DashboardService      *services.DashboardService
	SessionService        *services.SessionService
	SessionSweeperService *services.SessionSweeperService
	DashboardHandler      *handlers.DashboardHandler
	WeatherHandler        *handlers.WeatherHandler
	MuxRouter             *mux.Router
	Router                *server.Router
	DashboardHttpServer   *server.DashboardHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.AppConfig) (*Container, error) {
	log.Printf("[Container] initializing container - env: %s", cfg.Env)
	ctx := context.Background()

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisSessionDao := redis.NewRedisSessionDAO(redisClient, cfg.SessionTTL)

	weatherAPI, err := newWeatherAPI(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	dashboardMetrics := metrics.NewDashboardMetrics(registry)

	dashboardService := services.NewDashboardService(weatherAPI, dashboardMetrics)
	sessionService := services.NewSessionService(redisSessionDao, dashboardService)
	sessionSweeperService := services.NewSessionSweeperService(redisSessionDao, sessionService)

	dashboardHandler := handlers.NewDashboardHandler(sessionService, cfg.SessionTTL)
	weatherHandler := handlers.NewWeatherHandler(dashboardService)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	muxRouter := mux.NewRouter()
	router := server.NewRouter(dashboardHandler, weatherHandler, metricsHandler, muxRouter)
	dashboardHttpServer := server.NewDashboardHttpServer(router, muxRouter, cfg.Port)

	return &Container{
		Config:                cfg,
		RedisClient:           redisClient,
		RedisSessionDao:       redisSessionDao,
		WeatherAPI:            weatherAPI,
		Registry:              registry,
		Metrics:               dashboardMetrics,
		DashboardService:      dashboardService,
		SessionService:        sessionService,
		SessionSweeperService: sessionSweeperService,
		DashboardHandler:      dashboardHandler,
		WeatherHandler:        weatherHandler,
		MuxRouter:             muxRouter,
		Router:                router,
		DashboardHttpServer:   dashboardHttpServer,
	}, nil
}

func newRedisClient(ctx context.Context, cfg *config.AppConfig) (db.RedisClient, error) {
	if !cfg.IsProd() {
		log.Printf("[Container] Using in-memory redis")
		return db.NewMockRedisClient(ctx), nil
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	redisClient := db.NewGoRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddress, err)
	}
	return redisClient, nil
}

func newWeatherAPI(cfg *config.AppConfig) (openmeteo.WeatherAPI, error) {
	if cfg.IsProd() {
		log.Printf("[Container] Using prod open-meteo api at %s", cfg.OpenMeteoBaseURL)
		httpClient := api.NewHTTPClient(cfg.OpenMeteoBaseURL, cfg.OpenMeteoTimeout)
		return openmeteo.NewOpenMeteoApiClient(httpClient, cfg.OpenMeteoBreakerFailures, cfg.OpenMeteoBreakerOpenAfter), nil
	}

	if cfg.OpenMeteoFixture != "" {
		path := config.GetResourcePath(cfg.OpenMeteoFixture)
		log.Printf("[Container] Using mock open-meteo api replaying %s", path)
		return openmeteo.NewOpenMeteoApiClientMockFromJSON(path)
	}

	log.Printf("[Container] Using mock open-meteo api")
	return openmeteo.NewOpenMeteoApiClientMock(), nil
}
