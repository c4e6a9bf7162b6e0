// @title           Landuse Indicators API
// @version         1.0
// @description     REST API сервиса индикаторов землепользования: уровень урбанизации, потенциал реновации и распределение категорий землепользования по проектам, территориям и сценариям.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "landuse_service/docs" // swagger docs
	"landuse_service/internal/api"
	"landuse_service/internal/cache"
	"landuse_service/internal/config"
	"landuse_service/internal/core"
	"landuse_service/internal/domain/model"
	"landuse_service/internal/domain/repository"
	"landuse_service/internal/infrastructure/urbanapi"
	"landuse_service/internal/logger"
)

func main() {
	// .env удобен при локальном запуске, в контейнере переменные приходят извне
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Инициализация репозиториев
	postgresRepo := repository.NewPostgresRepository(cfg.PostgresURL, log)
	defer postgresRepo.Close()
	overpassRepo := repository.NewOverpassRepository(cfg.OverpassURL, cfg.RequestTimeout, log)

	// Геометрии проектов и территорий разрешает платформа, без неё —
	// локальный PostGIS. Значения индикаторов пишутся во все приёмники.
	var scopes model.ScopeSource = postgresRepo
	sinks := []model.IndicatorSink{repository.NewPostgresIndicatorRecorder(postgresRepo.DB())}
	if cfg.UrbanAPIURL != "" {
		client := urbanapi.NewClient(cfg.UrbanAPIURL)
		scopes = client
		sinks = append(sinks, client)
		log.Info("using urban platform", zap.String("url", cfg.UrbanAPIURL))
	}

	// Кэш результатов: Redis для нескольких экземпляров, иначе память
	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.CacheTTL, log)
		defer redisCache.Close()
		resultCache = redisCache
		log.Info("using redis cache", zap.String("addr", cfg.RedisAddr))
	} else {
		resultCache = cache.NewMemory(cfg.CacheSize, cfg.CacheTTL)
	}

	engine := core.NewEngine(
		scopes,
		postgresRepo,
		overpassRepo,
		postgresRepo,
		sinks,
		resultCache,
		cfg,
		log,
	)

	// Настройка роутера
	router := mux.NewRouter()
	handler := api.NewHandler(engine, log, cfg.LogFile)
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	router.Use(api.LoggingMiddleware(log))
	router.Use(api.MetricsMiddleware())
	router.Use(api.CORSMiddleware)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
