package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	analyticshttp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/adapters/http"
	analyticsorders "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/adapters/orders"
	analyticsapp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/application"

	cataloghttp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application"
	catalogports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"

	deliverieshttp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/adapters/http"
	deliverymemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/adapters/memory"
	deliverypostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/adapters/persistence/postgres"
	deliveryapp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/application"
	deliveryports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/ports"

	orderevents "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/events"
	ordershttp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/http"
	ordermemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/memory"
	orderobs "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/persistence/postgres"
	orderredis "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/redis"
	orderworkflows "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/workflows"
	orderapp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application"
	orderports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"

	reviewscatalog "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/adapters/catalog"
	reviewshttp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/adapters/http"
	reviewmemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/adapters/memory"
	reviewsorders "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/adapters/orders"
	reviewpostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/adapters/persistence/postgres"
	reviewapp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/application"
	reviewports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/migrations"
	platformobservability "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/observability"
	platformpostgres "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/postgres"
	platformrabbit "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/rabbit"
	platformredis "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/redis"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"
)

// Run boots the marketplace HTTP API with observability, repositories,
// eventing, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "fish-hub-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	rabbitConn := platformrabbit.ConnectFromEnv(logger)
	defer rabbitConn.Close()
	redisClient := platformredis.ConnectFromEnv(ctx, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	orderRepo := buildOrderRepository(db)
	orderOpts := []orderapp.Option{
		orderapp.WithIdempotencyStore(buildIdempotencyStore(redisClient, cfg)),
	}
	if rabbitConn != nil {
		orderOpts = append(orderOpts, orderapp.WithPublisher(orderevents.NewRabbitPublisher(rabbitConn)))
	}
	coreOrderService := orderapp.NewService(orderRepo, orderOpts...)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderOrchestrator orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderOrchestrator = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	catalogService := catalogapp.NewService(buildCatalogRepository(db))
	deliveryService := deliveryapp.NewService(buildDeliveryRepository(db))
	reviewService := reviewapp.NewService(
		buildReviewRepository(db),
		reviewsorders.NewPurchaseVerifier(orderService),
		reviewapp.WithRatingUpdater(reviewscatalog.NewRatingUpdater(catalogService)),
	)
	analyticsService := analyticsapp.NewService(analyticsorders.NewSalesSource(orderRepo))

	responder := sharederrors.NewResponder("",
		ordershttp.ErrorMapper,
		deliverieshttp.ErrorMapper,
		reviewshttp.ErrorMapper,
		cataloghttp.ErrorMapper,
		analyticshttp.ErrorMapper,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	ordershttp.NewHandler(orderService, orderOrchestrator, responder).Register(v1)
	deliverieshttp.NewHandler(deliveryService, responder).Register(v1)
	reviewshttp.NewHandler(reviewService, responder).Register(v1)
	cataloghttp.NewHandler(catalogService, responder).Register(v1)
	analyticshttp.NewHandler(analyticsService, responder).Register(v1)

	addr := ":" + cfg.Port
	logger.Info("fish hub API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("fish hub API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(db *gorm.DB) orderports.Repository {
	if db == nil {
		return ordermemory.NewRepository()
	}
	return orderpostgres.NewRepository(db)
}

func buildIdempotencyStore(client *goredis.Client, cfg Config) orderports.IdempotencyStore {
	if client == nil {
		return ordermemory.NewIdempotencyStore()
	}
	return orderredis.NewIdempotencyStore(client, time.Duration(cfg.IdempotencyTTLHours)*time.Hour)
}

func buildDeliveryRepository(db *gorm.DB) deliveryports.Repository {
	if db == nil {
		return deliverymemory.NewRepository()
	}
	return deliverypostgres.NewRepository(db)
}

func buildReviewRepository(db *gorm.DB) reviewports.Repository {
	if db == nil {
		return reviewmemory.NewRepository()
	}
	return reviewpostgres.NewRepository(db)
}

func buildCatalogRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
