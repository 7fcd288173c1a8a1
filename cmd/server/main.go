package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/config"
	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/server"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/pkg/broker"
	"github.com/fekuna/omnipos-warehouse-service/pkg/cache"
	"github.com/fekuna/omnipos-warehouse-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/fekuna/omnipos-warehouse-service/pkg/middleware"
	"github.com/fekuna/omnipos-warehouse-service/pkg/search"
	"github.com/fekuna/omnipos-warehouse-service/pkg/telemetry"

	auditH "github.com/fekuna/omnipos-warehouse-service/internal/auditlog/handler"
	auditUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/auditlog/usecase"

	invH "github.com/fekuna/omnipos-warehouse-service/internal/inventory/handler"
	invUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/inventory/usecase"

	poH "github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/handler"
	poUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/usecase"

	smH "github.com/fekuna/omnipos-warehouse-service/internal/stockmovement/handler"
	smUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/stockmovement/usecase"

	slH "github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/handler"
	slUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/usecase"

	userH "github.com/fekuna/omnipos-warehouse-service/internal/user/handler"
	userUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/user/usecase"

	whH "github.com/fekuna/omnipos-warehouse-service/internal/warehouse/handler"
	whUCPkg "github.com/fekuna/omnipos-warehouse-service/internal/warehouse/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const version = "1.0.0"

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if cfg.JWT.SecretKey == "SuperSecretKeyForDev12345" && !cfg.IsDevelopment() {
		appLogger.Warn("JWT_KEY is not set, using the development signing key")
	}

	// 3. Initialize Telemetry
	ctx := context.Background()
	providers, err := telemetry.Init(ctx, &telemetry.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		appLogger.Fatal("Could not initialize telemetry", zap.Error(err))
	}

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		URL:             cfg.Postgres.URL,
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := store.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Could not apply database schema", zap.Error(err))
		}
		appLogger.Info("Database schema is up to date")
	}

	// 5. Initialize Store
	st := store.New(db, store.RetryPolicy{
		MaxRetries: cfg.Postgres.TxMaxRetries,
		MaxDelay:   cfg.Postgres.TxMaxRetryDelay,
	}, appLogger)

	// 6. Initialize optional infrastructure
	redisClient, err := cache.NewRedisClient(&cache.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, statistics will not be cached", zap.Error(err))
	} else {
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var producer *broker.KafkaProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	var esClient *search.Client
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err == nil {
			err = invUCPkg.EnsureIndex(ctx, esClient, cfg.Elastic.Index)
		}
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, inventory search uses the database", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize UseCases
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)

	userUC := userUCPkg.NewUserUseCase(st, tokens, appLogger, bcrypt.DefaultCost)
	whUC := whUCPkg.NewWarehouseUseCase(st, producer, appLogger)
	slUC := slUCPkg.NewStorageLocationUseCase(st, redisClient, cfg.Redis.StatsTTL, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(st, esClient, producer, cfg.Elastic.Index, appLogger)
	poUC := poUCPkg.NewPurchaseOrderUseCase(st, producer, appLogger)
	auditUC := auditUCPkg.NewAuditLogUseCase(st.Repositories().AuditLogs(), appLogger)
	smUC := smUCPkg.NewStockMovementUseCase(st.Repositories().StockMovements(), appLogger)

	// 8. Build the GraphQL schema
	registry := gql.NewRegistry(appLogger, cfg.IsDevelopment())
	for _, h := range []gql.Registrar{
		userH.NewUserHandler(userUC, appLogger),
		whH.NewWarehouseHandler(whUC, appLogger),
		slH.NewStorageLocationHandler(slUC, appLogger),
		invH.NewInventoryHandler(invUC, appLogger),
		poH.NewPurchaseOrderHandler(poUC, appLogger),
		auditH.NewAuditLogHandler(auditUC, appLogger),
		smH.NewStockMovementHandler(smUC, appLogger),
	} {
		h.Register(registry)
	}
	schema, err := registry.Schema()
	if err != nil {
		appLogger.Fatal("Invalid GraphQL schema", zap.Error(err))
	}
	queries, mutations := registry.Names()
	appLogger.Info("GraphQL schema built", zap.Strings("queries", queries), zap.Strings("mutations", mutations))

	// 9. Start HTTP Server
	router := server.NewRouter(server.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Development:    cfg.IsDevelopment(),
	}, server.Dependencies{
		Tokens:  tokens,
		GraphQL: gql.NewHandler(schema, appLogger).Serve,
		Export:  invH.NewExportHandler(invUC, appLogger).Export,
		Ping:    st.Ping,
	}, appLogger)

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	// 10. Start gRPC Server
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryLoggingInterceptor(appLogger)),
	)
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()

	if producer != nil {
		if err := producer.Close(); err != nil {
			appLogger.Error("Kafka producer close", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Redis close", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Database close", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Telemetry shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
