// Command matchmakerd runs the matchmaking service: the JoinQueue HTTP front
// door, the gRPC health surface, and the periodic matchmaking worker.
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/riftkeep/matchmaker/internal/auth"
	"github.com/riftkeep/matchmaker/internal/config"
	"github.com/riftkeep/matchmaker/internal/ingress"
	"github.com/riftkeep/matchmaker/internal/launcher"
	matchmakermetrics "github.com/riftkeep/matchmaker/internal/metrics"
	"github.com/riftkeep/matchmaker/internal/queue"
	"github.com/riftkeep/matchmaker/internal/regions"
	"github.com/riftkeep/matchmaker/internal/rpc"
	"github.com/riftkeep/matchmaker/internal/skillclient"
	"github.com/riftkeep/matchmaker/internal/worker"
)

const serviceName = "matchmaker"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := queue.NewRedisStore(redisClient)

	skillDialer := skillclient.New(cfg.SkillOracleBaseURL)
	skillClient, err := skillDialer.Dial(context.Background(), cfg.SkillOracleAPIKey)
	if err != nil {
		logger.Fatal("failed to authenticate with skill oracle", zap.Error(err))
	}

	verifier := auth.NewVerifier(cfg.SessionTokenKey)
	reg := prometheus.NewRegistry()
	m := matchmakermetrics.New(reg)

	joinService := ingress.New(store, skillClient, logger, m)
	regionsRegistry := regions.New(store)
	launch := launcher.NewLogLauncher(logger)
	w := worker.New(store, regionsRegistry, launch, logger, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx, cfg.WorkerInterval)
	go runHTTPServer(ctx, cfg, verifier, joinService, reg, logger)
	go runGRPCHealthServer(ctx, cfg, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping worker and servers")
	cancel()
	time.Sleep(200 * time.Millisecond)
}

func runHTTPServer(ctx context.Context, cfg config.Config, verifier *auth.Verifier, joinService *ingress.Service, reg *prometheus.Registry, logger *zap.Logger) {
	router := rpc.NewRouter(verifier, joinService, logger)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("http server listening", zap.Int("port", cfg.HTTPPort))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("http server failed", zap.Error(err))
	}
}

func runGRPCHealthServer(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCHealthPort))
	if err != nil {
		logger.Error("failed to listen for grpc health server", zap.Error(err))
		return
	}

	grpcServer := grpc.NewServer()
	healthSvc := rpc.NewHealthService(serviceName)
	healthpb.RegisterHealthServer(grpcServer, healthSvc)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	logger.Info("grpc health server listening", zap.Int("port", cfg.GRPCHealthPort))
	if err := grpcServer.Serve(lis); err != nil {
		logger.Error("grpc health server failed", zap.Error(err))
	}
}

