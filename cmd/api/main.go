package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/justcarpets/ads-monitor-api/infrastructure/cache"
	"github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads"
	"github.com/justcarpets/ads-monitor-api/infrastructure/integrator/googleads/adsclient"
	"github.com/justcarpets/ads-monitor-api/internal/api"
	"github.com/justcarpets/ads-monitor-api/internal/config"
	"github.com/justcarpets/ads-monitor-api/internal/scheduler"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/detecting"
	"github.com/justcarpets/ads-monitor-api/internal/usecases/insighting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newCacheStore(ctx, cfg)

	tokenManager := adsclient.NewTokenManager(cfg)
	adsClient := adsclient.NewClient(cfg, tokenManager)
	adsIntegrator := googleads.New(cfg, adsClient)

	clock := insighting.SystemClock{}
	resolver := insighting.NewPeriodResolver(clock)

	insightService := insighting.NewService(cfg, adsIntegrator, resolver, store, clock)
	detectorService := detecting.NewService(cfg, adsIntegrator, resolver, store, clock)

	anomalyScanService := scheduler.NewAnomalyScanService(detectorService, cfg)

	// Inicia o agendador em background
	if err := anomalyScanService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da varredura de anomalias")
	} else {
		logrus.Info("Agendador da varredura de anomalias iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		insightService,
		detectorService,
		anomalyScanService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newCacheStore escolhe o backend do cache: Redis quando configurado, memória
// local caso contrário
func newCacheStore(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.Cache.RedisAddr == "" {
		logrus.Info("Cache Redis não configurado, usando cache em memória")
		return cache.NewMemoryStore()
	}

	redisStore := cache.NewRedisStore(cfg.Cache)
	if err := redisStore.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("Erro ao conectar ao Redis, usando cache em memória")
		return cache.NewMemoryStore()
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return redisStore
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
