package main

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/rates"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
	srepo "github.com/radieske/matka-bet-platform-poc/internal/settlement/repo"
	wcache "github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/cache"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/consumer"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/pubsub"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/wallethttp"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/cache"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/config"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/db"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/kafka"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/lock"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/logger"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/metrics"
)

// Métricas Prometheus do worker de liquidação
var (
	consumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_results_consumed_total",
		Help: "Eventos result_entered consumidos",
	})
	settled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_rounds_settled_total",
		Help: "Rodadas liquidadas com sucesso",
	})
	errorsByPhase = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_errors_total",
		Help: "Erros por fase do processamento",
	}, []string{"phase"})
)

func main() {
	cfg := config.Load()
	log, err := logger.New("settlement-worker", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", "settlement-worker"), zap.String("env", cfg.Env))

	// Postgres: apostas, resultados, backups e rates
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis: marca de rodada liquidada e broadcast pro WebSocket
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka: consome result_entered, publica round_settled e DLQ
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicResultEntered, "settlement-worker")
	defer reader.Close()

	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicRoundSettled)
	defer settledWriter.Close()

	dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicResultEnteredDLQ)
	defer dlqWriter.Close()

	// Créditos e leituras de saldo passam pelo wallet-service, nunca
	// direto no banco dele
	walletURL := os.Getenv("WALLET_URL")
	if walletURL == "" {
		walletURL = "http://localhost:8082"
	}
	wcli := wallethttp.New(walletURL)

	// Lock distribuído por rodada: serializa liquidação e restore mesmo
	// quando o restore parte do result-service
	roundLocks := lock.NewRedisRound(rdb, 30*time.Second)

	betStore := srepo.NewBets(pg)
	backupStore := srepo.NewBackups(pg)
	backups := settlement.NewBackupManager(log, betStore, wcli, backupStore, roundLocks)
	rateTable := rates.NewTable(rates.NewCachedRepo(rates.NewPostgres(pg), rdb, 5*time.Minute))

	engine := settlement.NewEngine(log, betStore, wcli, srepo.NewResults(pg), rateTable, backups, roundLocks)

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	proc := &consumer.Processor{
		Log:           log,
		Reader:        reader,
		Engine:        engine,
		Locks:         lock.NewKeyed(),
		Cache:         wcache.NewRedisCache(rdb),
		Broadcaster:   pubsub.NewRedisBroadcaster(rdb),
		SettledWriter: settledWriter,
		DLQWriter:     dlqWriter,

		OnConsumed: func() { consumed.Inc() },
		OnSettled:  func() { settled.Inc() },
		OnError:    func(phase string) { errorsByPhase.WithLabelValues(phase).Inc() },
	}

	log.Info("settlement-worker started",
		zap.String("consume", cfg.TopicResultEntered),
		zap.String("publish", cfg.TopicRoundSettled),
	)

	if err := proc.Run(context.Background()); err != nil {
		log.Fatal("processor stopped", zap.Error(err))
	}
}
