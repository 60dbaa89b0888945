package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/rates"
	rhttp "github.com/radieske/matka-bet-platform-poc/internal/result-service/http"
	rpub "github.com/radieske/matka-bet-platform-poc/internal/result-service/producer"
	"github.com/radieske/matka-bet-platform-poc/internal/result-service/ws"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
	srepo "github.com/radieske/matka-bet-platform-poc/internal/settlement/repo"
	wcache "github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/cache"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/wallethttp"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/cache"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/config"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/db"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/kafka"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/lock"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/logger"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("result-service", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", "result-service"), zap.String("env", cfg.Env))

	// Postgres: resultados, backups e rates
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis: cache de rates e pub/sub do WebSocket
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writer (topic result_entered)
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicResultEntered)
	defer writer.Close()

	// Repositórios e gerenciador de backup
	// O restore mexe em saldo via wallet-service, nunca direto no banco dele
	walletURL := os.Getenv("WALLET_URL")
	if walletURL == "" {
		walletURL = "http://localhost:8082"
	}
	wcli := wallethttp.New(walletURL)
	betStore := srepo.NewBets(pg)
	backupStore := srepo.NewBackups(pg)

	// Lock distribuído por rodada: o restore daqui nunca corre junto com
	// a liquidação da mesma rodada no settlement-worker
	roundLocks := lock.NewRedisRound(rdb, 30*time.Second)
	backups := settlement.NewBackupManager(log, betStore, wcli, backupStore, roundLocks)

	rateTable := rates.NewTable(rates.NewCachedRepo(rates.NewPostgres(pg), rdb, 5*time.Minute))

	api := &rhttp.API{
		Log:     log,
		Results: srepo.NewResults(pg),
		Backups: backups,
		Rates:   rateTable,
		Rounds:  wcache.NewRedisCache(rdb),
		Publ:    rpub.NewKafkaPublisher(writer, cfg.TopicResultEntered),
	}

	// WebSocket: avisos de rodada liquidada via Redis pub/sub
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(context.Background(), rdb, hub)

	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.HandleFunc("/ws", hub.HandleWS)

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort, // ex: 8084
		Handler: mux,
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("result-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
