package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/shared/config"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/logger"
	"github.com/radieske/matka-bet-platform-poc/pkg/patti"
)

var (
	// Catálogo fixo de jogos e usuários simulados
	gameCatalog = []string{"kalyan", "milan-day", "rajdhani-night"}
	userCatalog = []string{"sim_user_01", "sim_user_02", "sim_user_03", "sim_user_04", "sim_user_05"}

	// Métricas Prometheus do gerador de carga
	betsPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_bets_placed_total",
		Help: "Apostas simuladas aceitas pelo bet-service",
	})
	betsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_bets_rejected_total",
		Help: "Apostas simuladas recusadas",
	})
	resultsEntered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_results_entered_total",
		Help: "Resultados simulados enviados ao result-service",
	})
)

// simulator gera carga realista: deposita, aposta e fecha rodadas
type simulator struct {
	log       *zap.Logger
	http      *http.Client
	walletURL string
	betURL    string
	resultURL string

	rounds map[string]int // gameId -> rodada corrente
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	cfg := config.Load()
	log, err := logger.New("bet-simulator", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	rand.Seed(time.Now().UnixNano())

	prometheus.MustRegister(betsPlaced, betsRejected, resultsEntered)

	sim := &simulator{
		log:       log,
		http:      &http.Client{Timeout: 5 * time.Second},
		walletURL: envOr("WALLET_URL", "http://localhost:8082"),
		betURL:    envOr("BET_URL", "http://localhost:8083"),
		resultURL: envOr("RESULT_URL", "http://localhost:8084"),
		rounds:    make(map[string]int),
	}
	for _, g := range gameCatalog {
		sim.rounds[g] = 1
	}

	// Saldo inicial pros usuários simulados
	sim.seedWallets()

	// Apostas aleatórias a cada 2 segundos
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			sim.placeRandomBet()
		}
	}()

	// Fecha uma rodada aleatória a cada 30 segundos
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			sim.enterRandomResult()
		}
	}()

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsAddr := fmt.Sprintf(":%s", cfg.MetricsPort)
	log.Info("bet simulator running",
		zap.String("addr", metricsAddr),
		zap.Strings("games", gameCatalog),
	)
	if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
		log.Fatal("metrics server error", zap.Error(err))
	}
}

// seedWallets deposita saldo inicial em cada usuário simulado
func (s *simulator) seedWallets() {
	for _, u := range userCatalog {
		// cria a carteira
		resp, err := s.http.Get(s.walletURL + "/wallet?userId=" + u)
		if err != nil {
			s.log.Warn("wallet create failed", zap.String("userId", u), zap.Error(err))
			continue
		}
		resp.Body.Close()

		body, _ := json.Marshal(map[string]any{
			"user_id":      u,
			"amount_cents": int64(100_000_00),
			"external_ref": fmt.Sprintf("seed:%s:%d", u, time.Now().UnixMilli()),
		})
		if err := s.post(s.walletURL+"/wallet/deposit", body); err != nil {
			s.log.Warn("seed deposit failed", zap.String("userId", u), zap.Error(err))
		}
	}
	s.log.Info("wallets seeded", zap.Int("users", len(userCatalog)))
}

// placeRandomBet escolhe usuário, jogo e tipo de aposta ao acaso
func (s *simulator) placeRandomBet() {
	user := userCatalog[rand.Intn(len(userCatalog))]
	game := gameCatalog[rand.Intn(len(gameCatalog))]

	betType, selection := randomSelection()
	payload, _ := json.Marshal(map[string]any{
		"userId":      user,
		"gameId":      game,
		"roundNumber": s.rounds[game],
		"betType":     betType,
		"selection":   selection,
		"stake_cents": int64((rand.Intn(20) + 1) * 100),
	})

	if err := s.post(s.betURL+"/bets", payload); err != nil {
		betsRejected.Inc()
		s.log.Debug("bet rejected", zap.String("userId", user), zap.Error(err))
		return
	}
	betsPlaced.Inc()
}

// enterRandomResult digita um resultado de 3 dígitos e avança a rodada
func (s *simulator) enterRandomResult() {
	game := gameCatalog[rand.Intn(len(gameCatalog))]
	round := s.rounds[game]

	digits := []string{
		patti.AllowedDigits[rand.Intn(len(patti.AllowedDigits))],
		patti.AllowedDigits[rand.Intn(len(patti.AllowedDigits))],
		patti.AllowedDigits[rand.Intn(len(patti.AllowedDigits))],
	}
	result := strings.Join(digits, "")

	payload, _ := json.Marshal(map[string]any{
		"gameId":      game,
		"roundNumber": round,
		"result":      result,
		"enteredBy":   "bet-simulator",
	})
	if err := s.post(s.resultURL+"/v1/results", payload); err != nil {
		s.log.Warn("enter result failed", zap.String("gameId", game), zap.Error(err))
		return
	}
	resultsEntered.Inc()
	s.rounds[game] = round + 1
	s.log.Info("round closed", zap.String("gameId", game), zap.Int("round", round), zap.String("result", result))
}

// randomSelection sorteia um tipo de aposta e uma seleção válida pra ele
func randomSelection() (string, string) {
	switch rand.Intn(3) {
	case 0:
		return "single", patti.AllowedDigits[rand.Intn(len(patti.AllowedDigits))]
	case 1:
		combos := patti.AllCombinations()
		return "patti", combos[rand.Intn(len(combos))]
	default:
		a := patti.AllowedDigits[rand.Intn(len(patti.AllowedDigits))]
		b := patti.AllowedDigits[rand.Intn(len(patti.AllowedDigits))]
		return "juri", a + "-" + b
	}
}

func (s *simulator) post(url string, body []byte) error {
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d from %s", resp.StatusCode, url)
	}
	return nil
}
