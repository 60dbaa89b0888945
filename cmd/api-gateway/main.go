package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/shared/config"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/logger"
)

func rp(to string) *httputil.ReverseProxy {
	u, _ := url.Parse(to)
	return httputil.NewSingleHostReverseProxy(u)
}

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// targets
	walletURL := os.Getenv("WALLET_URL")
	if walletURL == "" {
		walletURL = "http://localhost:8082"
	}
	betURL := os.Getenv("BET_URL")
	if betURL == "" {
		betURL = "http://localhost:8083"
	}
	resultURL := os.Getenv("RESULT_URL")
	if resultURL == "" {
		resultURL = "http://localhost:8084"
	}
	mux := newMux(rp(walletURL), rp(betURL), rp(resultURL))

	addr := ":" + cfg.HTTPPort
	log.Info("api-gateway listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

// newMux roteia /api/* pro serviço dono do recurso, sempre tirando só o
// prefixo /api: o path que chega no backend é o mesmo que ele registra.
func newMux(wallet, bet, result http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// wallet (ex.: /api/wallet/deposit -> wallet-service /wallet/deposit)
	mux.Handle("/api/wallet", http.StripPrefix("/api", wallet))
	mux.Handle("/api/wallet/", http.StripPrefix("/api", wallet))

	// bets e pattis (ex.: /api/bets/{id} -> bet-service /bets/{id})
	mux.Handle("/api/bets", http.StripPrefix("/api", bet))
	mux.Handle("/api/bets/", http.StripPrefix("/api", bet))
	mux.Handle("/api/pattis", http.StripPrefix("/api", bet))
	mux.Handle("/api/pattis/", http.StripPrefix("/api", bet))

	// resultados, backups, restore e rates (ex.: /api/v1/results -> result-service /v1/results)
	mux.Handle("/api/v1/", http.StripPrefix("/api", result))

	return mux
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
