package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/rates"
	"github.com/radieske/matka-bet-platform-poc/internal/result-service/dto"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement/repo"
	wcache "github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/cache"
	"github.com/radieske/matka-bet-platform-poc/pkg/contracts/events"
)

// API expõe os endpoints REST de resultados, backups e restore
// A entrada de resultado é assíncrona (vai pra fila); o restore é síncrono
type API struct {
	Log     *zap.Logger
	Results *repo.Results
	Backups *settlement.BackupManager
	Rates   *rates.Table
	Rounds  *wcache.RedisCache
	Publ    interface {
		PublishResultEntered(context.Context, events.ResultEntered) error
	}
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/results", a.enterResult)        // Admin digita o resultado da rodada
	r.Get("/v1/results", a.listResults)         // Histórico de resultados de um jogo
	r.Get("/v1/backups", a.listBackups)         // Backups de liquidação de uma rodada
	r.Post("/v1/restore", a.restore)            // Undo de uma liquidação
	r.Get("/v1/rates/{gameId}", a.getRates)     // Multiplicadores efetivos do jogo
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// enterResult valida o resultado digitado e publica no tópico de liquidação
// Responde 202: a liquidação em si acontece no settlement-worker
func (a *API) enterResult(w http.ResponseWriter, r *http.Request) {
	var req dto.EnterResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	if req.GameID == "" || req.RoundNumber <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "gameId and roundNumber required"})
		return
	}
	if !settlement.IsValidResult(req.Result) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "result must be exactly 3 digits"})
		return
	}

	if err := a.Publ.PublishResultEntered(r.Context(), events.ResultEntered{
		GameID:      req.GameID,
		RoundNumber: req.RoundNumber,
		Result:      req.Result,
		EnteredBy:   req.EnteredBy,
	}); err != nil {
		a.Log.Error("publish result_entered falhou", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, dto.EnterResultResponse{
		GameID:      req.GameID,
		RoundNumber: req.RoundNumber,
		Result:      req.Result,
		Status:      "accepted",
	})
}

// listResults retorna o histórico de resultados de um jogo, mais recente primeiro
func (a *API) listResults(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "gameId required"})
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := a.Results.ListByGame(r.Context(), gameID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// listBackups retorna os backups de liquidação de uma rodada, mais recente primeiro
func (a *API) listBackups(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	round, _ := strconv.Atoi(r.URL.Query().Get("roundNumber"))
	if gameID == "" || round <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "gameId and roundNumber required"})
		return
	}
	backups, err := a.Backups.ListBackups(r.Context(), gameID, round)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := make([]dto.BackupSummary, 0, len(backups))
	for _, b := range backups {
		out = append(out, dto.BackupSummary{
			BackupID:    b.ID,
			GameID:      b.GameID,
			RoundNumber: b.RoundNumber,
			Bets:        len(b.Bets),
			Users:       len(b.Balances),
			CreatedAt:   b.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// restore desfaz uma liquidação a partir de um backup, de forma síncrona
// Falha parcial de saldo devolve 409 com o relatório do que ficou de fora
func (a *API) restore(w http.ResponseWriter, r *http.Request) {
	var req dto.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	if req.BackupID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "backupId required"})
		return
	}

	report, err := a.Backups.Restore(r.Context(), req.BackupID)
	if report != nil {
		// as apostas voltaram a Pending; reabre a rodada pra novas apostas
		if cerr := a.Rounds.ClearSettled(r.Context(), report.GameID, report.RoundNumber); cerr != nil {
			a.Log.Warn("clear settled mark falhou", zap.String("backupId", req.BackupID), zap.Error(cerr))
		}
	}
	if err != nil {
		if errors.Is(err, settlement.ErrBackupNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "backup not found"})
			return
		}
		if errors.Is(err, settlement.ErrRestoreIncomplete) {
			writeJSON(w, http.StatusConflict, dto.RestoreResponse{Report: report, Partial: true})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.RestoreResponse{Report: report})
}

// getRates retorna os multiplicadores efetivos (configurado ou default) do jogo
func (a *API) getRates(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameId")
	rs, err := a.Rates.RatesFor(r.Context(), gameID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rs)
}
