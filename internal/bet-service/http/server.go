package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/bet-service/dto"
	"github.com/radieske/matka-bet-platform-poc/internal/bet-service/repo"
	"github.com/radieske/matka-bet-platform-poc/internal/bet-service/wallet"
	"github.com/radieske/matka-bet-platform-poc/pkg/contracts/events"
	"github.com/radieske/matka-bet-platform-poc/pkg/patti"
)

// Interfaces locais dos colaboradores do handler; os tipos concretos
// (repo.Postgres, rounds.Validator, wallet.Client) já as satisfazem.
type BetRepo interface {
	CreatePending(ctx context.Context, b *repo.Bet) error
	GetByID(ctx context.Context, id string) (*repo.Bet, error)
	List(ctx context.Context, userID, gameID string, roundNumber int) ([]repo.Bet, error)
}

type RoundGuard interface {
	IsSettled(ctx context.Context, gameID string, roundNumber int) (bool, error)
}

type WalletClient interface {
	Stake(ctx context.Context, userID string, amountCents int64, externalRef string) (int64, error)
	Refund(ctx context.Context, userID string, amountCents int64, betID string) error
}

type Publisher interface {
	PublishBetPlaced(context.Context, events.BetPlaced) error
}

type Server struct {
	log    *zap.Logger
	repo   BetRepo
	rounds RoundGuard
	wcli   WalletClient
	publ   Publisher
}

func NewServer(log *zap.Logger, r BetRepo, v RoundGuard, w WalletClient, p Publisher) *Server {
	return &Server{log: log, repo: r, rounds: v, wcli: w, publ: p}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bets", s.bets)              // POST place, GET ?userId=...
	mux.HandleFunc("/bets/", s.getBet)           // GET /bets/{id}
	mux.HandleFunc("/pattis", s.listPattis)      // GET
	mux.HandleFunc("/pattis/groups", s.pattiGroups) // GET
	return mux
}

func (s *Server) bets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.placeBet(w, r)
	case http.MethodGet:
		s.listBets(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.GameID == "" || req.RoundNumber <= 0 || req.StakeCents <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !validSelection(req.BetType, req.Selection) {
		http.Error(w, "invalid selection for bet type "+req.BetType, http.StatusBadRequest)
		return
	}

	// 1) Rejeita apostas em rodada já liquidada (chave no Redis)
	settled, err := s.rounds.IsSettled(r.Context(), req.GameID, req.RoundNumber)
	if err == nil && settled {
		http.Error(w, "round already settled", http.StatusConflict)
		return
	}

	// 2) Debita o stake antes do insert; external_ref = betID pré-gerado
	betID := uuid.NewString()
	newBal, err := s.wcli.Stake(r.Context(), req.UserID, req.StakeCents, betID)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			http.Error(w, "insufficient funds", http.StatusConflict)
			return
		}
		http.Error(w, "wallet stake failed", http.StatusBadGateway)
		return
	}

	// 3) Persiste aposta Pending; se falhar, devolve o débito
	if err := s.repo.CreatePending(r.Context(), &repo.Bet{
		ID:          betID,
		UserID:      req.UserID,
		GameID:      req.GameID,
		RoundNumber: req.RoundNumber,
		BetType:     req.BetType,
		Selection:   req.Selection,
		StakeCents:  req.StakeCents,
	}); err != nil {
		s.log.Error("create bet falhou; devolvendo stake", zap.String("betId", betID), zap.Error(err))
		if rerr := s.wcli.Refund(r.Context(), req.UserID, req.StakeCents, betID); rerr != nil {
			s.log.Error("refund falhou", zap.String("betId", betID), zap.Error(rerr))
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// 4) Publica evento bet_placed
	_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
		BetID:       betID,
		UserID:      req.UserID,
		GameID:      req.GameID,
		RoundNumber: req.RoundNumber,
		BetType:     req.BetType,
		Selection:   req.Selection,
		StakeCents:  req.StakeCents,
		StakeRef:    betID,
	})

	writeJSON(w, dto.PlaceBetResponse{
		BetID:           betID,
		Status:          "Pending",
		NewBalanceCents: &newBal,
	})
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// path: /bets/{id}
	id := r.URL.Path[len("/bets/"):]
	if id == "" {
		http.Error(w, "betId required", http.StatusBadRequest)
		return
	}

	b, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, toBetResponse(b))
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}
	gameID := r.URL.Query().Get("gameId")
	round := 0
	if v := r.URL.Query().Get("roundNumber"); v != "" {
		round, _ = strconv.Atoi(v)
	}

	bets, err := s.repo.List(r.Context(), userID, gameID, round)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]dto.BetResponse, 0, len(bets))
	for i := range bets {
		out = append(out, toBetResponse(&bets[i]))
	}
	writeJSON(w, out)
}

// listPattis retorna as 220 combinações válidas em ordem canônica
func (s *Server) listPattis(w http.ResponseWriter, r *http.Request) {
	combos := patti.AllCombinations()
	writeJSON(w, dto.PattiListResponse{Combinations: combos, Total: len(combos)})
}

// pattiGroups retorna as combinações agrupadas pelo último dígito da soma
func (s *Server) pattiGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, dto.PattiGroupsResponse{Groups: patti.Groups()})
}

// validSelection valida a seleção conforme o tipo de aposta
func validSelection(betType, selection string) bool {
	switch betType {
	case "single":
		return patti.IsDigit(selection)
	case "patti":
		return patti.IsCombination(selection)
	case "juri":
		a, b, ok := strings.Cut(selection, "-")
		return ok && patti.IsDigit(a) && patti.IsDigit(b)
	default:
		return false
	}
}

func toBetResponse(b *repo.Bet) dto.BetResponse {
	return dto.BetResponse{
		BetID:       b.ID,
		UserID:      b.UserID,
		GameID:      b.GameID,
		RoundNumber: b.RoundNumber,
		BetType:     b.BetType,
		Selection:   b.Selection,
		StakeCents:  b.StakeCents,
		Status:      b.Status,
		Result:      b.Result,
		WinCents:    b.WinCents,
		PlacedAt:    b.PlacedAt,
		SettledAt:   b.SettledAt,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
