package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/bet-service/dto"
	"github.com/radieske/matka-bet-platform-poc/internal/bet-service/repo"
	"github.com/radieske/matka-bet-platform-poc/internal/bet-service/wallet"
	"github.com/radieske/matka-bet-platform-poc/pkg/contracts/events"
)

// stubs dos colaboradores do handler; ops registra a ordem das chamadas

type stubRepo struct {
	ops       *[]string
	createErr error
	created   []repo.Bet
}

func (s *stubRepo) CreatePending(_ context.Context, b *repo.Bet) error {
	if s.ops != nil {
		*s.ops = append(*s.ops, "create")
	}
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, *b)
	return nil
}

func (s *stubRepo) GetByID(context.Context, string) (*repo.Bet, error) {
	return nil, errors.New("não usado no teste")
}

func (s *stubRepo) List(context.Context, string, string, int) ([]repo.Bet, error) {
	return nil, nil
}

type stubRounds struct {
	settled bool
	err     error
}

func (s stubRounds) IsSettled(context.Context, string, int) (bool, error) {
	return s.settled, s.err
}

type stubWallet struct {
	ops      *[]string
	stakeErr error
	balance  int64
	stakes   []string
	refunds  []string
}

func (s *stubWallet) Stake(_ context.Context, _ string, _ int64, externalRef string) (int64, error) {
	if s.ops != nil {
		*s.ops = append(*s.ops, "stake")
	}
	if s.stakeErr != nil {
		return 0, s.stakeErr
	}
	s.stakes = append(s.stakes, externalRef)
	return s.balance, nil
}

func (s *stubWallet) Refund(_ context.Context, _ string, _ int64, betID string) error {
	if s.ops != nil {
		*s.ops = append(*s.ops, "refund")
	}
	s.refunds = append(s.refunds, betID)
	return nil
}

type stubPublisher struct {
	events []events.BetPlaced
}

func (p *stubPublisher) PublishBetPlaced(_ context.Context, e events.BetPlaced) error {
	p.events = append(p.events, e)
	return nil
}

func postBet(t *testing.T, srv *Server, req dto.PlaceBetRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bets", bytes.NewReader(body)))
	return rec
}

func validRequest() dto.PlaceBetRequest {
	return dto.PlaceBetRequest{
		UserID:      "u1",
		GameID:      "g1",
		RoundNumber: 1,
		BetType:     "single",
		Selection:   "7",
		StakeCents:  1000,
	}
}

func TestPlaceBetSaldoInsuficienteNaoPersiste(t *testing.T) {
	// débito recusado: 409 e a aposta nunca chega no banco nem no Kafka
	r := &stubRepo{}
	w := &stubWallet{stakeErr: wallet.ErrInsufficientFunds}
	p := &stubPublisher{}
	srv := NewServer(zap.NewNop(), r, stubRounds{}, w, p)

	rec := postBet(t, srv, validRequest())

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, r.created)
	assert.Empty(t, p.events)
}

func TestPlaceBetDebitaAntesDePersistir(t *testing.T) {
	var ops []string
	r := &stubRepo{ops: &ops}
	w := &stubWallet{ops: &ops, balance: 4000}
	srv := NewServer(zap.NewNop(), r, stubRounds{}, w, &stubPublisher{})

	rec := postBet(t, srv, validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"stake", "create"}, ops)

	// o external_ref do débito é o id da aposta persistida
	require.Len(t, r.created, 1)
	require.Len(t, w.stakes, 1)
	assert.Equal(t, r.created[0].ID, w.stakes[0])
}

func TestPlaceBetInsertFalhouDevolveStake(t *testing.T) {
	r := &stubRepo{createErr: errors.New("insert falhou")}
	w := &stubWallet{balance: 4000}
	p := &stubPublisher{}
	srv := NewServer(zap.NewNop(), r, stubRounds{}, w, p)

	rec := postBet(t, srv, validRequest())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, w.refunds, 1)
	assert.Equal(t, w.stakes[0], w.refunds[0])
	assert.Empty(t, p.events)
}

func TestPlaceBetRodadaLiquidadaRejeita(t *testing.T) {
	var ops []string
	w := &stubWallet{ops: &ops}
	srv := NewServer(zap.NewNop(), &stubRepo{ops: &ops}, stubRounds{settled: true}, w, &stubPublisher{})

	rec := postBet(t, srv, validRequest())

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, ops)
}

func TestPlaceBetPublicaEvento(t *testing.T) {
	w := &stubWallet{balance: 3000}
	p := &stubPublisher{}
	srv := NewServer(zap.NewNop(), &stubRepo{}, stubRounds{}, w, p)

	rec := postBet(t, srv, validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.PlaceBetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Pending", resp.Status)
	require.NotNil(t, resp.NewBalanceCents)
	assert.Equal(t, int64(3000), *resp.NewBalanceCents)

	require.Len(t, p.events, 1)
	assert.Equal(t, resp.BetID, p.events[0].BetID)
	assert.Equal(t, "g1", p.events[0].GameID)
	assert.Equal(t, resp.BetID, p.events[0].StakeRef)
}
