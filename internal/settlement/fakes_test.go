package settlement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// fakes em memória dos colaboradores do motor, só pra teste

type fakeBetStore struct {
	mu   sync.Mutex
	bets map[string]*Bet

	batchFailures int // falhas antes de aceitar o lote
	batchCalls    int
}

func newFakeBetStore(bets ...Bet) *fakeBetStore {
	s := &fakeBetStore{bets: make(map[string]*Bet)}
	for i := range bets {
		b := bets[i]
		s.bets[b.ID] = &b
	}
	return s
}

func (s *fakeBetStore) FindPending(_ context.Context, gameID string, roundNumber int) ([]Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Bet
	for _, b := range s.bets {
		if b.GameID == gameID && b.RoundNumber == roundNumber && b.Status == StatusPending {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeBetStore) BatchUpdate(_ context.Context, patches []BetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchCalls++
	if s.batchFailures > 0 {
		s.batchFailures--
		return errors.New("transient batch failure")
	}
	for _, p := range patches {
		b, ok := s.bets[p.BetID]
		if !ok {
			return errors.New("bet not found: " + p.BetID)
		}
		b.Status = p.Status
		b.Result = p.Result
		b.WinCents = p.WinCents
		b.SettledAt = p.SettledAt
	}
	return nil
}

func (s *fakeBetStore) get(id string) Bet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.bets[id]
}

type fakeWalletStore struct {
	mu       sync.Mutex
	balances map[string]int64

	failCredit map[string]bool // userID -> falhar crédito
	failSet    map[string]bool // userID -> falhar restore
}

func newFakeWalletStore(balances map[string]int64) *fakeWalletStore {
	if balances == nil {
		balances = make(map[string]int64)
	}
	return &fakeWalletStore{
		balances:   balances,
		failCredit: make(map[string]bool),
		failSet:    make(map[string]bool),
	}
}

func (s *fakeWalletStore) GetBalance(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID], nil
}

func (s *fakeWalletStore) IncrementBalance(_ context.Context, userID string, deltaCents int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCredit[userID] {
		return errors.New("credit refused")
	}
	s.balances[userID] += deltaCents
	return nil
}

func (s *fakeWalletStore) SetBalance(_ context.Context, userID string, balanceCents int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet[userID] {
		return errors.New("set refused")
	}
	s.balances[userID] = balanceCents
	return nil
}

func (s *fakeWalletStore) balance(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID]
}

type fakeResultStore struct {
	mu      sync.Mutex
	records []ResultRecord
}

func (s *fakeResultStore) Put(_ context.Context, rec ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

type fakeRates struct{}

func (fakeRates) MultiplierFor(_ context.Context, _ string, bt BetType) (int64, error) {
	switch bt {
	case BetTypeSingle:
		return 90, nil
	case BetTypePatti:
		return 900, nil
	case BetTypeJuri:
		return 100, nil
	}
	return 0, errors.New("unknown bet type")
}

type fakeBackupStore struct {
	mu      sync.Mutex
	backups []Backup
	failPut bool
}

func (s *fakeBackupStore) Put(_ context.Context, b Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return errors.New("backup store unavailable")
	}
	s.backups = append(s.backups, b)
	return nil
}

func (s *fakeBackupStore) Query(_ context.Context, gameID string, roundNumber int) ([]Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Backup
	for _, b := range s.backups {
		if b.GameID == gameID && b.RoundNumber == roundNumber {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeBackupStore) Get(_ context.Context, backupID string) (*Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.backups {
		if s.backups[i].ID == backupID {
			b := s.backups[i]
			return &b, nil
		}
	}
	return nil, ErrBackupNotFound
}

type fakeRoundLocker struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	acquired []string
}

func newFakeRoundLocker() *fakeRoundLocker {
	return &fakeRoundLocker{locks: map[string]*sync.Mutex{}}
}

func (l *fakeRoundLocker) AcquireRound(_ context.Context, gameID string, roundNumber int) (func(), error) {
	key := fmt.Sprintf("%s:%d", gameID, roundNumber)
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.acquired = append(l.acquired, key)
	l.mu.Unlock()
	m.Lock()
	return m.Unlock, nil
}

func (l *fakeRoundLocker) acquisitions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.acquired))
	copy(out, l.acquired)
	return out
}
