package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBackupSnapshotaApostasESaldos(t *testing.T) {
	bets := newFakeBetStore(
		pendingBet("b1", "u1", BetTypeSingle, "2", 1000),
		pendingBet("b2", "u1", BetTypeJuri, "2-8", 500),
		pendingBet("b3", "u2", BetTypePatti, "237", 300),
	)
	wallets := newFakeWalletStore(map[string]int64{"u1": 7000, "u2": 900})
	store := &fakeBackupStore{}
	m := NewBackupManager(zap.NewNop(), bets, wallets, store, newFakeRoundLocker())

	id, pending, err := m.Backup(context.Background(), "g1", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, pending, 3)

	require.Len(t, store.backups, 1)
	b := store.backups[0]
	assert.Equal(t, id, b.ID)
	assert.Equal(t, "g1", b.GameID)
	assert.Equal(t, 1, b.RoundNumber)
	assert.Len(t, b.Bets, 3)

	// um saldo por dono distinto, capturado antes de qualquer mutação
	assert.Equal(t, map[string]int64{"u1": 7000, "u2": 900}, b.Balances)
	assert.WithinDuration(t, time.Now(), b.CreatedAt, time.Minute)
}

func TestBackupNaoMutaNada(t *testing.T) {
	bets := newFakeBetStore(pendingBet("b1", "u1", BetTypeSingle, "2", 1000))
	wallets := newFakeWalletStore(map[string]int64{"u1": 7000})
	m := NewBackupManager(zap.NewNop(), bets, wallets, &fakeBackupStore{}, newFakeRoundLocker())

	_, _, err := m.Backup(context.Background(), "g1", 1)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, bets.get("b1").Status)
	assert.Equal(t, int64(7000), wallets.balance("u1"))
}

func TestListBackupsMaisRecentePrimeiro(t *testing.T) {
	bets := newFakeBetStore()
	wallets := newFakeWalletStore(nil)
	store := &fakeBackupStore{}
	m := NewBackupManager(zap.NewNop(), bets, wallets, store, newFakeRoundLocker())

	store.backups = []Backup{
		{ID: "old", GameID: "g1", RoundNumber: 1, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "new", GameID: "g1", RoundNumber: 1, CreatedAt: time.Now()},
		{ID: "other", GameID: "g2", RoundNumber: 1, CreatedAt: time.Now()},
	}

	got, err := m.ListBackups(context.Background(), "g1", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestRestoreBackupInexistente(t *testing.T) {
	m := NewBackupManager(zap.NewNop(), newFakeBetStore(), newFakeWalletStore(nil), &fakeBackupStore{}, newFakeRoundLocker())

	_, err := m.Restore(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestRestoreHardReset(t *testing.T) {
	// aposta já liquidada como Won; restore força Pending de qualquer estado
	res := "372"
	now := time.Now()
	won := pendingBet("b1", "u1", BetTypeSingle, "2", 1000)
	won.Status = StatusWon
	won.Result = &res
	won.WinCents = 90000
	won.SettledAt = &now

	bets := newFakeBetStore(won)
	wallets := newFakeWalletStore(map[string]int64{"u1": 95000})
	store := &fakeBackupStore{}
	store.backups = []Backup{{
		ID:          "g1_1_123",
		GameID:      "g1",
		RoundNumber: 1,
		Bets:        []Bet{pendingBet("b1", "u1", BetTypeSingle, "2", 1000)},
		Balances:    map[string]int64{"u1": 5000},
		CreatedAt:   now,
	}}
	m := NewBackupManager(zap.NewNop(), bets, wallets, store, newFakeRoundLocker())

	report, err := m.Restore(context.Background(), "g1_1_123")
	require.NoError(t, err)
	assert.Equal(t, 1, report.BetsRestored)
	assert.Equal(t, 1, report.BalancesRestored)
	assert.Empty(t, report.Failures)

	restored := bets.get("b1")
	assert.Equal(t, StatusPending, restored.Status)
	assert.Nil(t, restored.Result)
	assert.Equal(t, int64(0), restored.WinCents)
	assert.Nil(t, restored.SettledAt)

	// saldo gravado com o valor absoluto do snapshot, não delta
	assert.Equal(t, int64(5000), wallets.balance("u1"))
}

func TestRestoreIdempotente(t *testing.T) {
	now := time.Now()
	bets := newFakeBetStore(pendingBet("b1", "u1", BetTypeSingle, "2", 1000))
	wallets := newFakeWalletStore(map[string]int64{"u1": 5000})
	store := &fakeBackupStore{}
	store.backups = []Backup{{
		ID:          "g1_1_123",
		GameID:      "g1",
		RoundNumber: 1,
		Bets:        []Bet{pendingBet("b1", "u1", BetTypeSingle, "2", 1000)},
		Balances:    map[string]int64{"u1": 5000},
		CreatedAt:   now,
	}}
	m := NewBackupManager(zap.NewNop(), bets, wallets, store, newFakeRoundLocker())

	for i := 0; i < 3; i++ {
		report, err := m.Restore(context.Background(), "g1_1_123")
		require.NoError(t, err)
		assert.Equal(t, 1, report.BetsRestored)
	}

	assert.Equal(t, StatusPending, bets.get("b1").Status)
	assert.Equal(t, int64(5000), wallets.balance("u1"))
}

func TestRestoreReportaSaldosNaoRestaurados(t *testing.T) {
	now := time.Now()
	bets := newFakeBetStore(
		pendingBet("b1", "u1", BetTypeSingle, "2", 1000),
		pendingBet("b2", "u2", BetTypeSingle, "3", 1000),
	)
	wallets := newFakeWalletStore(map[string]int64{"u1": 0, "u2": 0})
	wallets.failSet["u1"] = true
	store := &fakeBackupStore{}
	store.backups = []Backup{{
		ID:          "g1_1_123",
		GameID:      "g1",
		RoundNumber: 1,
		Bets: []Bet{
			pendingBet("b1", "u1", BetTypeSingle, "2", 1000),
			pendingBet("b2", "u2", BetTypeSingle, "3", 1000),
		},
		Balances:  map[string]int64{"u1": 5000, "u2": 4000},
		CreatedAt: now,
	}}
	m := NewBackupManager(zap.NewNop(), bets, wallets, store, newFakeRoundLocker())

	report, err := m.Restore(context.Background(), "g1_1_123")
	require.ErrorIs(t, err, ErrRestoreIncomplete)
	require.NotNil(t, report)

	// u2 restaurado mesmo com u1 falhando; falha identificada no report
	assert.Equal(t, 1, report.BalancesRestored)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "u1", report.Failures[0].UserID)
	assert.Equal(t, int64(5000), report.Failures[0].BalanceCents)
	assert.Equal(t, int64(4000), wallets.balance("u2"))
}
