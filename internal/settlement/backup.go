package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// BackupManager tira o snapshot do estado afetado por uma liquidação e
// consegue reaplicá-lo depois (undo completo da liquidação).
type BackupManager struct {
	log     *zap.Logger
	bets    BetStore
	wallets WalletStore
	store   BackupStore
	locks   RoundLocker
}

func NewBackupManager(log *zap.Logger, bets BetStore, wallets WalletStore, store BackupStore, locks RoundLocker) *BackupManager {
	return &BackupManager{log: log, bets: bets, wallets: wallets, store: store, locks: locks}
}

// Backup snapshota as apostas Pending da rodada e o saldo atual dos donos
// delas. Não muta aposta nem carteira. Retorna também o snapshot de apostas
// pra liquidação usar a mesma visão que foi salva.
func (m *BackupManager) Backup(ctx context.Context, gameID string, roundNumber int) (string, []Bet, error) {
	pending, err := m.bets.FindPending(ctx, gameID, roundNumber)
	if err != nil {
		return "", nil, fmt.Errorf("find pending bets: %w", err)
	}

	// donos distintos das apostas pendentes
	balances := make(map[string]int64)
	for _, b := range pending {
		if _, ok := balances[b.UserID]; ok {
			continue
		}
		bal, err := m.wallets.GetBalance(ctx, b.UserID)
		if err != nil {
			return "", nil, fmt.Errorf("read balance of %s: %w", b.UserID, err)
		}
		balances[b.UserID] = bal
	}

	now := time.Now()
	backup := Backup{
		ID:          fmt.Sprintf("%s_%d_%d", gameID, roundNumber, now.UnixMilli()),
		GameID:      gameID,
		RoundNumber: roundNumber,
		Bets:        pending,
		Balances:    balances,
		CreatedAt:   now,
	}

	if err := m.store.Put(ctx, backup); err != nil {
		return "", nil, fmt.Errorf("persist backup: %w", err)
	}

	m.log.Info("settlement backup created",
		zap.String("backupId", backup.ID),
		zap.Int("bets", len(pending)),
		zap.Int("users", len(balances)),
	)
	return backup.ID, pending, nil
}

// ListBackups retorna os backups da rodada, mais recente primeiro.
func (m *BackupManager) ListBackups(ctx context.Context, gameID string, roundNumber int) ([]Backup, error) {
	return m.store.Query(ctx, gameID, roundNumber)
}

// Restore reaplica um backup: força cada aposta do snapshot de volta a
// Pending (hard reset, não merge) e grava o saldo absoluto de cada usuário.
//
// A gravação absoluta de saldo só faz sentido se nenhuma outra liquidação
// ou aposta mexeu na carteira desde o backup. Limitação conhecida do
// restore por snapshot.
//
// Se algum saldo falhar, os demais continuam e o report lista exatamente
// quem não foi restaurado (erro ErrRestoreIncomplete).
func (m *BackupManager) Restore(ctx context.Context, backupID string) (*RestoreReport, error) {
	backup, err := m.store.Get(ctx, backupID)
	if err != nil {
		return nil, err
	}

	// trava a rodada: um restore nunca corre junto com a liquidação
	// dela, nem quando os dois partem de processos diferentes
	release, err := m.locks.AcquireRound(ctx, backup.GameID, backup.RoundNumber)
	if err != nil {
		return nil, fmt.Errorf("acquire round lock: %w", err)
	}
	defer release()

	patches := make([]BetPatch, 0, len(backup.Bets))
	for _, b := range backup.Bets {
		patches = append(patches, resetPatch(b.ID))
	}
	if err := m.bets.BatchUpdate(ctx, patches); err != nil {
		return nil, &BatchUpdateError{Err: err}
	}

	report := &RestoreReport{
		BackupID:     backupID,
		GameID:       backup.GameID,
		RoundNumber:  backup.RoundNumber,
		BetsRestored: len(patches),
	}

	// ordem estável pra logs e retries reproduzíveis
	userIDs := make([]string, 0, len(backup.Balances))
	for userID := range backup.Balances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	ref := "restore:" + backupID
	for _, userID := range userIDs {
		balance := backup.Balances[userID]
		if err := m.wallets.SetBalance(ctx, userID, balance, ref); err != nil {
			m.log.Error("balance restore failed",
				zap.String("userId", userID),
				zap.Int64("balance_cents", balance),
				zap.Error(err),
			)
			report.Failures = append(report.Failures, RestoreFailure{
				UserID:       userID,
				BalanceCents: balance,
				Reason:       err.Error(),
			})
			continue
		}
		report.BalancesRestored++
	}

	m.log.Info("backup restored",
		zap.String("backupId", backupID),
		zap.Int("betsRestored", report.BetsRestored),
		zap.Int("balancesRestored", report.BalancesRestored),
		zap.Int("failures", len(report.Failures)),
	)

	if len(report.Failures) > 0 {
		return report, ErrRestoreIncomplete
	}
	return report, nil
}
