package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Engine liquida rodadas: decide ganho/perda de cada aposta Pending,
// calcula pagamentos e credita os vencedores.
//
// Liquidar sem backup prévio é proibido: o snapshot precisa estar
// persistido antes de qualquer mutação.
type Engine struct {
	log     *zap.Logger
	bets    BetStore
	wallets WalletStore
	results ResultStore
	rates   RateProvider
	backups *BackupManager
	locks   RoundLocker
}

func NewEngine(
	log *zap.Logger,
	bets BetStore,
	wallets WalletStore,
	results ResultStore,
	rates RateProvider,
	backups *BackupManager,
	locks RoundLocker,
) *Engine {
	return &Engine{
		log:     log,
		bets:    bets,
		wallets: wallets,
		results: results,
		rates:   rates,
		backups: backups,
		locks:   locks,
	}
}

// retries do lote de apostas; o lote é sempre reaplicado inteiro
const batchRetries = 3

// SettleRound liquida a rodada (gameID, roundNumber) com o resultado
// digitado. Fluxo:
//  1. backup do estado afetado (aborta tudo se falhar)
//  2. persiste o ResultRecord com o resultado verbatim
//  3. classifica cada aposta Pending e calcula o pagamento
//  4. aplica o lote de apostas, tudo-ou-nada, com retry do lote inteiro
//  5. agrega os ganhos por usuário (um crédito somado por vencedor)
//  6. credita carteiras; falha de um usuário não bloqueia os demais
//
// Reliquidar uma rodada já liquidada é legal: snapshota o que estiver
// Pending agora (tipicamente nada, a menos que um restore tenha revertido).
func (e *Engine) SettleRound(ctx context.Context, gameID string, roundNumber int, result string) (*Outcome, error) {
	if gameID == "" || roundNumber <= 0 {
		return nil, ErrMissingRound
	}
	if !IsValidResult(result) {
		return nil, ErrInvalidResult
	}

	// 0) trava a rodada: liquidação e restore da mesma rodada nunca
	// rodam em paralelo, nem em processos diferentes
	release, err := e.locks.AcquireRound(ctx, gameID, roundNumber)
	if err != nil {
		return nil, fmt.Errorf("acquire round lock: %w", err)
	}
	defer release()

	// 1) backup obrigatório antes de qualquer mutação
	backupID, pending, err := e.backups.Backup(ctx, gameID, roundNumber)
	if err != nil {
		return nil, &BackupError{Err: err}
	}

	// 2) resultado exatamente como digitado, sem reordenar dígitos
	rec := ResultRecord{
		GameID:      gameID,
		Date:        time.Now().Format("2006-01-02"),
		RoundNumber: roundNumber,
		Result:      result,
	}
	if err := e.results.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist result record: %w", err)
	}

	// 3) classifica cada aposta e monta o lote
	now := time.Now()
	patches := make([]BetPatch, 0, len(pending))
	credits := make(map[string]int64)
	wonCount := 0

	for _, b := range pending {
		patch := BetPatch{
			BetID:     b.ID,
			Status:    StatusLost,
			Result:    &result,
			WinCents:  0,
			SettledAt: &now,
		}

		if Wins(b, result) {
			mult, err := e.rates.MultiplierFor(ctx, gameID, b.Type)
			if err != nil {
				// nada foi mutado ainda além do ResultRecord; seguro abortar
				return nil, fmt.Errorf("rate for %s/%s: %w", gameID, b.Type, err)
			}
			patch.Status = StatusWon
			patch.WinCents = b.StakeCents * mult
			credits[b.UserID] += patch.WinCents
			wonCount++
		}

		patches = append(patches, patch)
	}

	// 4) lote tudo-ou-nada; em falha, retry do lote inteiro com backoff
	var batchErr error
	for attempt := 0; attempt < batchRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(300*attempt) * time.Millisecond)
		}
		if batchErr = e.bets.BatchUpdate(ctx, patches); batchErr == nil {
			break
		}
		e.log.Warn("bet batch update retry",
			zap.Int("attempt", attempt+1),
			zap.Error(batchErr),
		)
	}
	if batchErr != nil {
		return nil, &BatchUpdateError{Err: batchErr}
	}

	outcome := &Outcome{
		GameID:        gameID,
		RoundNumber:   roundNumber,
		Result:        result,
		BackupID:      backupID,
		BetsProcessed: len(pending),
		BetsWon:       wonCount,
	}

	// 5/6) um crédito somado por usuário; ordem estável pra retries
	userIDs := make([]string, 0, len(credits))
	for userID := range credits {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	ref := fmt.Sprintf("settlement:%s:%d:%s", gameID, roundNumber, backupID)
	for _, userID := range userIDs {
		amount := credits[userID]
		if err := e.wallets.IncrementBalance(ctx, userID, amount, ref); err != nil {
			e.log.Error("wallet credit failed",
				zap.String("userId", userID),
				zap.Int64("amount_cents", amount),
				zap.Error(err),
			)
			outcome.CreditFailures = append(outcome.CreditFailures, CreditFailure{
				UserID:      userID,
				AmountCents: amount,
				Reason:      err.Error(),
			})
			continue
		}
		outcome.TotalCreditCents += amount
	}

	e.log.Info("round settled",
		zap.String("gameId", gameID),
		zap.Int("roundNumber", roundNumber),
		zap.String("result", result),
		zap.Int("betsProcessed", outcome.BetsProcessed),
		zap.Int("betsWon", outcome.BetsWon),
		zap.Int64("totalCreditCents", outcome.TotalCreditCents),
		zap.Int("creditFailures", len(outcome.CreditFailures)),
	)

	return outcome, nil
}
