package settlement

import "context"

// BetStore é a visão que o motor tem do repositório de apostas.
type BetStore interface {
	// FindPending retorna as apostas Pending de uma rodada
	FindPending(ctx context.Context, gameID string, roundNumber int) ([]Bet, error)
	// BatchUpdate aplica o lote inteiro numa transação; nunca parcial
	BatchUpdate(ctx context.Context, patches []BetPatch) error
}

// WalletStore é a visão que o motor tem da carteira. Increment e Set são
// atômicos no destino (read-modify-write único, nunca ler-e-gravar separado).
type WalletStore interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	// IncrementBalance credita delta; ref identifica a operação (idempotência)
	IncrementBalance(ctx context.Context, userID string, deltaCents int64, ref string) error
	// SetBalance grava o saldo absoluto; usado só pelo restore
	SetBalance(ctx context.Context, userID string, balanceCents int64, ref string) error
}

// ResultStore persiste o resultado digitado, sem reordenar dígitos.
type ResultStore interface {
	Put(ctx context.Context, rec ResultRecord) error
}

// RateProvider resolve o multiplicador de pagamento por jogo e tipo.
type RateProvider interface {
	MultiplierFor(ctx context.Context, gameID string, betType BetType) (int64, error)
}

// RoundLocker serializa liquidação e restore da mesma rodada, inclusive
// entre processos. Liquidar e restaurar a mesma (gameId, roundNumber) ao
// mesmo tempo corromperia apostas e saldos.
type RoundLocker interface {
	// AcquireRound bloqueia a rodada; release devolve o lock
	AcquireRound(ctx context.Context, gameID string, roundNumber int) (release func(), err error)
}

// BackupStore persiste snapshots de liquidação. Backups nunca são mutados
// nem apagados automaticamente.
type BackupStore interface {
	Put(ctx context.Context, b Backup) error
	// Query retorna os backups da rodada, mais recente primeiro
	Query(ctx context.Context, gameID string, roundNumber int) ([]Backup, error)
	// Get retorna ErrBackupNotFound se o id não existir
	Get(ctx context.Context, backupID string) (*Backup, error)
}
