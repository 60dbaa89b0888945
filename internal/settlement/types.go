// Package settlement concentra o domínio de liquidação de rodadas:
// regras de acerto, motor de liquidação e backup/restore do estado
// afetado por cada liquidação.
package settlement

import "time"

type BetType string

const (
	BetTypeSingle BetType = "single"
	BetTypePatti  BetType = "patti"
	BetTypeJuri   BetType = "juri"
)

type BetStatus string

const (
	StatusPending BetStatus = "Pending"
	StatusWon     BetStatus = "Won"
	StatusLost    BetStatus = "Lost"
)

// Bet é a visão de domínio de uma aposta.
// Invariante: Pending ⇔ Result==nil ⇔ WinCents==0 ⇔ SettledAt==nil.
type Bet struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GameID      string     `json:"game_id"`
	RoundNumber int        `json:"round_number"`
	Type        BetType    `json:"bet_type"`
	Selection   string     `json:"selection"` // dígito ("7"), patti ("120") ou par juri ("3-7")
	StakeCents  int64      `json:"stake_cents"`
	Status      BetStatus  `json:"status"`
	Result      *string    `json:"result"`
	WinCents    int64      `json:"win_cents"`
	PlacedAt    time.Time  `json:"placed_at"`
	SettledAt   *time.Time `json:"settled_at"`
}

// BetPatch descreve a mutação de uma aposta dentro de um lote tudo-ou-nada.
type BetPatch struct {
	BetID     string
	Status    BetStatus
	Result    *string
	WinCents  int64
	SettledAt *time.Time
}

// resetPatch volta a aposta ao estado Pending (hard reset do restore).
func resetPatch(betID string) BetPatch {
	return BetPatch{
		BetID:     betID,
		Status:    StatusPending,
		Result:    nil,
		WinCents:  0,
		SettledAt: nil,
	}
}

// ResultRecord guarda o resultado exatamente como digitado pelo admin.
// Único por (GameID, Date, RoundNumber).
type ResultRecord struct {
	GameID      string
	Date        string // "2006-01-02"
	RoundNumber int
	Result      string
}

// Backup é o snapshot imutável tirado antes de cada liquidação:
// as apostas Pending da rodada e o saldo dos donos delas.
type Backup struct {
	ID          string
	GameID      string
	RoundNumber int
	Bets        []Bet
	Balances    map[string]int64 // userID -> balance_cents antes da liquidação
	CreatedAt   time.Time
}

// CreditFailure registra um crédito de carteira que falhou na liquidação.
// Não aborta os demais usuários; o chamador pode reprocessar só esses.
type CreditFailure struct {
	UserID      string `json:"userId"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

// Outcome resume uma liquidação.
type Outcome struct {
	GameID           string          `json:"gameId"`
	RoundNumber      int             `json:"roundNumber"`
	Result           string          `json:"result"`
	BackupID         string          `json:"backupId"`
	BetsProcessed    int             `json:"betsProcessed"`
	BetsWon          int             `json:"betsWon"`
	TotalCreditCents int64           `json:"totalCreditCents"`
	CreditFailures   []CreditFailure `json:"creditFailures,omitempty"`
}

// RestoreFailure registra um saldo que não pôde ser restaurado.
type RestoreFailure struct {
	UserID       string `json:"userId"`
	BalanceCents int64  `json:"balance_cents"`
	Reason       string `json:"reason"`
}

// RestoreReport resume um restore, incluindo o que NÃO foi restaurado.
type RestoreReport struct {
	BackupID         string           `json:"backupId"`
	GameID           string           `json:"gameId"`
	RoundNumber      int              `json:"roundNumber"`
	BetsRestored     int              `json:"betsRestored"`
	BalancesRestored int              `json:"balancesRestored"`
	Failures         []RestoreFailure `json:"failures,omitempty"`
}
