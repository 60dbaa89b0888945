package repo

import "time"

// Bet é o modelo persistido no Postgres.
type Bet struct {
	ID          string
	UserID      string
	GameID      string
	RoundNumber int
	BetType     string // "single" | "patti" | "juri"
	Selection   string
	StakeCents  int64
	Status      string // "Pending" | "Won" | "Lost"
	Result      string
	WinCents    int64
	PlacedAt    time.Time
	SettledAt   *time.Time
}
