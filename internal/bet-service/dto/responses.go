package dto

import "time"

type PlaceBetResponse struct {
	BetID           string `json:"betId"`
	Status          string `json:"status"` // Pending
	NewBalanceCents *int64 `json:"new_balance_cents,omitempty"`
	Message         string `json:"message,omitempty"`
}

type BetResponse struct {
	BetID       string     `json:"betId"`
	UserID      string     `json:"userId"`
	GameID      string     `json:"gameId"`
	RoundNumber int        `json:"roundNumber"`
	BetType     string     `json:"betType"`
	Selection   string     `json:"selection"`
	StakeCents  int64      `json:"stake_cents"`
	Status      string     `json:"status"`
	Result      string     `json:"result,omitempty"`
	WinCents    int64      `json:"win_cents"`
	PlacedAt    time.Time  `json:"placedAt"`
	SettledAt   *time.Time `json:"settledAt,omitempty"`
}

type PattiListResponse struct {
	Combinations []string `json:"combinations"`
	Total        int      `json:"total"`
}

type PattiGroupsResponse struct {
	Groups map[string][]string `json:"groups"` // chave = último dígito da soma
}
