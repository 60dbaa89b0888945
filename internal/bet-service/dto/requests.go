package dto

type PlaceBetRequest struct {
	UserID      string `json:"userId"`
	GameID      string `json:"gameId"`
	RoundNumber int    `json:"roundNumber"`
	BetType     string `json:"betType"`   // "single" | "patti" | "juri"
	Selection   string `json:"selection"` // dígito, patti de 3 dígitos ou par "a-b"
	StakeCents  int64  `json:"stake_cents"`
}
