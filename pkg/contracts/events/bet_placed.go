package events

type BetPlaced struct {
	BetID       string `json:"bet_id"`
	UserID      string `json:"user_id"`
	GameID      string `json:"game_id"`
	RoundNumber int    `json:"round_number"`
	BetType     string `json:"bet_type"`  // "single" | "patti" | "juri"
	Selection   string `json:"selection"` // dígito, patti de 3 dígitos ou par "a-b"
	StakeCents  int64  `json:"stake_cents"`
	StakeRef    string `json:"stake_ref"` // external_ref usado no débito da carteira (betID)
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
