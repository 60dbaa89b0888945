package events

// Evento publicado pelo result-service quando o admin digita o resultado de
// uma rodada. O settlement-worker consome e dispara backup + liquidação.
type ResultEntered struct {
	GameID      string `json:"game_id"`
	RoundNumber int    `json:"round_number"`
	Result      string `json:"result"` // exatamente 3 dígitos, como digitado
	EnteredBy   string `json:"entered_by,omitempty"`
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
