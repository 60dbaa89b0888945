package dto

// EnterResultRequest é o resultado digitado pelo admin para uma rodada
type EnterResultRequest struct {
	GameID      string `json:"gameId"`
	RoundNumber int    `json:"roundNumber"`
	Result      string `json:"result"` // exatamente 3 dígitos, gravado como digitado
	EnteredBy   string `json:"enteredBy,omitempty"`
}

// RestoreRequest pede o undo de uma liquidação a partir de um backup
type RestoreRequest struct {
	BackupID string `json:"backupId"`
}
