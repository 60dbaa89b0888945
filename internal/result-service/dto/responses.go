package dto

import (
	"time"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

// EnterResultResponse confirma que o resultado entrou na fila de liquidação
type EnterResultResponse struct {
	GameID      string `json:"gameId"`
	RoundNumber int    `json:"roundNumber"`
	Result      string `json:"result"`
	Status      string `json:"status"` // "accepted"
}

// BackupSummary é a visão de listagem de um backup (sem o snapshot inteiro)
type BackupSummary struct {
	BackupID    string    `json:"backupId"`
	GameID      string    `json:"gameId"`
	RoundNumber int       `json:"roundNumber"`
	Bets        int       `json:"bets"`
	Users       int       `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RestoreResponse devolve o relatório do restore, inclusive falhas parciais
type RestoreResponse struct {
	Report  *settlement.RestoreReport `json:"report"`
	Partial bool                      `json:"partial"`
}
