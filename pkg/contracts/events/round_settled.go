package events

import "time"

// Evento emitido pelo settlement-worker após liquidar uma rodada.
type RoundSettled struct {
	GameID           string    `json:"gameId"`
	RoundNumber      int       `json:"roundNumber"`
	Result           string    `json:"result"`
	BackupID         string    `json:"backupId"`
	BetsProcessed    int       `json:"betsProcessed"`
	BetsWon          int       `json:"betsWon"`
	TotalCreditCents int64     `json:"totalCreditCents"`
	CreditFailures   int       `json:"creditFailures"`
	Ts               time.Time `json:"ts"`
}
