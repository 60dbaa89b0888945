package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// GameID: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type   string `json:"type"`   // subscribe | unsubscribe | ping
	GameID string `json:"gameId"` // requerido em subscribe/unsubscribe
}

// SettlementUpdate representa o aviso de rodada liquidada enviado aos clientes
type SettlementUpdate struct {
	GameID  string      `json:"gameId"`
	Payload interface{} `json:"payload"`
}
