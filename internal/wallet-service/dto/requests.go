package dto

// DepositRequest representa um pedido de depósito
type DepositRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref"`
}

// StakeRequest representa o débito de uma aposta
type StakeRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref"`
}

// CreditRequest representa o crédito de prêmio de uma liquidação
type CreditRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref"`
}

// RestoreRequest grava um saldo absoluto (usado pelo restore de backup)
type RestoreRequest struct {
	UserID       string `json:"user_id"`
	BalanceCents int64  `json:"balance_cents"`
	ExternalRef  string `json:"external_ref"`
}
