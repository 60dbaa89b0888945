package dto

// WalletResponse representa o estado atual de uma carteira
type WalletResponse struct {
	WalletID     string `json:"wallet_id"`
	UserID       string `json:"user_id"`
	BalanceCents int64  `json:"balance_cents"`
}

// BalanceResponse é o retorno das operações que alteram saldo
type BalanceResponse struct {
	UserID       string `json:"user_id"`
	BalanceCents int64  `json:"balance_cents"`
}

// ErrorResponse padroniza erros HTTP
type ErrorResponse struct {
	Error string `json:"error"`
}
