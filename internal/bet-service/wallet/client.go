package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	walletdto "github.com/radieske/matka-bet-platform-poc/internal/bet-service/wallet/dto"
)

// ErrInsufficientFunds indica que o wallet-service rejeitou o débito por falta de saldo
var ErrInsufficientFunds = errors.New("insufficient funds")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

// Stake debita o valor da aposta na carteira do usuário (external_ref = betID)
func (c *Client) Stake(ctx context.Context, userID string, cents int64, externalRef string) (int64, error) {
	body, _ := json.Marshal(walletdto.StakeRequest{UserID: userID, AmountCents: cents, ExternalRef: externalRef})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/wallet/stake", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusConflict {
		return 0, ErrInsufficientFunds
	}
	if res.StatusCode >= 300 {
		return 0, fmt.Errorf("wallet stake http %d", res.StatusCode)
	}
	var out walletdto.BalanceResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.BalanceCents, nil
}

// Refund devolve o valor debitado quando o insert da aposta falha depois do débito
// Usa o endpoint de crédito com external_ref distinto pra não colidir com prêmios
func (c *Client) Refund(ctx context.Context, userID string, cents int64, betID string) error {
	body, _ := json.Marshal(walletdto.CreditRequest{UserID: userID, AmountCents: cents, ExternalRef: "refund:" + betID})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/wallet/credit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("wallet refund http %d", res.StatusCode)
	}
	return nil
}
