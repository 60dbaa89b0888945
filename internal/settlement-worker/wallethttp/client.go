package wallethttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client implementa as operações de carteira que o motor de liquidação
// precisa, por cima da API HTTP do wallet-service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type balanceResponse struct {
	UserID       string `json:"user_id"`
	BalanceCents int64  `json:"balance_cents"`
}

// GetBalance lê o saldo atual do usuário (cria a carteira se não existir)
func (c *Client) GetBalance(ctx context.Context, userID string) (int64, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/wallet?userId="+userID, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return 0, fmt.Errorf("wallet get http %d", res.StatusCode)
	}
	var out struct {
		BalanceCents int64 `json:"balance_cents"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.BalanceCents, nil
}

// IncrementBalance credita o prêmio de liquidação; ref garante idempotência
func (c *Client) IncrementBalance(ctx context.Context, userID string, deltaCents int64, ref string) error {
	body, _ := json.Marshal(map[string]any{
		"user_id":      userID,
		"amount_cents": deltaCents,
		"external_ref": ref,
	})
	return c.post(ctx, "/wallet/credit", body)
}

// SetBalance grava o saldo absoluto; usado só pelo restore de backup
func (c *Client) SetBalance(ctx context.Context, userID string, balanceCents int64, ref string) error {
	body, _ := json.Marshal(map[string]any{
		"user_id":       userID,
		"balance_cents": balanceCents,
		"external_ref":  ref,
	})
	return c.post(ctx, "/wallet/restore", body)
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("wallet %s http %d", path, res.StatusCode)
	}
	var out balanceResponse
	_ = json.NewDecoder(res.Body).Decode(&out)
	return nil
}
