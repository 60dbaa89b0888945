// Package rates resolve o multiplicador de pagamento por jogo e tipo de
// aposta. Multiplicador é a razão de retorno total: pagamento = stake × rate.
package rates

import (
	"context"
	"fmt"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

// Rate é uma taxa configurada de um jogo.
type Rate struct {
	BetType    settlement.BetType `json:"bet_type"`
	Multiplier int64              `json:"multiplier"`
}

// Defaults valem quando o jogo não tem taxa configurada pro tipo.
var Defaults = map[settlement.BetType]int64{
	settlement.BetTypeSingle: 90,
	settlement.BetTypePatti:  900,
	settlement.BetTypeJuri:   100,
}

// Repo lê as taxas configuradas de um jogo.
type Repo interface {
	RatesFor(ctx context.Context, gameID string) ([]Rate, error)
}

// Table implementa settlement.RateProvider com fallback nos defaults.
type Table struct{ repo Repo }

func NewTable(repo Repo) *Table { return &Table{repo: repo} }

func (t *Table) MultiplierFor(ctx context.Context, gameID string, betType settlement.BetType) (int64, error) {
	configured, err := t.repo.RatesFor(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("rates for %s: %w", gameID, err)
	}

	for _, r := range configured {
		if r.BetType == betType && r.Multiplier > 0 {
			return r.Multiplier, nil
		}
	}

	if def, ok := Defaults[betType]; ok {
		return def, nil
	}
	return 0, fmt.Errorf("no rate for bet type %q", betType)
}

// RatesFor expõe a lista efetiva (configurada + defaults) pro admin.
func (t *Table) RatesFor(ctx context.Context, gameID string) ([]Rate, error) {
	out := make([]Rate, 0, len(Defaults))
	for _, bt := range []settlement.BetType{settlement.BetTypeSingle, settlement.BetTypePatti, settlement.BetTypeJuri} {
		mult, err := t.MultiplierFor(ctx, gameID, bt)
		if err != nil {
			return nil, err
		}
		out = append(out, Rate{BetType: bt, Multiplier: mult})
	}
	return out, nil
}
