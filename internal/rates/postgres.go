package rates

import (
	"context"
	"database/sql"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

// Postgres lê as taxas configuradas na tabela game_rates.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) RatesFor(ctx context.Context, gameID string) ([]Rate, error) {
	const q = `
		SELECT bet_type, multiplier
		FROM game_rates
		WHERE game_id=$1`

	rows, err := p.db.QueryContext(ctx, q, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rate
	for rows.Next() {
		var bt string
		var mult int64
		if err := rows.Scan(&bt, &mult); err != nil {
			return nil, err
		}
		out = append(out, Rate{BetType: settlement.BetType(bt), Multiplier: mult})
	}
	return out, rows.Err()
}
