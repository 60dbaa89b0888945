package repo

import (
	"context"
	"database/sql"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

// Bets implementa settlement.BetStore sobre Postgres.
type Bets struct{ db *sql.DB }

func NewBets(db *sql.DB) *Bets { return &Bets{db: db} }

// FindPending retorna as apostas Pending da rodada, mais antiga primeiro
func (r *Bets) FindPending(ctx context.Context, gameID string, roundNumber int) ([]settlement.Bet, error) {
	const q = `
		SELECT id, user_id, game_id, round_number, bet_type, selection,
		       stake_cents, status, result, win_cents, placed_at, settled_at
		FROM bets
		WHERE game_id=$1 AND round_number=$2 AND status='Pending'
		ORDER BY placed_at`

	rows, err := r.db.QueryContext(ctx, q, gameID, roundNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []settlement.Bet
	for rows.Next() {
		var b settlement.Bet
		var result sql.NullString
		var settledAt sql.NullTime
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.GameID, &b.RoundNumber, &b.Type, &b.Selection,
			&b.StakeCents, &b.Status, &result, &b.WinCents, &b.PlacedAt, &settledAt,
		); err != nil {
			return nil, err
		}
		if result.Valid {
			b.Result = &result.String
		}
		if settledAt.Valid {
			b.SettledAt = &settledAt.Time
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BatchUpdate aplica todos os patches numa transação única.
// Se qualquer um falhar, o rollback garante que nenhum foi aplicado.
func (r *Bets) BatchUpdate(ctx context.Context, patches []settlement.BetPatch) error {
	if len(patches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		UPDATE bets
		SET status=$1, result=$2, win_cents=$3, settled_at=$4
		WHERE id=$5`

	for _, p := range patches {
		var result sql.NullString
		if p.Result != nil {
			result = sql.NullString{String: *p.Result, Valid: true}
		}
		var settledAt sql.NullTime
		if p.SettledAt != nil {
			settledAt = sql.NullTime{Time: *p.SettledAt, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, q, p.Status, result, p.WinCents, settledAt, p.BetID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
