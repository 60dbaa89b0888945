package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

// Results implementa settlement.ResultStore sobre Postgres.
type Results struct{ db *sql.DB }

func NewResults(db *sql.DB) *Results { return &Results{db: db} }

// Put grava o resultado verbatim. ON CONFLICT cobre a reliquidação da mesma
// rodada com resultado corrigido.
func (r *Results) Put(ctx context.Context, rec settlement.ResultRecord) error {
	const q = `
		INSERT INTO game_results (game_id, date, round_number, result, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (game_id, date, round_number) DO UPDATE SET
		  result     = EXCLUDED.result,
		  created_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, rec.GameID, rec.Date, rec.RoundNumber, rec.Result)
	return err
}

// ResultRow é a linha retornada nas listagens do admin.
type ResultRow struct {
	GameID      string    `json:"gameId"`
	Date        string    `json:"date"`
	RoundNumber int       `json:"roundNumber"`
	Result      string    `json:"result"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListByGame retorna os resultados de um jogo, mais recente primeiro
func (r *Results) ListByGame(ctx context.Context, gameID string, limit int) ([]ResultRow, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT game_id, date, round_number, result, created_at
		FROM game_results
		WHERE game_id=$1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, gameID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var row ResultRow
		if err := rows.Scan(&row.GameID, &row.Date, &row.RoundNumber, &row.Result, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
