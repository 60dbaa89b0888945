package repo

import (
	"context"
	"database/sql"
)

// Postgres implementa operações de persistência de apostas em banco Postgres
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de apostas
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// CreatePending insere uma nova aposta com status Pending
// O id vem pré-gerado pelo handler, que já usou como external_ref do débito
func (p *Postgres) CreatePending(ctx context.Context, b *Bet) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (id,user_id,game_id,round_number,bet_type,selection,stake_cents,status,placed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,'Pending',now())`,
		b.ID, b.UserID, b.GameID, b.RoundNumber, b.BetType, b.Selection, b.StakeCents,
	)
	return err
}

// GetByID retorna uma aposta pelo id
func (p *Postgres) GetByID(ctx context.Context, betID string) (*Bet, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id,user_id,game_id,round_number,bet_type,selection,stake_cents,status,
		       COALESCE(result,''),COALESCE(win_cents,0),placed_at,settled_at
		FROM bets WHERE id=$1`, betID)
	return scanBet(row)
}

// List retorna apostas filtradas por usuário e opcionalmente por jogo e rodada
// roundNumber <= 0 significa sem filtro de rodada
func (p *Postgres) List(ctx context.Context, userID, gameID string, roundNumber int) ([]Bet, error) {
	q := `SELECT id,user_id,game_id,round_number,bet_type,selection,stake_cents,status,
	             COALESCE(result,''),COALESCE(win_cents,0),placed_at,settled_at
	      FROM bets WHERE user_id=$1`
	args := []any{userID}
	if gameID != "" {
		args = append(args, gameID)
		q += ` AND game_id=$2`
		if roundNumber > 0 {
			args = append(args, roundNumber)
			q += ` AND round_number=$3`
		}
	}
	q += ` ORDER BY placed_at DESC`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanBet(row scanner) (*Bet, error) {
	var b Bet
	var settled sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.GameID, &b.RoundNumber, &b.BetType, &b.Selection,
		&b.StakeCents, &b.Status, &b.Result, &b.WinCents, &b.PlacedAt, &settled)
	if err != nil {
		return nil, err
	}
	if settled.Valid {
		t := settled.Time
		b.SettledAt = &t
	}
	return &b, nil
}
