package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

// Backups implementa settlement.BackupStore sobre Postgres.
// O snapshot (apostas + saldos) vai serializado em JSONB; backups nunca
// são atualizados nem apagados por aqui.
type Backups struct{ db *sql.DB }

func NewBackups(db *sql.DB) *Backups { return &Backups{db: db} }

// snapshot é o payload JSONB de um backup
type snapshot struct {
	Bets     []settlement.Bet `json:"bets"`
	Balances map[string]int64 `json:"balances"`
}

func (r *Backups) Put(ctx context.Context, b settlement.Backup) error {
	payload, err := json.Marshal(snapshot{Bets: b.Bets, Balances: b.Balances})
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO result_backups (id, game_id, round_number, snapshot, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err = r.db.ExecContext(ctx, q, b.ID, b.GameID, b.RoundNumber, payload, b.CreatedAt)
	return err
}

// Query retorna os backups da rodada, mais recente primeiro
func (r *Backups) Query(ctx context.Context, gameID string, roundNumber int) ([]settlement.Backup, error) {
	const q = `
		SELECT id, game_id, round_number, snapshot, created_at
		FROM result_backups
		WHERE game_id=$1 AND round_number=$2
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, gameID, roundNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []settlement.Backup
	for rows.Next() {
		b, err := scanBackup(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Backups) Get(ctx context.Context, backupID string) (*settlement.Backup, error) {
	const q = `
		SELECT id, game_id, round_number, snapshot, created_at
		FROM result_backups
		WHERE id=$1`

	b, err := scanBackup(r.db.QueryRowContext(ctx, q, backupID).Scan)
	if err == sql.ErrNoRows {
		return nil, settlement.ErrBackupNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scanBackup(scan func(dest ...any) error) (*settlement.Backup, error) {
	var b settlement.Backup
	var payload []byte
	if err := scan(&b.ID, &b.GameID, &b.RoundNumber, &payload, &b.CreatedAt); err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	b.Bets = snap.Bets
	b.Balances = snap.Balances
	if b.Balances == nil {
		b.Balances = map[string]int64{}
	}
	return &b, nil
}
