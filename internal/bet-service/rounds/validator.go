package rounds

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Validator struct {
	Rdb *redis.Client
}

func NewValidator(r *redis.Client) *Validator { return &Validator{Rdb: r} }

// Espera chave "round:settled:{gameID}:{roundNumber}" gravada pelo settlement-worker
// após liquidar a rodada. Presença da chave = rodada fechada pra novas apostas.
func (v *Validator) IsSettled(ctx context.Context, gameID string, roundNumber int) (bool, error) {
	key := fmt.Sprintf("round:settled:%s:%d", gameID, roundNumber)
	_, err := v.Rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
