package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript apaga o lock só se o token ainda for o nosso; sem o script
// um release atrasado poderia derrubar o lock de outro processo
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisRound serializa liquidação e restore por rodada ENTRE processos,
// via SET NX com lease. O mutex local do worker não enxerga o restore
// disparado pelo result-service; este lock enxerga os dois.
// O lease garante que o lock expira se o dono morrer no meio.
type RedisRound struct {
	rdb   *redis.Client
	lease time.Duration
}

func NewRedisRound(rdb *redis.Client, lease time.Duration) *RedisRound {
	return &RedisRound{rdb: rdb, lease: lease}
}

func roundLockKey(gameID string, roundNumber int) string {
	return fmt.Sprintf("lock:round:%s:%d", gameID, roundNumber)
}

// AcquireRound bloqueia a rodada, esperando em polling se outro processo
// estiver com o lock. Respeita cancelamento do contexto durante a espera.
func (l *RedisRound) AcquireRound(ctx context.Context, gameID string, roundNumber int) (func(), error) {
	key := roundLockKey(gameID, roundNumber)
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.lease).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	release := func() {
		// contexto próprio: o release precisa rodar mesmo se o chamador
		// já tiver sido cancelado
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Result()
	}
	return release, nil
}
