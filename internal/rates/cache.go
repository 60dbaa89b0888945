package rates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRepo decora um Repo com cache Redis por jogo.
// Taxas mudam raramente; TTL curto evita invalidação explícita.
type CachedRepo struct {
	next Repo
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedRepo(next Repo, rdb *redis.Client, ttl time.Duration) *CachedRepo {
	return &CachedRepo{next: next, rdb: rdb, ttl: ttl}
}

func key(gameID string) string { return "rates:game:" + gameID }

func (c *CachedRepo) RatesFor(ctx context.Context, gameID string) ([]Rate, error) {
	b, err := c.rdb.Get(ctx, key(gameID)).Bytes()
	if err == nil {
		var cached []Rate
		if jerr := json.Unmarshal(b, &cached); jerr == nil {
			return cached, nil
		}
		// payload inválido no cache: ignora e cai pro repo
	} else if err != redis.Nil {
		// Redis fora não derruba a liquidação; cai pro repo
	}

	fresh, err := c.next.RatesFor(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(fresh); jerr == nil {
		_ = c.rdb.Set(ctx, key(gameID), payload, c.ttl).Err()
	}
	return fresh, nil
}
