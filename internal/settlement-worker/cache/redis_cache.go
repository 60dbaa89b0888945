package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCache encapsula o estado de rodada liquidada no Redis
// A chave é lida pelo bet-service pra recusar apostas em rodada fechada
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache cria uma instância do cache de rodadas liquidadas
func NewRedisCache(c *redis.Client) *RedisCache { return &RedisCache{Client: c} }

// key gera a chave Redis de rodada liquidada
func key(gameID string, roundNumber int) string {
	return fmt.Sprintf("round:settled:%s:%d", gameID, roundNumber)
}

// MarkSettled grava o resultado da rodada, sem expiração: uma vez liquidada,
// a rodada fica fechada pra novas apostas até um restore limpar a marca
func (r *RedisCache) MarkSettled(ctx context.Context, gameID string, roundNumber int, result string) error {
	return r.Client.Set(ctx, key(gameID, roundNumber), result, 0).Err()
}

// ClearSettled remove a marca de rodada liquidada (usado após restore)
func (r *RedisCache) ClearSettled(ctx context.Context, gameID string, roundNumber int) error {
	return r.Client.Del(ctx, key(gameID, roundNumber)).Err()
}
