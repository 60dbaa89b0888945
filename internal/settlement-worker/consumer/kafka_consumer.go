package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/cache"
	"github.com/radieske/matka-bet-platform-poc/internal/settlement-worker/pubsub"
	"github.com/radieske/matka-bet-platform-poc/internal/shared/lock"
	"github.com/radieske/matka-bet-platform-poc/pkg/contracts/events"
)

// Processor consome eventos result_entered do Kafka e dispara a liquidação
// Serializa rodadas concorrentes com lock por (gameId, roundNumber)
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log           *zap.Logger
	Reader        *kafka.Reader
	Engine        *settlement.Engine
	Locks         *lock.Keyed
	Cache         *cache.RedisCache
	Broadcaster   *pubsub.RedisBroadcaster
	SettledWriter *kafka.Writer
	DLQWriter     *kafka.Writer

	OnConsumed func()       // métricas (counter++)
	OnSettled  func()       // métricas
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e liquidação
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		var ev events.ResultEntered
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			continue
		}

		if err := p.processOne(ctx, ev); err != nil {
			p.Log.Error("settle round",
				zap.String("gameId", ev.GameID),
				zap.Int("roundNumber", ev.RoundNumber),
				zap.Error(err),
			)
			if p.OnError != nil {
				p.OnError("settle")
			}
			if p.DLQWriter != nil {
				_ = p.DLQWriter.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value})
			}
			continue
		}
		if p.OnSettled != nil {
			p.OnSettled() // callback de métrica: rodada liquidada
		}
	}
}

// processOne liquida uma rodada sob lock e divulga o desfecho:
// 1. Trava a rodada (liquidações da mesma rodada nunca rodam em paralelo)
// 2. Roda o motor (backup, resultado, classificação, lote, créditos)
// 3. Marca a rodada como liquidada no Redis (bet-service passa a recusar apostas)
// 4. Publica round_settled no Kafka e no canal pub/sub do WebSocket
func (p *Processor) processOne(ctx context.Context, ev events.ResultEntered) error {
	mu := p.Locks.Get(lock.RoundKey(ev.GameID, ev.RoundNumber))
	mu.Lock()
	defer mu.Unlock()

	outcome, err := p.Engine.SettleRound(ctx, ev.GameID, ev.RoundNumber, ev.Result)
	if err != nil {
		return err
	}

	if err := p.Cache.MarkSettled(ctx, ev.GameID, ev.RoundNumber, ev.Result); err != nil {
		p.Log.Warn("redis mark settled failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("cache")
		}
		// não bloqueia a divulgação se falhar o cache
	}

	settled := events.RoundSettled{
		GameID:           outcome.GameID,
		RoundNumber:      outcome.RoundNumber,
		Result:           outcome.Result,
		BackupID:         outcome.BackupID,
		BetsProcessed:    outcome.BetsProcessed,
		BetsWon:          outcome.BetsWon,
		TotalCreditCents: outcome.TotalCreditCents,
		CreditFailures:   len(outcome.CreditFailures),
		Ts:               time.Now(),
	}
	b, _ := json.Marshal(settled)
	if err := p.SettledWriter.WriteMessages(ctx, kafka.Message{Key: []byte(ev.GameID), Value: b}); err != nil {
		p.Log.Warn("publish round_settled failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("publish")
		}
	}

	wsPayload, _ := json.Marshal(pubsub.WSUpdate{GameID: ev.GameID, Payload: settled})
	if err := p.Broadcaster.Publish(ctx, pubsub.ChannelRoundSettled, wsPayload); err != nil {
		p.Log.Warn("redis broadcast failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("broadcast")
		}
	}

	return nil
}
