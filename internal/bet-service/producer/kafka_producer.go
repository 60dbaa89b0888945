package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/matka-bet-platform-poc/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
	Topic  string
}

func NewKafkaPublisher(w *kafka.Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	return p.Writer.WriteMessages(ctx, betPlacedMessage(e))
}

// betPlacedMessage usa gameID como chave, igual ao produtor de resultados,
// pra manter a ordem por jogo na partição.
func betPlacedMessage(e events.BetPlaced) kafka.Message {
	b, _ := json.Marshal(e)
	return kafka.Message{Key: []byte(e.GameID), Value: b}
}
