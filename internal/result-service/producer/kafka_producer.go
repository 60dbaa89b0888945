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

// PublishResultEntered enfileira o resultado digitado pra liquidação assíncrona.
// A chave da mensagem é gameID pra manter a ordem por jogo na partição.
func (p *KafkaPublisher) PublishResultEntered(ctx context.Context, e events.ResultEntered) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.GameID), Value: b})
}
