package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"socialmedia/internal/logger"
	"socialmedia/internal/models"
)

// Producer publishes created messages to the message-events topic.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{w: &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}}
}

func (p *Producer) Publish(ctx context.Context, msg models.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(msg.MessageID, 10)),
		Value: value,
	})
}

func (p *Producer) Close() error { return p.w.Close() }

// Reader consumes message events and forwards them to the broadcast channel
// until the context is cancelled.
func Reader(ctx context.Context, broker, topic string, broadcast chan<- models.Message) {
	logger.Info("starting kafka reader", logger.FieldKV("topic", topic))
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     topic,
		Partition: 0,
		MinBytes:  10e3, // 10KB
		MaxBytes:  10e6, // 10MB
	})
	defer func() {
		if err := r.Close(); err != nil {
			logger.Error("close kafka reader failed", err)
		}
	}()

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("read message event failed", err)
			return
		}

		var msg models.Message
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			logger.Error("unmarshal message event failed", err, logger.FieldKV("offset", m.Offset))
			continue
		}
		broadcast <- msg
	}
}
