package kafka

import (
	"context"
	"testing"

	"socialmedia/internal/models"
)

func TestPublishCancelledContext(t *testing.T) {
	p := NewProducer("localhost:0", "message-events")
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No broker is running; a cancelled context must surface an error rather
	// than block.
	msg := models.Message{MessageID: 1, PostedBy: 1, MessageText: "test message", TimePostedEpoch: 1}
	if err := p.Publish(ctx, msg); err == nil {
		t.Fatalf("expected error publishing with cancelled context")
	}
}
