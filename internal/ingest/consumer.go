package ingest

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Handler processes one message from a topic.
type Handler interface {
	Handle(ctx context.Context, topic string, payload []byte) error
}

// Consumer reads one topic with a kafka-go reader and feeds every message to
// the handler. Offsets are committed explicitly after handling: a handler
// error is logged and the message is committed anyway, because redelivering
// a message that already failed to decode or apply would only loop. The
// signup path tolerates this through its own idempotency check.
type Consumer struct {
	reader  *kafka.Reader
	handler Handler
	logger  zerolog.Logger
}

// NewConsumer builds a consumer for one topic in the given group.
func NewConsumer(brokers []string, groupID, topic string, handler Handler, logger zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With().Str("topic", topic).Logger(),
	}
}

// Run fetches until ctx is cancelled, then closes the reader.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	c.logger.Info().Msg("consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info().Msg("consumer stopped")
				return nil
			}
			return err
		}

		if err := c.handler.Handle(ctx, msg.Topic, msg.Value); err != nil {
			c.logger.Error().Err(err).
				Int64("offset", msg.Offset).
				Int("partition", msg.Partition).
				Msg("message handling failed, committing past it")
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
