package depthpublisher

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
	"github.com/subhdotsol/CEX-superdevs/pkg/config"
	"github.com/subhdotsol/CEX-superdevs/pkg/errors"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
)

// Publisher forwards depth updates to a Kafka topic so downstream services
// (market data recorders, analytics) can consume the feed.
type Publisher struct {
	pair        string
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for depth updates.
func NewPublisher(cfg config.KafkaConfig, pair string, logger logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		pair:        pair,
		kafkaWriter: kafkaWriter,
		logger:      logger,
	}
}

// PublishDepth publishes one depth snapshot, keyed by pair.
func (p *Publisher) PublishDepth(ctx context.Context, depth orderbookv1.Depth) error {
	buf, err := json.Marshal(depth)
	if err != nil {
		p.logger.Error(err, logger.Field{Key: "pair", Value: p.pair})
		return errors.NewTracer(string(errors.DepthPublishError)).Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(p.pair),
		Value: buf,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "pair", Value: p.pair},
			logger.Field{Key: "lastUpdateId", Value: depth.LastUpdateID},
		)
		return errors.NewTracer(string(errors.DepthPublishError)).Wrap(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
