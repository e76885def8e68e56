package snapshot

import (
	"context"
	"encoding/json"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
	"github.com/subhdotsol/CEX-superdevs/pkg/errors"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
	"github.com/subhdotsol/CEX-superdevs/pkg/redis"
)

// Store keeps the latest depth snapshot in Redis: the serialized snapshot is
// written under the pair key and pushed on the given channel so out-of-process
// consumers (dashboards, recorders) can follow the feed without holding a
// WebSocket connection.
type Store struct {
	pair        string
	channel     string
	logger      logger.Interface
	redisclient redis.Client
}

// NewStore creates a snapshot store for the given pair.
func NewStore(redisclient redis.Client, pair, channel string, logger logger.Interface) *Store {
	return &Store{
		pair:        pair,
		channel:     channel,
		redisclient: redisclient,
		logger:      logger,
	}
}

// Store persists the snapshot under the pair key and publishes it on the
// configured channel.
func (s *Store) Store(ctx context.Context, depth orderbookv1.Depth) error {
	buf, err := json.Marshal(depth)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.pair, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		}, logger.Field{
			Key:   "lastUpdateId",
			Value: depth.LastUpdateID,
		})
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	if _, err := s.redisclient.Publish(ctx, s.channel, buf); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "channel",
			Value: s.channel,
		})
		return errors.NewTracer(string(errors.SnapshotPublishError)).Wrap(err)
	}

	return nil
}

// Load reads the latest persisted snapshot. It returns nil without error
// when no snapshot has been stored yet.
func (s *Store) Load(ctx context.Context) (*orderbookv1.Depth, error) {
	data, err := s.redisclient.Get(ctx, s.pair)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, errors.TracerFromError(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "no snapshot found", logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, nil
	}

	var depth orderbookv1.Depth
	if err := json.Unmarshal([]byte(data), &depth); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, errors.TracerFromError(err)
	}

	return &depth, nil
}
