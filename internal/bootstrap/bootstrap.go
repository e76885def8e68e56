package bootstrap

import (
	"context"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
	httpserver "github.com/subhdotsol/CEX-superdevs/internal/server/http"
	"github.com/subhdotsol/CEX-superdevs/internal/server/ws"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/broadcaster"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/depthpublisher"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/orderbook"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/snapshot"
	"github.com/subhdotsol/CEX-superdevs/pkg/config"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
	"github.com/subhdotsol/CEX-superdevs/pkg/redis"
)

// Bootstrap wires every component together. The order book handle is passed
// explicitly to each consumer; nothing reaches shared state through globals.
type Bootstrap struct {
	Config      *config.Config
	Logger      logger.Interface
	Book        *orderbook.Orderbook
	Broadcaster *broadcaster.Broadcaster
	HTTP        *httpserver.Server

	redisClient redis.Client
	publisher   *depthpublisher.Publisher
}

// Init builds the dependency graph. The Redis snapshot store and the Kafka
// depth publisher are attached as broadcaster subscribers only when their
// backends are configured.
func Init(ctx context.Context, cfg *config.Config, log logger.Interface) (*Bootstrap, error) {
	b := &Bootstrap{
		Config:      cfg,
		Logger:      log,
		Book:        orderbook.NewOrderbook(),
		Broadcaster: broadcaster.New(cfg.Broadcast.SubscriberBuffer),
	}

	handler := httpserver.NewHandler(cfg.App.Name, b.Book, b.Broadcaster, log)
	wsHandler := ws.NewHandler(b.Broadcaster, log)
	b.HTTP = httpserver.NewServer(cfg.App, handler, wsHandler, log)

	if cfg.Redis.Enabled() {
		b.redisClient = redis.NewClient(log, &cfg.Redis)
		if err := b.redisClient.Connect(ctx); err != nil {
			return nil, err
		}

		store := snapshot.NewStore(b.redisClient, cfg.Book.Pair, cfg.Redis.DefaultChannel, log)
		b.runSink(ctx, "snapshot", store.Store)
	}

	if cfg.Kafka.Enabled() {
		b.publisher = depthpublisher.NewPublisher(cfg.Kafka, cfg.Book.Pair, log)
		b.runSink(ctx, "depth-publisher", b.publisher.PublishDepth)
	}

	return b, nil
}

// runSink subscribes the given consumer to the broadcaster and pumps updates
// to it on a dedicated goroutine. Consumer errors are already logged at the
// source; the pump only exits when the subscription is closed.
func (b *Bootstrap) runSink(ctx context.Context, name string, consume func(context.Context, orderbookv1.Depth) error) {
	sub := b.Broadcaster.Subscribe()
	b.Logger.Info("sink attached",
		logger.Field{Key: "sink", Value: name},
		logger.Field{Key: "subscriber_id", Value: sub.ID()},
	)

	go func() {
		for depth := range sub.C() {
			_ = consume(ctx, depth)
		}
	}()
}

// Shutdown tears down the fan-out and the optional backends. The HTTP server
// is shut down separately by the caller before this runs.
func (b *Bootstrap) Shutdown(ctx context.Context) {
	b.Broadcaster.Close()

	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			b.Logger.Error(err)
		}
	}

	if b.redisClient != nil {
		if err := b.redisClient.Disconnect(ctx); err != nil {
			b.Logger.Error(err)
		}
	}
}
