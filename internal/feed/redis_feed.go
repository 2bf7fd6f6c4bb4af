package feed

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "feed:"

// RedisFeed bridges the in-process broker over Redis pub/sub so live
// subscribers on every instance see writes from any instance.
type RedisFeed struct {
	local  *Broker
	client *redis.Client
	logger *zap.Logger
	cancel context.CancelFunc
}

// NewRedisFeed starts the bridge. The background subscriber reconnects with
// backoff until ctx is cancelled or Close is called.
func NewRedisFeed(ctx context.Context, client *redis.Client, logger *zap.Logger) *RedisFeed {
	ctx, cancel := context.WithCancel(ctx)
	f := &RedisFeed{
		local:  NewBroker(),
		client: client,
		logger: logger,
		cancel: cancel,
	}
	go f.consume(ctx)
	return f
}

// Publish sends the change to Redis; local delivery happens when the
// subscription loop receives it back, keeping ordering uniform across
// instances. If the publish fails the change is delivered locally only.
func (f *RedisFeed) Publish(ctx context.Context, change Change) {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		f.logger.Warn("feed: marshal change", zap.Error(err))
		return
	}
	if err := f.client.Publish(ctx, channelPrefix+change.Collection, payload).Err(); err != nil {
		f.logger.Warn("feed: redis publish failed, delivering locally", zap.Error(err))
		f.local.Publish(ctx, change)
	}
}

// Subscribe registers a listener for one collection.
func (f *RedisFeed) Subscribe(collection string) (<-chan Change, CancelFunc) {
	return f.local.Subscribe(collection)
}

// Close stops the background subscriber.
func (f *RedisFeed) Close() {
	f.cancel()
}

func (f *RedisFeed) consume(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		sub := f.client.PSubscribe(ctx, channelPrefix+"*")
		ch := sub.Channel()
		for msg := range ch {
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				f.logger.Warn("feed: bad change payload", zap.Error(err))
				continue
			}
			if change.Collection == "" {
				change.Collection = strings.TrimPrefix(msg.Channel, channelPrefix)
			}
			f.local.Publish(ctx, change)
		}
		_ = sub.Close()
		if ctx.Err() != nil {
			return
		}
		f.logger.Warn("feed: redis subscription dropped, reconnecting")
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return
		}
	}
}
