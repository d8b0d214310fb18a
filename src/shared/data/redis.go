package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	claimLockPrefix = "claimlock:"
	claimLockTTL    = 10 * time.Second

	// StreamEvents carries lifecycle events for the staff bot.
	StreamEvents = "lostfound.events"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// StreamPublisher publishes lifecycle events to the Redis event stream.
type StreamPublisher struct {
	rdb *redis.Client
}

func NewStreamPublisher(rdb *redis.Client) *StreamPublisher {
	return &StreamPublisher{rdb: rdb}
}

func (p *StreamPublisher) Publish(ctx context.Context, event map[string]interface{}) error {
	_, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamEvents,
		Values: event,
	}).Result()
	return err
}

// RedisLocker serializes claim submissions per item id with a SET NX key.
// The TTL bounds how long a crashed holder can block an item.
type RedisLocker struct {
	rdb *redis.Client
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{rdb: rdb}
}

// Lock acquires the per-item lock and returns a release func. It does not
// block: a held lock means another submission for the same item is in
// flight, and the caller should fail that submission.
func (l *RedisLocker) Lock(ctx context.Context, itemID string) (func(), bool, error) {
	key := claimLockPrefix + itemID
	ok, err := l.rdb.SetNX(ctx, key, "1", claimLockTTL).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		if err := l.rdb.Del(context.Background(), key).Err(); err != nil {
			log.Printf("release claim lock %s: %v", itemID, err)
		}
	}
	return release, true, nil
}
