package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisSessionKey = "arbolitics:session"
	redisEventsChan = "arbolitics:session:events"
	fieldToken      = "token"
	fieldUserData   = "userData"
)

// RedisStore keeps the session pair in a redis hash and publishes a message
// on every change. Watch subscriptions ride redis pub/sub, so managers in
// other processes converge the same way browser tabs do on storage events.
// Concurrent writers are not reconciled beyond last-write-wins.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Get(ctx context.Context) (string, []byte, error) {
	values, err := s.client.HMGet(ctx, redisSessionKey, fieldToken, fieldUserData).Result()
	if err != nil {
		return "", nil, fmt.Errorf("failed to read session hash: %w", err)
	}

	token, _ := values[0].(string)
	userData, _ := values[1].(string)
	if userData == "" {
		return token, nil, nil
	}
	return token, []byte(userData), nil
}

func (s *RedisStore) Set(ctx context.Context, token string, userData []byte) error {
	if err := s.client.HSet(ctx, redisSessionKey, fieldToken, token, fieldUserData, string(userData)).Err(); err != nil {
		return fmt.Errorf("failed to write session hash: %w", err)
	}
	return s.publish(ctx)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisSessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session hash: %w", err)
	}
	return s.publish(ctx)
}

func (s *RedisStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := s.client.Subscribe(ctx, redisEventsChan)
	// Force the subscription to be established before returning so callers
	// never miss a change made after Watch.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to session events: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}

func (s *RedisStore) publish(ctx context.Context) error {
	if err := s.client.Publish(ctx, redisEventsChan, "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish session event: %w", err)
	}
	return nil
}
