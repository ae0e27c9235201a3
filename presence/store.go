// Package presence keeps a redis mirror of each user's online flag:
//
//	Key:   presence:user:<id>
//	Value: "online"
//	TTL:   PresenceTTL, refreshed on every identification
//
// The persisted status column survives restarts; these keys answer the
// "is this user online right now" question without a table scan.
package presence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyPrefix = "presence:user:"

	// PresenceTTL bounds how long a stale key can outlive a crashed
	// server instance.
	PresenceTTL = 1 * time.Hour
)

type Store struct {
	client *redis.Client
}

// NewStore connects to redis and verifies the connection.
func NewStore(addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("presence: redis connection failed: %w", err)
	}
	return &Store{client: client}, nil
}

func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) SetOnline(ctx context.Context, userID string) error {
	return s.client.Set(ctx, KeyPrefix+userID, "online", PresenceTTL).Err()
}

func (s *Store) SetOffline(ctx context.Context, userID string) error {
	return s.client.Del(ctx, KeyPrefix+userID).Err()
}

func (s *Store) IsOnline(ctx context.Context, userID string) (bool, error) {
	err := s.client.Get(ctx, KeyPrefix+userID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
