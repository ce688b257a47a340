package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

const keyPrefix = "conversation:"

// HistoryStore implements domain.HistoryStore on Redis. Each conversation
// is one JSON value under conversation:<id>; history entries are durable,
// no TTL is applied.
type HistoryStore struct {
	client *redis.Client
}

func NewHistoryStore(client *redis.Client) *HistoryStore {
	return &HistoryStore{client: client}
}

func key(id domain.ConversationID) string {
	return keyPrefix + string(id)
}

func (s *HistoryStore) Upsert(ctx context.Context, conv *domain.Conversation) error {
	val, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("redis Upsert encode: %w", err)
	}
	if err := s.client.Set(ctx, key(conv.ID), val, 0).Err(); err != nil {
		return fmt.Errorf("redis Upsert: %w", err)
	}
	return nil
}

func (s *HistoryStore) Get(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	val, err := s.client.Get(ctx, key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis Get: %w", err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal([]byte(val), &conv); err != nil {
		return nil, fmt.Errorf("redis Get decode: %w", err)
	}
	return &conv, nil
}

func (s *HistoryStore) List(ctx context.Context) ([]*domain.Conversation, error) {
	var out []*domain.Conversation

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		val, err := s.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue // deleted between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("redis List: %w", err)
		}

		var conv domain.Conversation
		if err := json.Unmarshal([]byte(val), &conv); err != nil {
			return nil, fmt.Errorf("redis List decode: %w", err)
		}
		out = append(out, &conv)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis List scan: %w", err)
	}
	return out, nil
}

func (s *HistoryStore) Delete(ctx context.Context, id domain.ConversationID) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis Delete: %w", err)
	}
	return nil
}
