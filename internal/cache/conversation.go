package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

const (
	historyPrefix = "chat:history:"
	ownerPrefix   = "chat:owner:"
	// anonymousOwner владелец диалога без аутентификации.
	anonymousOwner = "-"
)

// ConversationStore история диалогов чат-бота. Каждый диалог это список
// сообщений, обрезаемый до limit последних и живущий ttl с последней записи.
type ConversationStore struct {
	c     *Cache
	ttl   time.Duration
	limit int64
}

// NewConversationStore создаёт хранилище диалогов.
func NewConversationStore(c *Cache, ttl time.Duration, limit int) *ConversationStore {
	return &ConversationStore{c: c, ttl: ttl, limit: int64(limit)}
}

// AppendMessages добавляет сообщения в конец диалога.
func (s *ConversationStore) AppendMessages(ctx context.Context, conversationID string, msgs ...models.ChatMessage) error {
	const op = "cache.AppendMessages"
	if len(msgs) == 0 {
		return nil
	}

	values := make([]any, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		values = append(values, data)
	}

	key := historyPrefix + conversationID
	_, err := s.c.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.LTrim(ctx, key, -s.limit, -1)
		pipe.Expire(ctx, key, s.ttl)
		pipe.Expire(ctx, ownerPrefix+conversationID, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// History возвращает не больше n последних сообщений в хронологическом порядке.
func (s *ConversationStore) History(ctx context.Context, conversationID string, n int) ([]models.ChatMessage, error) {
	const op = "cache.History"
	if n <= 0 {
		return nil, nil
	}

	raw, err := s.c.Db.LRange(ctx, historyPrefix+conversationID, int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	history := make([]models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var m models.ChatMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		history = append(history, m)
	}
	return history, nil
}

// ClaimConversation закрепляет диалог за ownerID при первом обращении и
// сообщает, принадлежит ли диалог ownerID. Пустой ownerID означает анонима.
func (s *ConversationStore) ClaimConversation(ctx context.Context, conversationID, ownerID string) (bool, error) {
	const op = "cache.ClaimConversation"
	if ownerID == "" {
		ownerID = anonymousOwner
	}

	key := ownerPrefix + conversationID
	claimed, err := s.c.Db.SetNX(ctx, key, ownerID, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if claimed {
		return true, nil
	}

	current, err := s.c.Db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return s.ClaimConversation(ctx, conversationID, ownerID)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return current == ownerID, nil
}

// DeleteConversation удаляет историю и владельца диалога.
func (s *ConversationStore) DeleteConversation(ctx context.Context, conversationID string) error {
	const op = "cache.DeleteConversation"
	if err := s.c.Db.Del(ctx, historyPrefix+conversationID, ownerPrefix+conversationID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
