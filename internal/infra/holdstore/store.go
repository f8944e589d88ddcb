package holdstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "exam-booking:hold:"

// releaseScript удаляет ключ, только если он принадлежит этому удержанию
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Store реестр активных удержаний в redis: ключ на сессию, значение - ID удержания, TTL - длительность удержания
type Store struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

// Acquire регистрирует удержание; повторный вызов с тем же holdID не ошибка
func (s *Store) Acquire(ctx context.Context, sessionID, holdID string, ttl time.Duration) error {
	ok, err := s.client.SetNX(ctx, s.key(sessionID), holdID, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: Acquire - set: %v", ErrRedis, err)
	}
	if ok {
		return nil
	}

	current, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		// ключ истек между SETNX и GET
		return s.Acquire(ctx, sessionID, holdID, ttl)
	}
	if err != nil {
		return fmt.Errorf("%w: Acquire - get: %v", ErrRedis, err)
	}
	if current != holdID {
		return ErrHoldConflict
	}
	return nil
}

// IsActive удержание holdID еще зарегистрировано и не истекло
func (s *Store) IsActive(ctx context.Context, sessionID, holdID string) (bool, error) {
	current, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsActive - get: %v", ErrRedis, err)
	}
	return current == holdID, nil
}

// Release снимает удержание, если оно принадлежит holdID
func (s *Store) Release(ctx context.Context, sessionID, holdID string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.key(sessionID)}, holdID).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: Release - eval: %v", ErrRedis, err)
	}
	return nil
}

// Remaining оставшееся время удержания сессии; 0 если удержания нет
func (s *Store) Remaining(ctx context.Context, sessionID string) (time.Duration, error) {
	ttl, err := s.client.PTTL(ctx, s.key(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: Remaining - pttl: %v", ErrRedis, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Ping проверка соединения при старте
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrRedis, err)
	}
	return nil
}
