// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/constants"
)

// RedisStore implements [Store] using Redis key expiry for session lifetime.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Create stores a session for ttl.

Parameters:
  - context: context.Context
  - keyHash: hash of the session id
  - session: *Session
  - ttl: time.Duration

Returns:
  - error: Encoding or storage failures
*/
func (store *RedisStore) Create(context context.Context, keyHash string, session *Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(context, sessionKey(keyHash), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves a session.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - keyHash: hash of the session id

Returns:
  - *Session: The stored session
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisStore) Get(context context.Context, keyHash string) (*Session, error) {
	raw, err := store.client.Get(context, sessionKey(keyHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return &session, nil
}

/*
Delete removes a session. Deleting a missing session is not an error.

Parameters:
  - context: context.Context
  - keyHash: hash of the session id

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context context.Context, keyHash string) error {
	if err := store.client.Del(context, sessionKey(keyHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

func sessionKey(keyHash string) string {
	return constants.RedisPrefixSession + keyHash
}
