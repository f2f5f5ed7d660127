// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

// RedisDraftStore keeps drafts as JSON under a per-session key.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a Redis-backed [DraftStore]. Each save refreshes the TTL.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

/*
Load returns the session's draft.

Returns:
  - *Draft: nil when the session has no draft or it expired
  - error: connectivity or decode failures
*/
func (store *RedisDraftStore) Load(context context.Context, sessionID string) (*Draft, error) {
	raw, err := store.client.Get(context, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_featured_draft_get_failed: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("redis_featured_draft_decode_failed: %w", err)
	}
	return &draft, nil
}

func (store *RedisDraftStore) Save(context context.Context, sessionID string, draft *Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("redis_featured_draft_encode_failed: %w", err)
	}

	if err := store.client.Set(context, draftKey(sessionID), raw, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_featured_draft_set_failed: %w", err)
	}
	return nil
}

func (store *RedisDraftStore) Delete(context context.Context, sessionID string) error {
	if err := store.client.Del(context, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_featured_draft_delete_failed: %w", err)
	}
	return nil
}

// draftKey uses the same id hash as the session key, so a key listing never
// exposes a live session id.
func draftKey(sessionID string) string {
	return constants.RedisPrefixFeaturedDraft + sec.HashToken(sessionID)
}
