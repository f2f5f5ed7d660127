// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is an in-process [Store] for tests and single-instance development.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry), now: time.Now}
}

func (store *MemoryStore) Create(_ context.Context, keyHash string, session *Session, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sessions[keyHash] = memoryEntry{session: *session, expiresAt: store.now().Add(ttl)}
	return nil
}

func (store *MemoryStore) Get(_ context.Context, keyHash string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.sessions[keyHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	if !store.now().Before(entry.expiresAt) {
		delete(store.sessions, keyHash)
		return nil, apperr.NotFound("Session")
	}

	session := entry.session
	return &session, nil
}

func (store *MemoryStore) Delete(_ context.Context, keyHash string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, keyHash)
	return nil
}
