// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryDraftStore keeps drafts in process memory. Drafts are stored encoded so
// callers never share state with the store.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

func (store *MemoryDraftStore) Load(_ context.Context, sessionID string) (*Draft, error) {
	store.mu.Lock()
	raw, ok := store.drafts[sessionID]
	store.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (store *MemoryDraftStore) Save(_ context.Context, sessionID string, draft *Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.drafts[sessionID] = raw
	return nil
}

func (store *MemoryDraftStore) Delete(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.drafts, sessionID)
	return nil
}
