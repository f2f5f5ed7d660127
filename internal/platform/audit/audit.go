// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit keeps an operational trail of staff mutations.

The trail records who did what to which entity and when. It never stores copies of
entities: the backend stays the only source of truth for content. Recording is
best-effort. A failed write is logged and the staff member's request carries on.
*/
package audit

import (
	"context"
	"time"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/pkg/uuid"
)

// Event is a mutation reported by a service.
type Event struct {
	Action     string
	EntityType string
	EntityID   string
	Detail     string
}

// Entry is a stored audit row.
type Entry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Detail     string    `json:"detail,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Filter narrows the audit screen.
type Filter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// Recorder writes and reads the trail.
type Recorder interface {
	Record(ctx context.Context, event Event)
	List(ctx context.Context, filter Filter) ([]Entry, error)
}

// newEntry stamps event with the actor, address and request of ctx.
func newEntry(ctx context.Context, event Event, now time.Time) Entry {
	entry := Entry{
		ID:         uuid.New(),
		Action:     event.Action,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Detail:     event.Detail,
		IPAddress:  ctxutil.GetClientIP(ctx),
		RequestID:  ctxutil.GetRequestID(ctx),
		CreatedAt:  now.UTC(),
	}

	if claims := ctxutil.GetAuthUser(ctx); claims != nil {
		entry.ActorID = claims.UserID
		entry.ActorName = claims.Username
	}
	if entry.ActorID == "" {
		entry.ActorID = "anonymous"
	}

	return entry
}

// # Nop

// Nop discards events. It is used when no database is configured.
type Nop struct{}

// Record implements [Recorder].
func (Nop) Record(context.Context, Event) {}

// List implements [Recorder].
func (Nop) List(context.Context, Filter) ([]Entry, error) {
	return nil, apperr.ServiceUnavailable("The audit trail is not enabled on this portal")
}
