// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/database/schema"
	"github.com/taibuivan/tinytales/internal/platform/dberr"
)

// database is the subset of *pgxpool.Pool the recorder needs.
type database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
}

// PostgresRecorder stores the trail in portal.auditlog.
type PostgresRecorder struct {
	pool database
	now  func() time.Time
}

// NewPostgresRecorder returns a recorder backed by pool.
func NewPostgresRecorder(pool database) *PostgresRecorder {
	return &PostgresRecorder{pool: pool, now: time.Now}
}

var auditColumns = []string{
	schema.PortalAuditLog.ID,
	schema.PortalAuditLog.ActorID,
	schema.PortalAuditLog.ActorName,
	schema.PortalAuditLog.Action,
	schema.PortalAuditLog.EntityType,
	schema.PortalAuditLog.EntityID,
	schema.PortalAuditLog.Detail,
	schema.PortalAuditLog.IPAddress,
	schema.PortalAuditLog.RequestID,
	schema.PortalAuditLog.CreatedAt,
}

// Record implements [Recorder]. Failures are logged, never returned.
func (recorder *PostgresRecorder) Record(ctx context.Context, event Event) {
	entry := newEntry(ctx, event, recorder.now())

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.AuditStatementTimeout)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.PortalAuditLog.Table, strings.Join(auditColumns, ", "))

	_, err := recorder.pool.Exec(writeCtx, query,
		entry.ID, entry.ActorID, entry.ActorName, entry.Action, entry.EntityType,
		entry.EntityID, entry.Detail, entry.IPAddress, entry.RequestID, entry.CreatedAt,
	)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "audit_record_failed",
			slog.String("action", entry.Action),
			slog.String("entity_id", entry.EntityID),
			slog.Any("error", err),
		)
	}
}

// List implements [Recorder]. Entries are newest first.
func (recorder *PostgresRecorder) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var (
		conditions []string
		arguments  []any
	)

	if filter.EntityType != "" {
		arguments = append(arguments, filter.EntityType)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.PortalAuditLog.EntityType, len(arguments)))
	}
	if filter.EntityID != "" {
		arguments = append(arguments, filter.EntityID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.PortalAuditLog.EntityID, len(arguments)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	arguments = append(arguments, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s DESC LIMIT $%d`,
		strings.Join(auditColumns, ", "), schema.PortalAuditLog.Table, where,
		schema.PortalAuditLog.CreatedAt, len(arguments))

	rows, err := recorder.pool.Query(ctx, query, arguments...)
	if err != nil {
		return nil, dberr.Wrap(err, "list audit entries")
	}
	defer rows.Close()

	entries := make([]Entry, 0, filter.Limit)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.ActorName, &entry.Action, &entry.EntityType,
			&entry.EntityID, &entry.Detail, &entry.IPAddress, &entry.RequestID, &entry.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan audit entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate audit entries")
	}
	return entries, nil
}
