package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"solar_cleaner/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// SQLite TIMESTAMP text layout used for occurred_at.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

const selectEventsSQL = `SELECT id, occurred_at, type, message, meta FROM cleaner_events`

// Append inserts a new event. If EventID or OccurredAt are empty, they're set.
func (r *EventSQLite) Append(ctx context.Context, e models.CleanerEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cleaner_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.OccurredAt.Format(sqliteTimestampLayout),
		normalizeType(e.Type),
		e.Description,
		metaPtr,
	)

	return err
}

// List returns events filtered by [from, to] (inclusive) and/or types, ordered ASC.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, types ...string) ([]models.CleanerEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestampLayout))
	}
	if cond, targs := typeCondition(types); cond != "" {
		conds = append(conds, cond)
		args = append(args, targs...)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	return r.query(ctx, q, args...)
}

// Latest returns the newest limit events of the given types, oldest first.
func (r *EventSQLite) Latest(ctx context.Context, limit int, types ...string) ([]models.CleanerEvent, error) {
	if limit <= 0 {
		return []models.CleanerEvent{}, nil
	}

	q := selectEventsSQL
	var args []any
	if cond, targs := typeCondition(types); cond != "" {
		q += " WHERE " + cond
		args = append(args, targs...)
	}
	q += " ORDER BY occurred_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	out, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *EventSQLite) query(ctx context.Context, q string, args ...any) ([]models.CleanerEvent, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CleanerEvent, 0, 16)
	for rows.Next() {
		var ev models.CleanerEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// typeCondition builds "type IN (?, ...)" for the non-empty types.
func typeCondition(types []string) (string, []any) {
	var args []any
	for _, t := range types {
		if t = normalizeType(t); t != "" {
			args = append(args, t)
		}
	}
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return "type = ?", args
	}
	return "type IN (?" + strings.Repeat(", ?", len(args)-1) + ")", args
}
