package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"pet-care-log/internal/domain/careevents"
)

const selectColumns = `SELECT id, timestamp, user_id, action_type FROM pet_logs`

const newestFirst = ` ORDER BY timestamp DESC, id DESC`

type CareEventsRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewCareEventsRepo(db *sql.DB, dialect Dialect) *CareEventsRepo {
	return &CareEventsRepo{db: db, dialect: dialect}
}

func (r *CareEventsRepo) Insert(ctx context.Context, e careevents.CareEvent) (careevents.CareEvent, error) {
	if r == nil || r.db == nil {
		return careevents.CareEvent{}, careevents.ErrUnavailable
	}

	row := r.db.QueryRowContext(ctx, r.dialect.rebind(`
		INSERT INTO pet_logs (timestamp, user_id, action_type)
		VALUES (?, ?, ?)
		RETURNING id
	`),
		e.Timestamp.UTC(),
		e.SenderID,
		string(e.Action),
	)
	if err := row.Scan(&e.ID); err != nil {
		return careevents.CareEvent{}, r.mapErr(ctx, err)
	}
	return e, nil
}

func (r *CareEventsRepo) LatestBySender(ctx context.Context, senderID string) (careevents.CareEvent, error) {
	return r.queryOne(ctx, selectColumns+` WHERE user_id = ?`+newestFirst+` LIMIT 1`, senderID)
}

func (r *CareEventsRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if r == nil || r.db == nil {
		return false, careevents.ErrUnavailable
	}

	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM pet_logs WHERE id = ?`), id)
	if err != nil {
		return false, r.mapErr(ctx, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, r.mapErr(ctx, err)
	}
	return n > 0, nil
}

func (r *CareEventsRepo) Latest(ctx context.Context) (careevents.CareEvent, error) {
	return r.queryOne(ctx, selectColumns+newestFirst+` LIMIT 1`)
}

func (r *CareEventsRepo) LatestByAction(ctx context.Context, action careevents.ActionType) (careevents.CareEvent, error) {
	return r.queryOne(ctx, selectColumns+` WHERE action_type = ?`+newestFirst+` LIMIT 1`, string(action))
}

func (r *CareEventsRepo) List(ctx context.Context, filter careevents.ListFilter) ([]careevents.CareEvent, error) {
	if r == nil || r.db == nil {
		return nil, careevents.ErrUnavailable
	}

	sb := strings.Builder{}
	sb.WriteString(selectColumns)
	sb.WriteString(` WHERE 1 = 1`)

	args := []any{}

	if filter.SenderID != "" {
		sb.WriteString(` AND user_id = ?`)
		args = append(args, filter.SenderID)
	}

	if len(filter.Actions) > 0 {
		placeholders := make([]string, 0, len(filter.Actions))
		for _, a := range filter.Actions {
			placeholders = append(placeholders, "?")
			args = append(args, string(a))
		}
		sb.WriteString(` AND action_type IN (` + strings.Join(placeholders, ",") + `)`)
	}

	if filter.From != nil {
		sb.WriteString(` AND timestamp >= ?`)
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		sb.WriteString(` AND timestamp <= ?`)
		args = append(args, filter.To.UTC())
	}

	sb.WriteString(newestFirst)
	sb.WriteString(` LIMIT ?`)
	args = append(args, filter.NormalizedLimit())

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(sb.String()), args...)
	if err != nil {
		return nil, r.mapErr(ctx, err)
	}
	defer rows.Close()

	out := make([]careevents.CareEvent, 0)
	for rows.Next() {
		e, err := scanCareEvent(rows)
		if err != nil {
			return nil, r.mapErr(ctx, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapErr(ctx, err)
	}
	return out, nil
}

func (r *CareEventsRepo) queryOne(ctx context.Context, query string, args ...any) (careevents.CareEvent, error) {
	if r == nil || r.db == nil {
		return careevents.CareEvent{}, careevents.ErrUnavailable
	}

	row := r.db.QueryRowContext(ctx, r.dialect.rebind(query), args...)
	e, err := scanCareEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return careevents.CareEvent{}, careevents.ErrNotFound
		}
		return careevents.CareEvent{}, r.mapErr(ctx, err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCareEvent(s scanner) (careevents.CareEvent, error) {
	var e careevents.CareEvent
	var action string
	if err := s.Scan(&e.ID, &e.Timestamp, &e.SenderID, &action); err != nil {
		return careevents.CareEvent{}, err
	}
	// Valores fuera del set conocido se dejan pasar tal cual (datos históricos).
	e.Action = careevents.ActionType(action)
	e.Timestamp = e.Timestamp.UTC()
	return e, nil
}

// mapErr distingue "sin conexión" de cualquier otra falla del driver.
// Si el error no lo dice por sí mismo, un ping decide: pool cerrado o servidor caído => ErrUnavailable.
func (r *CareEventsRepo) mapErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var connectErr *pgconn.ConnectError
	if errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.As(err, &connectErr) ||
		!r.alive(ctx) {
		return fmt.Errorf("%w: %v", careevents.ErrUnavailable, err)
	}
	return err
}

func (r *CareEventsRepo) alive(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	return r.db.PingContext(pingCtx) == nil
}
