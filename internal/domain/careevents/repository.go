package careevents

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound: no hay filas que cumplan el criterio (no es una falla).
	ErrNotFound = errors.New("care event not found")

	// ErrUnavailable: no hay conexión viva con el store.
	ErrUnavailable = errors.New("care event store unavailable")

	ErrWriteFailed = errors.New("care event write failed")
	ErrQueryFailed = errors.New("care event query failed")
)

type Repository interface {
	Insert(ctx context.Context, e CareEvent) (CareEvent, error)
	LatestBySender(ctx context.Context, senderID string) (CareEvent, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Latest(ctx context.Context) (CareEvent, error)
	LatestByAction(ctx context.Context, action ActionType) (CareEvent, error)
	List(ctx context.Context, filter ListFilter) ([]CareEvent, error)
}

type ListFilter struct {
	SenderID string
	Actions  []ActionType
	From     *time.Time
	To       *time.Time
	Limit    int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// NormalizedLimit aplica default y tope al límite del filtro.
func (f ListFilter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
