package careevents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record inserta una fila con timestamp = ahora (UTC). No reintenta.
func (s *Service) Record(ctx context.Context, senderID string, action ActionType) (CareEvent, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" || utf8.RuneCountInString(senderID) > MaxSenderIDLen {
		return CareEvent{}, ErrInvalidInput
	}
	if !action.Valid() {
		return CareEvent{}, ErrInvalidInput
	}
	if s == nil || s.repo == nil {
		return CareEvent{}, ErrUnavailable
	}

	e := CareEvent{
		// Postgres guarda microsegundos; truncamos para que lo devuelto coincida con lo leído.
		Timestamp: s.now().UTC().Truncate(time.Microsecond),
		SenderID:  senderID,
		Action:    action,
	}

	stored, err := s.repo.Insert(ctx, e)
	if err != nil {
		return CareEvent{}, writeErr(err)
	}
	return stored, nil
}

// DeleteLatestFor borra la fila más reciente del sender (select + delete por id).
// Si otra invocación concurrente la borró primero, el resultado es NotFound.
func (s *Service) DeleteLatestFor(ctx context.Context, senderID string) (DeleteOutcome, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return NotFound, ErrInvalidInput
	}
	if s == nil || s.repo == nil {
		return NotFound, ErrUnavailable
	}

	e, err := s.repo.LatestBySender(ctx, senderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return NotFound, nil
		}
		return NotFound, queryErr(err)
	}

	ok, err := s.repo.DeleteByID(ctx, e.ID)
	if err != nil {
		return NotFound, writeErr(err)
	}
	if !ok {
		return NotFound, nil
	}
	return Deleted, nil
}

func (s *Service) Latest(ctx context.Context) (CareEvent, error) {
	if s == nil || s.repo == nil {
		return CareEvent{}, ErrUnavailable
	}
	e, err := s.repo.Latest(ctx)
	if err != nil {
		return CareEvent{}, queryErr(err)
	}
	return e, nil
}

func (s *Service) LatestByType(ctx context.Context, action ActionType) (CareEvent, error) {
	if !action.Valid() {
		return CareEvent{}, ErrInvalidInput
	}
	if s == nil || s.repo == nil {
		return CareEvent{}, ErrUnavailable
	}
	e, err := s.repo.LatestByAction(ctx, action)
	if err != nil {
		return CareEvent{}, queryErr(err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]CareEvent, error) {
	if s == nil || s.repo == nil {
		return nil, ErrUnavailable
	}
	filter.SenderID = strings.TrimSpace(filter.SenderID)
	filter.Limit = filter.NormalizedLimit()

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, queryErr(err)
	}
	return items, nil
}

func writeErr(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrWriteFailed, err)
}

func queryErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrUnavailable):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
}
