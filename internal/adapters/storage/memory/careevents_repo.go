package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"unicode/utf8"

	"pet-care-log/internal/domain/careevents"
)

type careEventsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]careevents.CareEvent
}

// NewCareEventsRepo crea un repo en memoria (tests y router sin base de datos).
func NewCareEventsRepo() careevents.Repository {
	return &careEventsRepo{
		byID: make(map[int64]careevents.CareEvent),
	}
}

func (r *careEventsRepo) Insert(ctx context.Context, e careevents.CareEvent) (careevents.CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.SenderID == "" {
		return careevents.CareEvent{}, errors.New("sender id required")
	}
	// Mismos límites que las columnas VARCHAR de pet_logs (en caracteres).
	if utf8.RuneCountInString(e.SenderID) > careevents.MaxSenderIDLen ||
		utf8.RuneCountInString(string(e.Action)) > careevents.MaxActionTypeLen {
		return careevents.CareEvent{}, errors.New("value too long")
	}

	r.nextID++
	e.ID = r.nextID
	r.byID[e.ID] = e
	return e, nil
}

func (r *careEventsRepo) LatestBySender(ctx context.Context, senderID string) (careevents.CareEvent, error) {
	return r.latest(func(e careevents.CareEvent) bool { return e.SenderID == senderID })
}

func (r *careEventsRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *careEventsRepo) Latest(ctx context.Context) (careevents.CareEvent, error) {
	return r.latest(func(careevents.CareEvent) bool { return true })
}

func (r *careEventsRepo) LatestByAction(ctx context.Context, action careevents.ActionType) (careevents.CareEvent, error) {
	return r.latest(func(e careevents.CareEvent) bool { return e.Action == action })
}

func (r *careEventsRepo) List(ctx context.Context, filter careevents.ListFilter) ([]careevents.CareEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]careevents.CareEvent, 0)
	for _, e := range r.byID {
		if filter.SenderID != "" && e.SenderID != filter.SenderID {
			continue
		}

		if len(filter.Actions) > 0 {
			ok := false
			for _, a := range filter.Actions {
				if e.Action == a {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Timestamp.After(*filter.To) {
			continue
		}

		out = append(out, e)
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })

	if limit := filter.NormalizedLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *careEventsRepo) latest(match func(careevents.CareEvent) bool) (careevents.CareEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner careevents.CareEvent
	has := false
	for _, e := range r.byID {
		if !match(e) {
			continue
		}
		if !has || newer(e, winner) {
			winner = e
			has = true
		}
	}
	if !has {
		return careevents.CareEvent{}, careevents.ErrNotFound
	}
	return winner, nil
}

// newer ordena por timestamp desc y, en empate, por id desc (igual que el store SQL).
func newer(a, b careevents.CareEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}
