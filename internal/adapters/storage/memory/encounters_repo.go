package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-a-log/internal/domain/encounters"
)

var (
	ErrNotFound = errors.New("not found")
)

type encounterRepo struct {
	mu   sync.RWMutex
	byID map[string]encounters.Encounter
}

func NewEncounterRepo() encounters.Repository {
	return &encounterRepo{
		byID: make(map[string]encounters.Encounter),
	}
}

func (r *encounterRepo) Create(ctx context.Context, e encounters.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("encounter id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("encounter already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *encounterRepo) Update(ctx context.Context, e encounters.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("encounter id required")
	}
	if _, exists := r.byID[e.ID]; !exists {
		return ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *encounterRepo) GetByID(ctx context.Context, id string) (encounters.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return encounters.Encounter{}, ErrNotFound
	}
	return e, nil
}

func (r *encounterRepo) ListByOwner(ctx context.Context, ownerUserID string, filter encounters.ListFilter) ([]encounters.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]encounters.Encounter, 0)

	for _, e := range r.byID {
		if e.OwnerUserID != ownerUserID {
			continue
		}

		// Color filter
		if len(filter.Colors) > 0 {
			ok := false
			for _, c := range filter.Colors {
				if e.Color == c {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.Behavior != "" && e.Behavior != filter.Behavior {
			continue
		}

		// Date filters (spotted_at)
		if filter.From != nil && e.SpottedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.SpottedAt.After(*filter.To) {
			continue
		}

		// Query filter
		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(e.LocationName + " " + e.Notes)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, e)
	}

	// Orden por spotted_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SpottedAt.After(out[j].SpottedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *encounterRepo) AllByOwner(ctx context.Context, ownerUserID string) ([]encounters.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]encounters.Encounter, 0)
	for _, e := range r.byID {
		if e.OwnerUserID == ownerUserID {
			out = append(out, e)
		}
	}

	// Orden estable por created_at asc (consistencia entre llamadas)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *encounterRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *encounterRepo) ReplaceByOwner(ctx context.Context, ownerUserID string, items []encounters.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.byID {
		if e.OwnerUserID == ownerUserID {
			delete(r.byID, id)
		}
	}
	for _, e := range items {
		if strings.TrimSpace(e.ID) == "" {
			return errors.New("encounter id required")
		}
		e.OwnerUserID = ownerUserID
		r.byID[e.ID] = e
	}
	return nil
}
