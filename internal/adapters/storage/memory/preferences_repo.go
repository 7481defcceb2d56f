package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"cat-a-log/internal/domain/preferences"
)

type preferencesRepo struct {
	mu      sync.RWMutex
	byOwner map[string]preferences.Preferences
}

func NewPreferencesRepo() preferences.Repository {
	return &preferencesRepo{
		byOwner: make(map[string]preferences.Preferences),
	}
}

func (r *preferencesRepo) Get(ctx context.Context, ownerUserID string) (preferences.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byOwner[ownerUserID]
	if !ok {
		return preferences.Preferences{}, ErrNotFound
	}
	return p, nil
}

func (r *preferencesRepo) Put(ctx context.Context, p preferences.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.OwnerUserID) == "" {
		return errors.New("owner user id required")
	}
	r.byOwner[p.OwnerUserID] = p
	return nil
}
