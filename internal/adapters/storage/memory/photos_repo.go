package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-a-log/internal/domain/photos"
)

type photoRepo struct {
	mu   sync.RWMutex
	byID map[string]photos.Photo
}

func NewPhotoRepo() photos.Repository {
	return &photoRepo{
		byID: make(map[string]photos.Photo),
	}
}

func (r *photoRepo) Put(ctx context.Context, p photos.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("photo id required")
	}
	// Put es upsert: re-subir una foto la reemplaza.
	r.byID[p.ID] = p
	return nil
}

func (r *photoRepo) GetByID(ctx context.Context, id string) (photos.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return photos.Photo{}, ErrNotFound
	}
	return p, nil
}

func (r *photoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *photoRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]photos.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]photos.Photo, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
