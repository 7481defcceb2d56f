package encounters

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Encounter) error
	Update(ctx context.Context, e Encounter) error
	GetByID(ctx context.Context, id string) (Encounter, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Encounter, error)
	Delete(ctx context.Context, id string) error

	// AllByOwner devuelve la colección completa sin filtros ni límite
	// (export y baseline del merge de import).
	AllByOwner(ctx context.Context, ownerUserID string) ([]Encounter, error)

	// ReplaceByOwner reemplaza la colección completa del owner (import merge/replace).
	ReplaceByOwner(ctx context.Context, ownerUserID string, items []Encounter) error
}

type ListFilter struct {
	Colors   []CatColor
	Behavior Behavior
	From     *time.Time
	To       *time.Time
	Query    string
	Limit    int
}
