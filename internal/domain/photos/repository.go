package photos

import "context"

type Repository interface {
	Put(ctx context.Context, p Photo) error
	GetByID(ctx context.Context, id string) (Photo, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerUserID string) ([]Photo, error)
}
