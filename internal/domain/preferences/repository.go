package preferences

import "context"

type Repository interface {
	Get(ctx context.Context, ownerUserID string) (Preferences, error)
	Put(ctx context.Context, p Preferences) error
}
