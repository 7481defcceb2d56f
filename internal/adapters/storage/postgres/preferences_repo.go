package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cat-a-log/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

func (r *PreferencesRepo) Get(ctx context.Context, ownerUserID string) (preferences.Preferences, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return preferences.Preferences{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT owner_user_id, data, updated_at
		FROM preferences
		WHERE owner_user_id = $1
	`, ownerUserID)

	var p preferences.Preferences
	var data []byte
	if err := row.Scan(&p.OwnerUserID, &data, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return preferences.Preferences{}, ErrNotFound
		}
		return preferences.Preferences{}, err
	}
	p.Data = data
	return p, nil
}

func (r *PreferencesRepo) Put(ctx context.Context, p preferences.Preferences) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (owner_user_id, data, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (owner_user_id) DO UPDATE
		SET data = EXCLUDED.data,
		    updated_at = EXCLUDED.updated_at
	`,
		p.OwnerUserID,
		[]byte(p.Data),
		p.UpdatedAt,
	)
	return err
}
