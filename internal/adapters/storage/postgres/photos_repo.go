package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cat-a-log/internal/domain/photos"
)

type PhotosRepo struct {
	db *sql.DB
}

func NewPhotosRepo(db *sql.DB) *PhotosRepo {
	return &PhotosRepo{db: db}
}

func (r *PhotosRepo) Put(ctx context.Context, p photos.Photo) error {
	// Upsert: re-subir una foto la reemplaza.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (id, owner_user_id, content_type, data, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE
		SET owner_user_id = EXCLUDED.owner_user_id,
		    content_type = EXCLUDED.content_type,
		    data = EXCLUDED.data
	`,
		p.ID,
		p.OwnerUserID,
		p.ContentType,
		p.Data,
		p.CreatedAt,
	)
	return err
}

func (r *PhotosRepo) GetByID(ctx context.Context, id string) (photos.Photo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return photos.Photo{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, content_type, data, created_at
		FROM photos
		WHERE id = $1
	`, id)

	var p photos.Photo
	if err := row.Scan(&p.ID, &p.OwnerUserID, &p.ContentType, &p.Data, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return photos.Photo{}, ErrNotFound
		}
		return photos.Photo{}, err
	}
	return p, nil
}

func (r *PhotosRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PhotosRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]photos.Photo, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, content_type, data, created_at
		FROM photos
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]photos.Photo, 0)
	for rows.Next() {
		var p photos.Photo
		if err := rows.Scan(&p.ID, &p.OwnerUserID, &p.ContentType, &p.Data, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
