package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cat-a-log/internal/domain/encounters"
)

type EncountersRepo struct {
	db *sql.DB
}

func NewEncountersRepo(db *sql.DB) *EncountersRepo {
	return &EncountersRepo{db: db}
}

const encounterColumns = `
	id, owner_user_id,
	spotted_at, location_name,
	latitude, longitude,
	color, coat_type, behavior,
	notes, photo_id,
	created_at, updated_at
`

func (r *EncountersRepo) Create(ctx context.Context, e encounters.Encounter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO encounters (`+encounterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, insertArgs(e)...)
	return err
}

func (r *EncountersRepo) Update(ctx context.Context, e encounters.Encounter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE encounters
		SET
			spotted_at = $2,
			location_name = $3,
			latitude = $4,
			longitude = $5,
			color = $6,
			coat_type = $7,
			behavior = $8,
			notes = $9,
			photo_id = $10,
			updated_at = $11
		WHERE id = $1
	`,
		e.ID,
		e.SpottedAt,
		e.LocationName,
		toNullFloat(e.Latitude),
		toNullFloat(e.Longitude),
		string(e.Color),
		string(e.CoatType),
		string(e.Behavior),
		e.Notes,
		nullIfEmpty(e.PhotoID),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EncountersRepo) GetByID(ctx context.Context, id string) (encounters.Encounter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return encounters.Encounter{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+encounterColumns+`
		FROM encounters
		WHERE id = $1
	`, id)

	e, err := scanEncounter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return encounters.Encounter{}, ErrNotFound
		}
		return encounters.Encounter{}, err
	}
	return e, nil
}

func (r *EncountersRepo) ListByOwner(ctx context.Context, ownerUserID string, filter encounters.ListFilter) ([]encounters.Encounter, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + encounterColumns + `
		FROM encounters
		WHERE owner_user_id = $1
	`)

	args := []any{ownerUserID}
	argN := 2

	if len(filter.Colors) > 0 {
		placeholders := make([]string, 0, len(filter.Colors))
		for _, c := range filter.Colors {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(c))
			argN++
		}
		sb.WriteString(" AND color IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.Behavior != "" {
		sb.WriteString(fmt.Sprintf(" AND behavior = $%d", argN))
		args = append(args, string(filter.Behavior))
		argN++
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND spotted_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND spotted_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (location_name ILIKE $%d OR notes ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY spotted_at DESC LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEncounters(rows)
}

func (r *EncountersRepo) AllByOwner(ctx context.Context, ownerUserID string) ([]encounters.Encounter, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+encounterColumns+`
		FROM encounters
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEncounters(rows)
}

func (r *EncountersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM encounters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceByOwner sustituye la colección completa del owner en una transacción
// (persistencia del resultado del merge de import).
func (r *EncountersRepo) ReplaceByOwner(ctx context.Context, ownerUserID string, items []encounters.Encounter) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM encounters WHERE owner_user_id = $1`, ownerUserID); err != nil {
		return err
	}

	for _, e := range items {
		e.OwnerUserID = ownerUserID
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO encounters (`+encounterColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		`, insertArgs(e)...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertArgs(e encounters.Encounter) []any {
	return []any{
		e.ID,
		e.OwnerUserID,
		e.SpottedAt,
		e.LocationName,
		toNullFloat(e.Latitude),
		toNullFloat(e.Longitude),
		string(e.Color),
		string(e.CoatType),
		string(e.Behavior),
		e.Notes,
		nullIfEmpty(e.PhotoID),
		e.CreatedAt,
		e.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEncounter(row rowScanner) (encounters.Encounter, error) {
	var e encounters.Encounter
	var lat, lon sql.NullFloat64
	var color, coat, behavior string
	var photoID sql.NullString

	if err := row.Scan(
		&e.ID,
		&e.OwnerUserID,
		&e.SpottedAt,
		&e.LocationName,
		&lat,
		&lon,
		&color,
		&coat,
		&behavior,
		&e.Notes,
		&photoID,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return encounters.Encounter{}, err
	}

	if lat.Valid {
		v := lat.Float64
		e.Latitude = &v
	}
	if lon.Valid {
		v := lon.Float64
		e.Longitude = &v
	}
	if photoID.Valid {
		e.PhotoID = photoID.String
	}

	e.Color = encounters.CatColor(color)
	e.CoatType = encounters.CoatType(coat)
	e.Behavior = encounters.Behavior(behavior)

	return e, nil
}

func collectEncounters(rows *sql.Rows) ([]encounters.Encounter, error) {
	out := make([]encounters.Encounter, 0)
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
