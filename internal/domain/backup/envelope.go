package backup

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cat-a-log/internal/domain/encounters"
)

// Version del formato de export soportado.
const Version = "1"

// Envelope es el formato de backup/transferencia: registros + fotos embebidas
// en base64 + preferencias. Lo produce /export y lo consume /import.
type Envelope struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Encounters []Record          `json:"encounters"`
	Photos     map[string]string `json:"photos,omitempty"`
	Prefs      json.RawMessage   `json:"preferences,omitempty"`
	Metadata   *Metadata         `json:"metadata,omitempty"`
}

type Metadata struct {
	App         string `json:"app"`
	RecordCount int    `json:"record_count"`
}

// Record es el registro en el wire: timestamps como strings ISO-8601/RFC3339.
// Mantener los nombres estables; un export viejo debe seguir importando.
type Record struct {
	ID           string               `json:"id"`
	SpottedAt    string               `json:"spotted_at"`
	LocationName string               `json:"location_name"`
	Latitude     *float64             `json:"latitude,omitempty"`
	Longitude    *float64             `json:"longitude,omitempty"`
	Color        encounters.CatColor  `json:"color"`
	CoatType     encounters.CoatType  `json:"coat_type"`
	Behavior     encounters.Behavior  `json:"behavior"`
	Notes        string               `json:"notes"`
	PhotoID      string               `json:"photo_id,omitempty"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

func toRecord(e encounters.Encounter) Record {
	return Record{
		ID:           e.ID,
		SpottedAt:    e.SpottedAt.UTC().Format(time.RFC3339Nano),
		LocationName: e.LocationName,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		Color:        e.Color,
		CoatType:     e.CoatType,
		Behavior:     e.Behavior,
		Notes:        e.Notes,
		PhotoID:      e.PhotoID,
		CreatedAt:    e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// parseRecord normaliza un registro del wire al modelo de dominio. Los
// timestamps se parsean a instantes acá: la comparación del merge es por
// instante, nunca por representación string. Un timestamp no parseable es
// error (no lo mapeamos a epoch cero ni adivinamos).
func parseRecord(i int, rec Record, ownerUserID string) (encounters.Encounter, error) {
	spotted, err := parseInstant(rec.SpottedAt)
	if err != nil {
		return encounters.Encounter{}, fmt.Errorf("record %d (%s): spotted_at: %w", i, rec.ID, err)
	}
	updated, err := parseInstant(rec.UpdatedAt)
	if err != nil {
		return encounters.Encounter{}, fmt.Errorf("record %d (%s): updated_at: %w", i, rec.ID, err)
	}

	// created_at es informativo; si falta, cae en updated_at.
	created := updated
	if strings.TrimSpace(rec.CreatedAt) != "" {
		created, err = parseInstant(rec.CreatedAt)
		if err != nil {
			return encounters.Encounter{}, fmt.Errorf("record %d (%s): created_at: %w", i, rec.ID, err)
		}
	}

	e := encounters.Encounter{
		ID:           strings.TrimSpace(rec.ID),
		OwnerUserID:  ownerUserID,
		SpottedAt:    spotted,
		LocationName: strings.TrimSpace(rec.LocationName),
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Color:        rec.Color,
		CoatType:     rec.CoatType,
		Behavior:     rec.Behavior,
		Notes:        rec.Notes,
		PhotoID:      strings.TrimSpace(rec.PhotoID),
		CreatedAt:    created,
		UpdatedAt:    updated,
	}

	if errs := encounters.Validate(e); len(errs) > 0 {
		return encounters.Encounter{}, fmt.Errorf("record %d (%s): %s", i, rec.ID, errs[0].Error())
	}

	return e, nil
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a valid RFC3339 timestamp: %q", s)
	}
	return t, nil
}
