package encounters

import (
	"context"
	"errors"
	"strings"
	"time"

	"cat-a-log/internal/ports/geocode"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	geo  geocode.Resolver // opcional; nil = sin reverse geocoding
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// NewServiceWithGeocoder agrega un resolver para completar location_name
// cuando el avistamiento llega solo con coordenadas.
func NewServiceWithGeocoder(repo Repository, geo geocode.Resolver) *Service {
	s := NewService(repo)
	s.geo = geo
	return s
}

type CreateInput struct {
	SpottedAt    time.Time
	LocationName string
	Latitude     *float64
	Longitude    *float64
	Color        CatColor
	CoatType     CoatType
	Behavior     Behavior
	Notes        string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Encounter, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Encounter{}, ErrInvalidInput
	}
	if in.SpottedAt.IsZero() {
		return Encounter{}, ErrInvalidInput
	}

	// Categóricos: vacío => default, valor desconocido => error.
	color := in.Color
	if color == "" {
		color = ColorOther
	}
	coat := in.CoatType
	if coat == "" {
		coat = CoatUnknown
	}
	behavior := in.Behavior
	if behavior == "" {
		behavior = BehaviorOther
	}
	if !KnownColor(color) || !KnownCoat(coat) || !KnownBehavior(behavior) {
		return Encounter{}, ErrInvalidInput
	}

	if err := checkCoords(in.Latitude, in.Longitude); err != nil {
		return Encounter{}, err
	}

	locationName := strings.TrimSpace(in.LocationName)
	if locationName == "" && in.Latitude != nil && s.geo != nil {
		// Best-effort: un fallo del geocoder no bloquea el registro.
		gctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if name, err := s.geo.ReverseGeocode(gctx, *in.Latitude, *in.Longitude); err == nil {
			locationName = name
		}
		cancel()
	}

	now := s.now()
	e := Encounter{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		SpottedAt:    in.SpottedAt,
		LocationName: locationName,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Color:        color,
		CoatType:     coat,
		Behavior:     behavior,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Encounter{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Encounter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Encounter{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Encounter, error) {
	return s.repo.ListByOwner(ctx, ownerUserID, filter)
}

// AllByOwner devuelve la colección completa del owner (la usa backup).
func (s *Service) AllByOwner(ctx context.Context, ownerUserID string) ([]Encounter, error) {
	return s.repo.AllByOwner(ctx, ownerUserID)
}

// PatchCoords envuelve lat/lon para PATCH real:
// Present=false => no tocar, Present=true y Value=nil => limpiar.
type PatchCoords struct {
	Present bool
	Value   *float64
}

type UpdateInput struct {
	SpottedAt    *time.Time
	LocationName *string
	Latitude     PatchCoords
	Longitude    PatchCoords
	Color        *CatColor
	CoatType     *CoatType
	Behavior     *Behavior
	Notes        *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Encounter, error) {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Encounter{}, err
	}
	if e.OwnerUserID != ownerUserID {
		return Encounter{}, ErrNotFound
	}

	changed := false

	if in.SpottedAt != nil {
		if in.SpottedAt.IsZero() {
			return Encounter{}, ErrInvalidInput
		}
		e.SpottedAt = *in.SpottedAt
		changed = true
	}
	if in.LocationName != nil {
		e.LocationName = strings.TrimSpace(*in.LocationName)
		changed = true
	}
	if in.Latitude.Present {
		e.Latitude = in.Latitude.Value
		changed = true
	}
	if in.Longitude.Present {
		e.Longitude = in.Longitude.Value
		changed = true
	}
	if in.Color != nil {
		if !KnownColor(*in.Color) {
			return Encounter{}, ErrInvalidInput
		}
		e.Color = *in.Color
		changed = true
	}
	if in.CoatType != nil {
		if !KnownCoat(*in.CoatType) {
			return Encounter{}, ErrInvalidInput
		}
		e.CoatType = *in.CoatType
		changed = true
	}
	if in.Behavior != nil {
		if !KnownBehavior(*in.Behavior) {
			return Encounter{}, ErrInvalidInput
		}
		e.Behavior = *in.Behavior
		changed = true
	}
	if in.Notes != nil {
		e.Notes = strings.TrimSpace(*in.Notes)
		changed = true
	}

	if err := checkCoords(e.Latitude, e.Longitude); err != nil {
		return Encounter{}, err
	}

	if !changed {
		return e, nil
	}

	// updated_at solo avanza cuando hubo edición real.
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return Encounter{}, err
	}
	return e, nil
}

// AttachPhoto asocia un blob ya subido al encounter.
func (s *Service) AttachPhoto(ctx context.Context, id, ownerUserID, photoID string) (Encounter, error) {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Encounter{}, err
	}
	if e.OwnerUserID != ownerUserID {
		return Encounter{}, ErrNotFound
	}

	e.PhotoID = strings.TrimSpace(photoID)
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return Encounter{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if e.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, e.ID)
}

// ReplaceCollection persiste una colección completa (salida del merge o replace de import).
func (s *Service) ReplaceCollection(ctx context.Context, ownerUserID string, items []Encounter) error {
	if strings.TrimSpace(ownerUserID) == "" {
		return ErrInvalidInput
	}
	return s.repo.ReplaceByOwner(ctx, ownerUserID, items)
}

func checkCoords(lat, lon *float64) error {
	// Coordenadas opcionales pero van en pareja.
	if (lat == nil) != (lon == nil) {
		return ErrInvalidInput
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return ErrInvalidInput
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return ErrInvalidInput
	}
	return nil
}
