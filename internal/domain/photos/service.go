package photos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// MaxUploadBytes limita el tamaño del upload antes de decodificar.
const MaxUploadBytes = 15 << 20 // 15MB

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Store reescala/reencodea y persiste el blob. Devuelve la foto ya procesada.
func (s *Service) Store(ctx context.Context, ownerUserID string, data []byte) (Photo, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Photo{}, ErrInvalidInput
	}
	if len(data) == 0 || len(data) > MaxUploadBytes {
		return Photo{}, ErrInvalidInput
	}

	processed, err := Downscale(data)
	if err != nil {
		if errors.Is(err, ErrNotAnImage) {
			return Photo{}, ErrInvalidInput
		}
		return Photo{}, err
	}

	p := Photo{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		ContentType: "image/jpeg",
		Data:        processed,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return Photo{}, err
	}
	return p, nil
}

// StoreImported persiste un blob que ya viene procesado de un export nuestro,
// conservando su id para que las referencias photo_id sigan válidas.
func (s *Service) StoreImported(ctx context.Context, ownerUserID, id string, data []byte) (Photo, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return Photo{}, ErrInvalidInput
	}
	if len(data) == 0 || len(data) > MaxUploadBytes {
		return Photo{}, ErrInvalidInput
	}

	// Igual pasa por Downscale: un envelope externo puede traer cualquier cosa.
	processed, err := Downscale(data)
	if err != nil {
		if errors.Is(err, ErrNotAnImage) {
			return Photo{}, ErrInvalidInput
		}
		return Photo{}, err
	}

	p := Photo{
		ID:          strings.TrimSpace(id),
		OwnerUserID: ownerUserID,
		ContentType: "image/jpeg",
		Data:        processed,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return Photo{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Photo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Photo{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Photo, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if p.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, p.ID)
}
