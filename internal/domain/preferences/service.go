package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

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

func (s *Service) Get(ctx context.Context, ownerUserID string) (Preferences, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Preferences{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, ownerUserID)
}

func (s *Service) Put(ctx context.Context, ownerUserID string, data json.RawMessage) (Preferences, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Preferences{}, ErrInvalidInput
	}
	if len(data) == 0 || !json.Valid(data) {
		return Preferences{}, ErrInvalidInput
	}

	p := Preferences{
		OwnerUserID: ownerUserID,
		Data:        data,
		UpdatedAt:   s.now(),
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}
