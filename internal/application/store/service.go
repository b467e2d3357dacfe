package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pacpro-api/internal/domain"
)

// Tombstones are kept this long before the TTL reaps them; within the window
// a deleted store can be restored.
const restoreWindow = 30 * 24 * time.Hour

const (
	fieldName    = "name"
	fieldAddress = "address"
	fieldActive  = "active"
	fieldUpdated = "updated_at"
)

type Service interface {
	List(ctx context.Context) ([]domain.Store, error)
	Get(ctx context.Context, storeID string) (*domain.Store, error)
	Add(ctx context.Context, input domain.StoreInput) (*domain.Store, error)
	Update(ctx context.Context, req domain.UpdateStoreRequest) (*domain.Store, error)
	Delete(ctx context.Context, storeID, deletedByRole string) error
	ListDeleted(ctx context.Context) ([]domain.DeletedStore, error)
	Restore(ctx context.Context, deletedID string) (*domain.Store, error)
}

type storeStore interface {
	Put(ctx context.Context, s *domain.Store) error
	Get(ctx context.Context, storeID string) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
	Update(ctx context.Context, storeID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, storeID string) error
	PutTombstone(ctx context.Context, d *domain.DeletedStore) error
	GetTombstone(ctx context.Context, deletedID string) (*domain.DeletedStore, error)
	ListTombstones(ctx context.Context) ([]domain.DeletedStore, error)
	DeleteTombstone(ctx context.Context, deletedID string) error
}

type service struct {
	repo storeStore
}

func NewService(repo storeStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Store, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	return s.repo.Get(ctx, storeID)
}

// Add registers a store under its caller-assigned id (the store number).
func (s *service) Add(ctx context.Context, input domain.StoreInput) (*domain.Store, error) {
	if _, err := s.repo.Get(ctx, input.StoreID); err == nil {
		return nil, fmt.Errorf("store %s already exists: %w", input.StoreID, domain.ErrConflict)
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	now := time.Now().UTC()
	st := &domain.Store{
		StoreID:   input.StoreID,
		Name:      input.Name,
		Address:   input.Address,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateStoreRequest) (*domain.Store, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.Active != nil {
		updates[fieldActive] = *req.Active
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, req.StoreID)
	}
	updates[fieldUpdated] = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.Update(ctx, req.StoreID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, req.StoreID)
}

// Delete moves the store into the tombstone table. The store row itself is
// removed only after the tombstone commits, so a crash in between leaves the
// store recoverable in both tables rather than in neither.
func (s *service) Delete(ctx context.Context, storeID, deletedByRole string) error {
	st, err := s.repo.Get(ctx, storeID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	tombstone := &domain.DeletedStore{
		DeletedID:     storeID,
		Store:         *st,
		DeletedByRole: deletedByRole,
		DeletedAt:     now,
		ExpireAt:      now.Add(restoreWindow).Unix(),
	}
	if err := s.repo.PutTombstone(ctx, tombstone); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, storeID)
}

func (s *service) ListDeleted(ctx context.Context) ([]domain.DeletedStore, error) {
	return s.repo.ListTombstones(ctx)
}

// Restore re-creates the store from its tombstone and removes the tombstone.
func (s *service) Restore(ctx context.Context, deletedID string) (*domain.Store, error) {
	tombstone, err := s.repo.GetTombstone(ctx, deletedID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, tombstone.Store.StoreID); err == nil {
		return nil, fmt.Errorf("store %s already exists: %w", tombstone.Store.StoreID, domain.ErrConflict)
	}
	st := tombstone.Store
	st.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, &st); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteTombstone(ctx, deletedID); err != nil {
		return nil, err
	}
	return &st, nil
}
