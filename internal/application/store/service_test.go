package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pacpro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStoreStore struct{ mock.Mock }

func (m *mockStoreStore) Put(ctx context.Context, s *domain.Store) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockStoreStore) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	args := m.Called(ctx, storeID)
	if s, _ := args.Get(0).(*domain.Store); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStoreStore) List(ctx context.Context) ([]domain.Store, error) {
	args := m.Called(ctx)
	if stores, _ := args.Get(0).([]domain.Store); stores != nil {
		return stores, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStoreStore) Update(ctx context.Context, storeID string, updates map[string]interface{}) error {
	return m.Called(ctx, storeID, updates).Error(0)
}
func (m *mockStoreStore) HardDelete(ctx context.Context, storeID string) error {
	return m.Called(ctx, storeID).Error(0)
}
func (m *mockStoreStore) PutTombstone(ctx context.Context, d *domain.DeletedStore) error {
	return m.Called(ctx, d).Error(0)
}
func (m *mockStoreStore) GetTombstone(ctx context.Context, deletedID string) (*domain.DeletedStore, error) {
	args := m.Called(ctx, deletedID)
	if d, _ := args.Get(0).(*domain.DeletedStore); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStoreStore) ListTombstones(ctx context.Context) ([]domain.DeletedStore, error) {
	args := m.Called(ctx)
	if ds, _ := args.Get(0).([]domain.DeletedStore); ds != nil {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStoreStore) DeleteTombstone(ctx context.Context, deletedID string) error {
	return m.Called(ctx, deletedID).Error(0)
}

func TestAdd_Conflict(t *testing.T) {
	ss := &mockStoreStore{}
	ss.On("Get", mock.Anything, "store-1").Return(&domain.Store{}, nil)

	_, err := NewService(ss).Add(context.Background(), domain.StoreInput{StoreID: "store-1", Name: "Main St"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestAdd_DefaultsActive(t *testing.T) {
	ss := &mockStoreStore{}
	ss.On("Get", mock.Anything, "store-1").Return(nil, domain.ErrNotFound)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Store")).Return(nil)

	st, err := NewService(ss).Add(context.Background(), domain.StoreInput{StoreID: "store-1", Name: "Main St"})

	require.NoError(t, err)
	assert.True(t, st.Active)
}

func TestDelete_WritesTombstoneBeforeDelete(t *testing.T) {
	ss := &mockStoreStore{}
	existing := &domain.Store{StoreID: "store-1", Name: "Main St"}
	ss.On("Get", mock.Anything, "store-1").Return(existing, nil)
	ss.On("PutTombstone", mock.Anything, mock.MatchedBy(func(d *domain.DeletedStore) bool {
		return d.DeletedID == "store-1" &&
			d.Store.Name == "Main St" &&
			d.DeletedByRole == domain.RoleAdmin &&
			d.ExpireAt > time.Now().Unix()
	})).Return(nil)
	ss.On("HardDelete", mock.Anything, "store-1").Return(nil)

	err := NewService(ss).Delete(context.Background(), "store-1", domain.RoleAdmin)

	require.NoError(t, err)
	ss.AssertExpectations(t)
}

func TestDelete_TombstoneFailureKeepsStore(t *testing.T) {
	ss := &mockStoreStore{}
	ss.On("Get", mock.Anything, "store-1").Return(&domain.Store{StoreID: "store-1"}, nil)
	ss.On("PutTombstone", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	err := NewService(ss).Delete(context.Background(), "store-1", domain.RoleAdmin)

	require.Error(t, err)
	ss.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestRestore_HappyPath(t *testing.T) {
	ss := &mockStoreStore{}
	tombstone := &domain.DeletedStore{
		DeletedID: "store-1",
		Store:     domain.Store{StoreID: "store-1", Name: "Main St"},
	}
	ss.On("GetTombstone", mock.Anything, "store-1").Return(tombstone, nil)
	ss.On("Get", mock.Anything, "store-1").Return(nil, domain.ErrNotFound)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Store")).Return(nil)
	ss.On("DeleteTombstone", mock.Anything, "store-1").Return(nil)

	st, err := NewService(ss).Restore(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Equal(t, "Main St", st.Name)
	ss.AssertExpectations(t)
}

func TestRestore_ConflictWhenStoreRecreated(t *testing.T) {
	ss := &mockStoreStore{}
	ss.On("GetTombstone", mock.Anything, "store-1").Return(&domain.DeletedStore{
		DeletedID: "store-1",
		Store:     domain.Store{StoreID: "store-1"},
	}, nil)
	ss.On("Get", mock.Anything, "store-1").Return(&domain.Store{StoreID: "store-1"}, nil)

	_, err := NewService(ss).Restore(context.Background(), "store-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	ss.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
