package deadline

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

type mockDeadlineStore struct{ mock.Mock }

func (m *mockDeadlineStore) Put(ctx context.Context, d *domain.Deadline) error {
	return m.Called(ctx, d).Error(0)
}
func (m *mockDeadlineStore) Get(ctx context.Context, deadlineID string) (*domain.Deadline, error) {
	args := m.Called(ctx, deadlineID)
	if d, _ := args.Get(0).(*domain.Deadline); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDeadlineStore) List(ctx context.Context) ([]domain.Deadline, error) {
	args := m.Called(ctx)
	if ds, _ := args.Get(0).([]domain.Deadline); ds != nil {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDeadlineStore) Update(ctx context.Context, deadlineID string, updates map[string]interface{}) error {
	return m.Called(ctx, deadlineID, updates).Error(0)
}
func (m *mockDeadlineStore) HardDelete(ctx context.Context, deadlineID string) error {
	return m.Called(ctx, deadlineID).Error(0)
}

func ptr[T any](v T) *T { return &v }

func TestNextDueDate_OneShot(t *testing.T) {
	due, err := NextDueDate(&domain.Deadline{DueDate: "2026-03-10"}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDueDate_RecurringRollsToNextMonth(t *testing.T) {
	d := &domain.Deadline{Recurring: true, DayOfMonth: ptr(5)}
	due, err := NextDueDate(d, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDueDate_RecurringClampsShortMonth(t *testing.T) {
	d := &domain.Deadline{Recurring: true, DayOfMonth: ptr(31)}
	due, err := NextDueDate(d, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), due)
}

func TestUpcoming_FiltersAndSorts(t *testing.T) {
	ds := &mockDeadlineStore{}
	ds.On("List", mock.Anything).Return([]domain.Deadline{
		{DeadlineID: "far", DueDate: "2026-06-01"},
		{DeadlineID: "soon", DueDate: "2026-03-04"},
		{DeadlineID: "sooner", DueDate: "2026-03-02"},
		{DeadlineID: "past", DueDate: "2026-02-01"},
		{DeadlineID: "bad", DueDate: "not-a-date"},
	}, nil)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got, err := NewService(ds).Upcoming(context.Background(), now, 7*24*time.Hour)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sooner", got[0].DeadlineID)
	assert.Equal(t, "soon", got[1].DeadlineID)
}

func TestAdd_RejectsBadDate(t *testing.T) {
	_, err := NewService(&mockDeadlineStore{}).Add(context.Background(), domain.DeadlineInput{
		Title: "Close books", DueDate: "03/15/2026",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestAdd_RecurringNeedsDayOfMonth(t *testing.T) {
	_, err := NewService(&mockDeadlineStore{}).Add(context.Background(), domain.DeadlineInput{
		Title: "Close books", DueDate: "2026-03-15", Recurring: true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestAdd_DefaultsTypeToPAC(t *testing.T) {
	ds := &mockDeadlineStore{}
	ds.On("Put", mock.Anything, mock.AnythingOfType("*domain.Deadline")).Return(nil)

	d, err := NewService(ds).Add(context.Background(), domain.DeadlineInput{
		Title: "Close books", DueDate: "2026-03-15",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DeadlineTypePAC, d.Type)
	assert.NotEmpty(t, d.DeadlineID)
}

func TestDelete_NotFound(t *testing.T) {
	ds := &mockDeadlineStore{}
	ds.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	err := NewService(ds).Delete(context.Background(), "missing")

	require.Error(t, err)
	ds.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}
