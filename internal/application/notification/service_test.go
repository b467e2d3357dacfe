package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/pacpro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) ListByEmail(ctx context.Context, toEmail string) ([]domain.Notification, error) {
	args := m.Called(ctx, toEmail)
	if ns, _ := args.Get(0).([]domain.Notification); ns != nil {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) ListUnreadByEmail(ctx context.Context, toEmail string) ([]domain.Notification, error) {
	args := m.Called(ctx, toEmail)
	if ns, _ := args.Get(0).([]domain.Notification); ns != nil {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) MarkAsRead(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

func TestList_UnreadOnly(t *testing.T) {
	ns := &mockNotificationStore{}
	ns.On("ListUnreadByEmail", mock.Anything, "a@x.com").Return([]domain.Notification{{NotificationID: "n1"}}, nil)

	got, err := NewService(ns).List(context.Background(), "a@x.com", true)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	ns.AssertNotCalled(t, "ListByEmail", mock.Anything, mock.Anything)
}

func TestMarkAsRead_OwnershipEnforced(t *testing.T) {
	ns := &mockNotificationStore{}
	ns.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", ToEmail: "b@x.com"}, nil)

	_, err := NewService(ns).MarkAsRead(context.Background(), "n1", "a@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	ns.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkAsRead_AlreadyReadIsNoop(t *testing.T) {
	ns := &mockNotificationStore{}
	ns.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", ToEmail: "a@x.com", Read: true}, nil)

	n, err := NewService(ns).MarkAsRead(context.Background(), "n1", "a@x.com")

	require.NoError(t, err)
	assert.True(t, n.Read)
	ns.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkAsRead_HappyPath(t *testing.T) {
	ns := &mockNotificationStore{}
	unread := &domain.Notification{NotificationID: "n1", ToEmail: "a@x.com"}
	read := &domain.Notification{NotificationID: "n1", ToEmail: "a@x.com", Read: true}
	ns.On("Get", mock.Anything, "n1").Return(unread, nil).Once()
	ns.On("MarkAsRead", mock.Anything, "n1").Return(nil)
	ns.On("Get", mock.Anything, "n1").Return(read, nil).Once()

	n, err := NewService(ns).MarkAsRead(context.Background(), "n1", "a@x.com")

	require.NoError(t, err)
	assert.True(t, n.Read)
	ns.AssertExpectations(t)
}

func TestMarkAllRead_CountsUpdates(t *testing.T) {
	ns := &mockNotificationStore{}
	ns.On("ListUnreadByEmail", mock.Anything, "a@x.com").Return([]domain.Notification{
		{NotificationID: "n1"}, {NotificationID: "n2"},
	}, nil)
	ns.On("MarkAsRead", mock.Anything, "n1").Return(nil)
	ns.On("MarkAsRead", mock.Anything, "n2").Return(nil)

	count, err := NewService(ns).MarkAllRead(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	ns.AssertExpectations(t)
}
