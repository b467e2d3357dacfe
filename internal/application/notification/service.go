package notification

import (
	"context"
	"fmt"

	"github.com/pacpro-api/internal/domain"
)

// Service is the inbox side of notifications: listing and read-state
// transitions. Creation happens exclusively in the event handlers.
type Service interface {
	List(ctx context.Context, toEmail string, unreadOnly bool) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, toEmail string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, toEmail string) (int, error)
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByEmail(ctx context.Context, toEmail string) ([]domain.Notification, error)
	ListUnreadByEmail(ctx context.Context, toEmail string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, toEmail string, unreadOnly bool) ([]domain.Notification, error) {
	if unreadOnly {
		return s.repo.ListUnreadByEmail(ctx, toEmail)
	}
	return s.repo.ListByEmail(ctx, toEmail)
}

// MarkAsRead flips the read flag after verifying the notification belongs to
// the caller. Marking an already-read notification is a no-op, not an error.
func (s *service) MarkAsRead(ctx context.Context, notificationID, toEmail string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.ToEmail != toEmail {
		return nil, fmt.Errorf("notification belongs to another user: %w", domain.ErrForbidden)
	}
	if n.Read {
		return n, nil
	}
	if err := s.repo.MarkAsRead(ctx, notificationID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, toEmail string) (int, error) {
	unread, err := s.repo.ListUnreadByEmail(ctx, toEmail)
	if err != nil {
		return 0, err
	}
	for _, n := range unread {
		if err := s.repo.MarkAsRead(ctx, n.NotificationID); err != nil {
			return 0, err
		}
	}
	return len(unread), nil
}
