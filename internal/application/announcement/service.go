package announcement

import (
	"context"
	"sort"
	"time"

	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/id"
)

type Service interface {
	ListForRole(ctx context.Context, role string) ([]domain.Announcement, error)
	Add(ctx context.Context, input domain.AnnouncementInput, createdBy string) (*domain.Announcement, error)
	Delete(ctx context.Context, announcementID string) error
}

type announcementStore interface {
	Put(ctx context.Context, a *domain.Announcement) error
	Get(ctx context.Context, announcementID string) (*domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
	HardDelete(ctx context.Context, announcementID string) error
}

type service struct {
	repo announcementStore
}

func NewService(repo announcementStore) Service {
	return &service{repo: repo}
}

// ListForRole returns announcements targeted at the given role or at "All",
// newest first. Role matching uses the raw stored string, so the legacy
// lowercase admin variant is targeted with its own value.
func (s *service) ListForRole(ctx context.Context, role string) ([]domain.Announcement, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Announcement, 0, len(all))
	for _, a := range all {
		if a.Role == domain.AnnouncementAllRoles || a.Role == role {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *service) Add(ctx context.Context, input domain.AnnouncementInput, createdBy string) (*domain.Announcement, error) {
	role := input.Role
	if role == "" {
		role = domain.AnnouncementAllRoles
	}
	a := &domain.Announcement{
		AnnouncementID: id.New(),
		Title:          input.Title,
		Message:        input.Message,
		Role:           role,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, announcementID string) error {
	if _, err := s.repo.Get(ctx, announcementID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, announcementID)
}
