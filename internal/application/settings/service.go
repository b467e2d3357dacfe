package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pacpro-api/internal/domain"
)

type Service interface {
	NotificationSettings(ctx context.Context) ([]domain.NotificationSetting, error)
	UpdateNotificationSettings(ctx context.Context, req domain.UpdateNotificationSettingsRequest) ([]domain.NotificationSetting, error)
	ListCategories(ctx context.Context) ([]domain.InvoiceCategory, error)
	UpdateCategoryBankAccount(ctx context.Context, categoryID, bankAccount string) (*domain.InvoiceCategory, error)
}

type settingsStore interface {
	ListNotificationSettings(ctx context.Context) ([]domain.NotificationSetting, error)
	PutNotificationSettings(ctx context.Context, settings []domain.NotificationSetting) error
	GetCategory(ctx context.Context, categoryID string) (*domain.InvoiceCategory, error)
	PutCategory(ctx context.Context, c *domain.InvoiceCategory) error
	UpdateCategoryBankAccount(ctx context.Context, categoryID, bankAccount string) error
}

type service struct {
	repo settingsStore
}

func NewService(repo settingsStore) Service {
	return &service{repo: repo}
}

// NotificationSettings seeds and returns the defaults when the table has
// never been written.
func (s *service) NotificationSettings(ctx context.Context) ([]domain.NotificationSetting, error) {
	settings, err := s.repo.ListNotificationSettings(ctx)
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		defaults := domain.DefaultNotificationSettings()
		if err := s.repo.PutNotificationSettings(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	return settings, nil
}

func (s *service) UpdateNotificationSettings(ctx context.Context, req domain.UpdateNotificationSettingsRequest) ([]domain.NotificationSetting, error) {
	known := map[string]bool{
		domain.NotificationInvoiceSubmitted: true,
		domain.NotificationInvoiceDeleted:   true,
		domain.NotificationWelcome:          true,
	}
	for _, setting := range req.Settings {
		if !known[setting.Type] {
			return nil, fmt.Errorf("unknown notification type %q: %w", setting.Type, domain.ErrBadRequest)
		}
	}
	if err := s.repo.PutNotificationSettings(ctx, req.Settings); err != nil {
		return nil, err
	}
	return s.repo.ListNotificationSettings(ctx)
}

// ListCategories returns the canonical categories in display order, backed by
// whatever bank accounts have been stored. Unconfigured categories appear
// with an empty account.
func (s *service) ListCategories(ctx context.Context) ([]domain.InvoiceCategory, error) {
	result := make([]domain.InvoiceCategory, 0, len(domain.InvoiceCategoryIDs))
	for _, categoryID := range domain.InvoiceCategoryIDs {
		c, err := s.repo.GetCategory(ctx, categoryID)
		if errors.Is(err, domain.ErrNotFound) {
			result = append(result, domain.InvoiceCategory{CategoryID: categoryID})
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, nil
}

func (s *service) UpdateCategoryBankAccount(ctx context.Context, categoryID, bankAccount string) (*domain.InvoiceCategory, error) {
	if !isCanonicalCategory(categoryID) {
		return nil, fmt.Errorf("unknown category %q: %w", categoryID, domain.ErrBadRequest)
	}
	if _, err := s.repo.GetCategory(ctx, categoryID); errors.Is(err, domain.ErrNotFound) {
		c := &domain.InvoiceCategory{
			CategoryID:  categoryID,
			BankAccount: bankAccount,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := s.repo.PutCategory(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	} else if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCategoryBankAccount(ctx, categoryID, bankAccount); err != nil {
		return nil, err
	}
	return s.repo.GetCategory(ctx, categoryID)
}

func isCanonicalCategory(categoryID string) bool {
	for _, id := range domain.InvoiceCategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}
