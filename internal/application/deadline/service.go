package deadline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/id"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDueDate     = "dueDate"
	fieldType        = "type"
	fieldRecurring   = "recurring"
	fieldDayOfMonth  = "dayOfMonth"
	fieldUpdated     = "updated_at"
)

type Service interface {
	List(ctx context.Context) ([]domain.Deadline, error)
	Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]domain.Deadline, error)
	Add(ctx context.Context, input domain.DeadlineInput) (*domain.Deadline, error)
	Update(ctx context.Context, deadlineID string, input domain.DeadlineInput) (*domain.Deadline, error)
	Delete(ctx context.Context, deadlineID string) error
}

type deadlineStore interface {
	Put(ctx context.Context, d *domain.Deadline) error
	Get(ctx context.Context, deadlineID string) (*domain.Deadline, error)
	List(ctx context.Context) ([]domain.Deadline, error)
	Update(ctx context.Context, deadlineID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, deadlineID string) error
}

type service struct {
	repo deadlineStore
}

func NewService(repo deadlineStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Deadline, error) {
	return s.repo.List(ctx)
}

// NextDueDate resolves a deadline's next occurrence on or after now.
// Recurring deadlines roll to dayOfMonth of the current or next month;
// one-shot deadlines keep their stored date. Day 29-31 clamps to the last
// day of short months.
func NextDueDate(d *domain.Deadline, now time.Time) (time.Time, error) {
	if !d.Recurring || d.DayOfMonth == nil {
		return time.Parse("2006-01-02", d.DueDate)
	}
	due := clampedDate(now.Year(), now.Month(), *d.DayOfMonth)
	if due.Before(now.Truncate(24 * time.Hour)) {
		due = clampedDate(now.Year(), now.Month()+1, *d.DayOfMonth)
	}
	return due, nil
}

func clampedDate(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Upcoming returns deadlines due within the window, soonest first. Deadlines
// with unparseable dates are skipped rather than failing the whole list.
func (s *service) Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]domain.Deadline, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := now.Add(within)
	type dated struct {
		deadline domain.Deadline
		due      time.Time
	}
	var upcoming []dated
	for _, d := range all {
		due, err := NextDueDate(&d, now)
		if err != nil {
			continue
		}
		if due.Before(now.Truncate(24*time.Hour)) || due.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, dated{deadline: d, due: due})
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].due.Before(upcoming[j].due) })
	result := make([]domain.Deadline, 0, len(upcoming))
	for _, u := range upcoming {
		d := u.deadline
		d.DueDate = u.due.Format("2006-01-02")
		result = append(result, d)
	}
	return result, nil
}

func (s *service) Add(ctx context.Context, input domain.DeadlineInput) (*domain.Deadline, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d := &domain.Deadline{
		DeadlineID:  id.New(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Type:        deadlineType(input.Type),
		Recurring:   input.Recurring,
		DayOfMonth:  input.DayOfMonth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, deadlineID string, input domain.DeadlineInput) (*domain.Deadline, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, deadlineID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldTitle:       input.Title,
		fieldDescription: input.Description,
		fieldDueDate:     input.DueDate,
		fieldType:        deadlineType(input.Type),
		fieldRecurring:   input.Recurring,
		fieldUpdated:     time.Now().UTC().Format(time.RFC3339),
	}
	if input.DayOfMonth != nil {
		updates[fieldDayOfMonth] = *input.DayOfMonth
	}
	if err := s.repo.Update(ctx, deadlineID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, deadlineID)
}

func (s *service) Delete(ctx context.Context, deadlineID string) error {
	if _, err := s.repo.Get(ctx, deadlineID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, deadlineID)
}

func validateInput(input domain.DeadlineInput) error {
	if _, err := time.Parse("2006-01-02", input.DueDate); err != nil {
		return fmt.Errorf("dueDate must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}
	if input.Recurring && input.DayOfMonth == nil {
		return fmt.Errorf("recurring deadlines need dayOfMonth: %w", domain.ErrBadRequest)
	}
	return nil
}

func deadlineType(t string) string {
	if t == domain.DeadlineTypeInvoice {
		return domain.DeadlineTypeInvoice
	}
	return domain.DeadlineTypePAC
}
