package user

import (
	"context"
	"fmt"
	"time"

	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName      = "firstName"
	fieldLastName       = "lastName"
	fieldRole           = "role"
	fieldPhone          = "phone"
	fieldAssignedStores = "assignedStores"
	fieldEnable         = "enable"
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Add(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	Invite(ctx context.Context, req domain.InviteUserRequest) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, userID string) error
}

type mailSender interface {
	SendEmail(to, subject, body string) error
}

type eventEmitter interface {
	Emit(ev event.Event)
}

type service struct {
	repo    userStore
	mailer  mailSender
	emitter eventEmitter
	appURL  string
}

type ServiceDeps struct {
	UserRepo userStore
	Mailer   mailSender
	Emitter  eventEmitter
	AppURL   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:    deps.UserRepo,
		mailer:  deps.Mailer,
		emitter: deps.Emitter,
		appURL:  deps.AppURL,
	}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// Add creates an account through the approval flow and emits the created
// event, which produces the one-time welcome notification.
func (s *service) Add(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	u := &domain.User{
		UserID:         id.New(),
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           role,
		Phone:          req.Phone,
		AssignedStores: req.AssignedStores,
		Enable:         1,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	s.emitter.Emit(event.Event{ID: u.UserID, Type: event.UserCreated, User: u})
	return u, nil
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Role != nil {
		// Raw role strings are preserved as stored; only reject values
		// outside the known set, including the legacy lowercase variant.
		if !domain.IsAdminRole(*req.Role) && *req.Role != domain.RoleUser {
			return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
		}
		updates[fieldRole] = *req.Role
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.AssignedStores != nil {
		updates[fieldAssignedStores] = *req.AssignedStores
	}
	if req.Enable != nil {
		if *req.Enable != 0 && *req.Enable != 1 {
			return nil, fmt.Errorf("enable must be 0 or 1: %w", domain.ErrBadRequest)
		}
		updates[fieldEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, userID)
}

// Invite emails a signup link. No account document is written until the
// invitee completes the approval flow, so no welcome event fires here.
func (s *service) Invite(ctx context.Context, req domain.InviteUserRequest) error {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	greeting := "Hi"
	if req.FirstName != "" {
		greeting = "Hi " + req.FirstName
	}
	body := fmt.Sprintf("%s,\n\nYou have been invited to PAC Pro. Create your account at %s/signup to get started.\n", greeting, s.appURL)
	if err := s.mailer.SendEmail(req.Email, "You're invited to PAC Pro", body); err != nil {
		return fmt.Errorf("send invite email: %w", err)
	}
	return nil
}
