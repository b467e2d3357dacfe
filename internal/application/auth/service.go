package auth

import (
	"context"
	"fmt"

	"github.com/pacpro-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type jwtSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	users userStore
	jwt   jwtSigner
}

func NewService(users userStore, jwt jwtSigner) Service {
	return &service{users: users, jwt: jwt}
}

// Login verifies credentials and returns a signed bearer token. Lookup and
// compare failures both map to ErrUnauthorized so responses do not reveal
// which accounts exist.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if u.Enable != 1 {
		return "", nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	bearer, err := s.jwt.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return bearer, u, nil
}
