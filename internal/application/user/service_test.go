package user

import (
	"context"
	"errors"
	"testing"

	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, _ := args.Get(0).([]domain.User); users != nil {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) HardDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockEmitter struct{ mock.Mock }

func (m *mockEmitter) Emit(ev event.Event) {
	m.Called(ev)
}

// --- helpers ---

func newService(us *mockUserStore, mail *mockMailer, em *mockEmitter) Service {
	return NewService(ServiceDeps{
		UserRepo: us,
		Mailer:   mail,
		Emitter:  em,
		AppURL:   "https://pac.example.com",
	})
}

func ptr[T any](v T) *T { return &v }

// --- Add tests ---

func TestAdd_EmailConflict(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(&domain.User{}, nil)

	svc := newService(us, nil, &mockEmitter{})
	_, err := svc.Add(context.Background(), domain.CreateUserRequest{Email: "new@x.com", FirstName: "Sam"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestAdd_EmitsUserCreated(t *testing.T) {
	us := &mockUserStore{}
	em := &mockEmitter{}
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	em.On("Emit", mock.MatchedBy(func(ev event.Event) bool {
		return ev.Type == event.UserCreated && ev.User != nil && ev.User.Email == "new@x.com"
	})).Return()

	svc := newService(us, nil, em)
	u, err := svc.Add(context.Background(), domain.CreateUserRequest{Email: "new@x.com", FirstName: "Sam"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, 1, u.Enable)
	em.AssertNumberOfCalls(t, "Emit", 1)
}

func TestAdd_PutFailureDoesNotEmit(t *testing.T) {
	us := &mockUserStore{}
	em := &mockEmitter{}
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := newService(us, nil, em)
	_, err := svc.Add(context.Background(), domain.CreateUserRequest{Email: "new@x.com"})

	require.Error(t, err)
	em.AssertNotCalled(t, "Emit", mock.Anything)
}

// --- Update tests ---

func TestUpdate_EmptyRequestReturnsExisting(t *testing.T) {
	us := &mockUserStore{}
	existing := &domain.User{UserID: "u1", Email: "a@x.com"}
	us.On("Get", mock.Anything, "u1").Return(existing, nil)

	svc := newService(us, nil, &mockEmitter{})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing, u)
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_InvalidRole(t *testing.T) {
	svc := newService(&mockUserStore{}, nil, &mockEmitter{})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Role: ptr("superuser")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_AcceptsLegacyLowercaseAdmin(t *testing.T) {
	us := &mockUserStore{}
	updated := &domain.User{UserID: "u1", Role: "admin"}
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates[fieldRole] == "admin"
	})).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(updated, nil)

	svc := newService(us, nil, &mockEmitter{})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Role: ptr("admin")})

	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	us.AssertExpectations(t)
}

func TestUpdate_InvalidEnable(t *testing.T) {
	svc := newService(&mockUserStore{}, nil, &mockEmitter{})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Enable: ptr(2)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Delete tests ---

func TestDelete_NotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := newService(us, nil, &mockEmitter{})
	err := svc.Delete(context.Background(), "missing")

	require.Error(t, err)
	us.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

// --- Invite tests ---

func TestInvite_SendsEmail(t *testing.T) {
	us := &mockUserStore{}
	mail := &mockMailer{}
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound)
	mail.On("SendEmail", "new@x.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	svc := newService(us, mail, &mockEmitter{})
	err := svc.Invite(context.Background(), domain.InviteUserRequest{Email: "new@x.com", FirstName: "Sam"})

	require.NoError(t, err)
	mail.AssertExpectations(t)
}

func TestInvite_ExistingEmailConflicts(t *testing.T) {
	us := &mockUserStore{}
	mail := &mockMailer{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{}, nil)

	svc := newService(us, mail, &mockEmitter{})
	err := svc.Invite(context.Background(), domain.InviteUserRequest{Email: "a@x.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	mail.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}
