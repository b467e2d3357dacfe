package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pacpro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Notification, error) {
	args := m.Called(ctx, since)
	if ns, _ := args.Get(0).([]domain.Notification); ns != nil {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if us, _ := args.Get(0).([]domain.User); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDeadlines struct{ mock.Mock }

func (m *mockDeadlines) Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]domain.Deadline, error) {
	args := m.Called(ctx, now, within)
	if ds, _ := args.Get(0).([]domain.Deadline); ds != nil {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func newService(ns *mockNotificationStore, us *mockUserStore, dl *mockDeadlines, mail *mockMailer, sms *mockSMS) *Service {
	return NewService(ServiceDeps{
		NotificationRepo: ns,
		UserRepo:         us,
		Deadlines:        dl,
		Mailer:           mail,
		SMS:              sms,
		ReminderDays:     3,
		Log:              zap.NewNop(),
	})
}

func TestRun_GroupsByRecipient(t *testing.T) {
	ns := &mockNotificationStore{}
	dl := &mockDeadlines{}
	mail := &mockMailer{}
	ns.On("ListCreatedSince", mock.Anything, mock.Anything).Return([]domain.Notification{
		{ToEmail: "a@x.com", Title: "New Invoice Submitted", Message: "one"},
		{ToEmail: "a@x.com", Title: "Invoice Deleted", Message: "two"},
		{ToEmail: "b@x.com", Title: "New Invoice Submitted", Message: "three"},
	}, nil)
	mail.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(nil)
	mail.On("SendEmail", "b@x.com", mock.Anything, mock.Anything).Return(nil)
	dl.On("Upcoming", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Deadline{}, nil)

	sent, err := newService(ns, &mockUserStore{}, dl, mail, nil).Run(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	mail.AssertExpectations(t)
}

func TestRun_FailedRecipientSkipped(t *testing.T) {
	ns := &mockNotificationStore{}
	dl := &mockDeadlines{}
	mail := &mockMailer{}
	ns.On("ListCreatedSince", mock.Anything, mock.Anything).Return([]domain.Notification{
		{ToEmail: "bad@x.com", Title: "t", Message: "m"},
		{ToEmail: "good@x.com", Title: "t", Message: "m"},
	}, nil)
	mail.On("SendEmail", "bad@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp bounce"))
	mail.On("SendEmail", "good@x.com", mock.Anything, mock.Anything).Return(nil)
	dl.On("Upcoming", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Deadline{}, nil)

	sent, err := newService(ns, &mockUserStore{}, dl, mail, nil).Run(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestRun_NoActivityNoEmails(t *testing.T) {
	ns := &mockNotificationStore{}
	dl := &mockDeadlines{}
	mail := &mockMailer{}
	ns.On("ListCreatedSince", mock.Anything, mock.Anything).Return([]domain.Notification{}, nil)
	dl.On("Upcoming", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Deadline{}, nil)

	sent, err := newService(ns, &mockUserStore{}, dl, mail, nil).Run(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	mail.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_SendsDeadlineReminders(t *testing.T) {
	ns := &mockNotificationStore{}
	us := &mockUserStore{}
	dl := &mockDeadlines{}
	sms := &mockSMS{}
	phone := "+15551234567"
	ns.On("ListCreatedSince", mock.Anything, mock.Anything).Return([]domain.Notification{}, nil)
	dl.On("Upcoming", mock.Anything, mock.Anything, 3*24*time.Hour).Return([]domain.Deadline{
		{Title: "Close books", DueDate: "2026-03-05"},
	}, nil)
	us.On("List", mock.Anything).Return([]domain.User{
		{Email: "a@x.com", Phone: &phone, Enable: 1},
		{Email: "nophone@x.com", Enable: 1},
		{Email: "disabled@x.com", Phone: &phone, Enable: 0},
	}, nil)
	sms.On("SendSMS", mock.Anything, phone, "PAC Pro reminder: Close books is due 2026-03-05.").Return(nil)

	_, err := newService(ns, us, dl, &mockMailer{}, sms).Run(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	sms.AssertNumberOfCalls(t, "SendSMS", 1)
}

func TestNextRun(t *testing.T) {
	now := time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC), nextRun(now, 7))

	after := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), nextRun(after, 7))
}
