package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pacpro-api/internal/domain"
	"go.uber.org/zap"
)

type notificationStore interface {
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Notification, error)
}

type userStore interface {
	List(ctx context.Context) ([]domain.User, error)
}

type deadlineLister interface {
	Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]domain.Deadline, error)
}

type mailSender interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Service sends the daily digest email, one per recipient with activity in
// the last 24 hours, and SMS reminders for deadlines coming due. Both are
// best-effort: a failed recipient is logged and skipped so one bad address
// cannot starve the rest.
type Service struct {
	notifications notificationStore
	users         userStore
	deadlines     deadlineLister
	mailer        mailSender
	sms           smsSender
	reminderDays  int
	log           *zap.Logger
}

type ServiceDeps struct {
	NotificationRepo notificationStore
	UserRepo         userStore
	Deadlines        deadlineLister
	Mailer           mailSender
	SMS              smsSender
	ReminderDays     int
	Log              *zap.Logger
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		deadlines:     deps.Deadlines,
		mailer:        deps.Mailer,
		sms:           deps.SMS,
		reminderDays:  deps.ReminderDays,
		log:           deps.Log,
	}
}

// Run executes one digest cycle. Returns the number of digest emails sent.
func (s *Service) Run(ctx context.Context, now time.Time) (int, error) {
	recent, err := s.notifications.ListCreatedSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("list recent notifications: %w", err)
	}
	byEmail := make(map[string][]domain.Notification)
	for _, n := range recent {
		byEmail[n.ToEmail] = append(byEmail[n.ToEmail], n)
	}

	sent := 0
	for toEmail, notifications := range byEmail {
		body := digestBody(notifications)
		subject := fmt.Sprintf("PAC Pro daily summary: %d new notification(s)", len(notifications))
		if err := s.mailer.SendEmail(toEmail, subject, body); err != nil {
			s.log.Warn("digest email failed", zap.String("toEmail", toEmail), zap.Error(err))
			continue
		}
		sent++
	}

	s.sendDeadlineReminders(ctx, now)
	return sent, nil
}

func digestBody(notifications []domain.Notification) string {
	var b strings.Builder
	b.WriteString("Here is what happened in the last 24 hours:\n\n")
	for _, n := range notifications {
		fmt.Fprintf(&b, "- [%s] %s\n", n.Title, n.Message)
	}
	return b.String()
}

// sendDeadlineReminders texts every user with a phone number about deadlines
// due within the reminder window.
func (s *Service) sendDeadlineReminders(ctx context.Context, now time.Time) {
	if s.sms == nil || s.reminderDays <= 0 {
		return
	}
	due, err := s.deadlines.Upcoming(ctx, now, time.Duration(s.reminderDays)*24*time.Hour)
	if err != nil {
		s.log.Warn("deadline reminder lookup failed", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Warn("deadline reminder user list failed", zap.Error(err))
		return
	}
	for _, d := range due {
		message := fmt.Sprintf("PAC Pro reminder: %s is due %s.", d.Title, d.DueDate)
		for _, u := range users {
			if u.Phone == nil || *u.Phone == "" || u.Enable != 1 {
				continue
			}
			if err := s.sms.SendSMS(ctx, *u.Phone, message); err != nil {
				s.log.Warn("deadline reminder sms failed",
					zap.String("phone", *u.Phone),
					zap.Error(err))
			}
		}
	}
}

// Schedule runs the digest once a day at the given UTC hour until ctx is
// cancelled.
func (s *Service) Schedule(ctx context.Context, hourUTC int) {
	for {
		next := nextRun(time.Now().UTC(), hourUTC)
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}
		if sent, err := s.Run(ctx, time.Now().UTC()); err != nil {
			s.log.Error("digest run failed", zap.Error(err))
		} else {
			s.log.Info("digest run complete", zap.Int("emails_sent", sent))
		}
	}
}

func nextRun(now time.Time, hourUTC int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
