package event

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pacpro-api/internal/domain"
	"go.uber.org/zap"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

type notificationStore interface {
	PutIfAbsent(ctx context.Context, n *domain.Notification) error
	BatchPutIfAbsent(ctx context.Context, notifications []domain.Notification) error
}

// Notifier owns the notification fan-out for document events. It only ever
// writes to the notifications collection; read state (read/readAt) belongs to
// the inbox endpoints.
type Notifier struct {
	users         userStore
	notifications notificationStore
	log           *zap.Logger
}

func NewNotifier(users userStore, notifications notificationStore, log *zap.Logger) *Notifier {
	return &Notifier{users: users, notifications: notifications, log: log}
}

// notificationKey derives the deterministic notification id for one recipient
// of one event. Redelivery of the same event produces the same keys, which the
// conditional writes then reject, so at-least-once delivery cannot duplicate
// notifications.
func notificationKey(notificationType, eventID, toEmail string) string {
	sum := sha256.Sum256([]byte(notificationType + ":" + eventID + ":" + toEmail))
	return hex.EncodeToString(sum[:])
}

// HandleInvoiceCreated notifies every supervisor except the submitter that an
// invoice was submitted. The submitter name lookup is best-effort: on any
// failure it falls back to the invoice's stored user_email and the handler
// continues. Recipient-query and commit failures propagate to the dispatcher.
func (n *Notifier) HandleInvoiceCreated(ctx context.Context, ev Event) error {
	inv := ev.Invoice
	if inv == nil {
		return fmt.Errorf("invoice created event %s has no invoice snapshot", ev.ID)
	}

	submitterName := inv.UserEmail
	if submitter, err := n.users.GetByEmail(ctx, inv.UserEmail); err != nil {
		n.log.Warn("submitter lookup failed, falling back to email",
			zap.String("email", inv.UserEmail),
			zap.Error(err))
	} else {
		submitterName = submitter.DisplayName()
	}

	admins, err := n.users.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	var notifications []domain.Notification
	for _, admin := range admins {
		if admin.Email == inv.UserEmail {
			continue
		}
		notifications = append(notifications, domain.Notification{
			NotificationID: notificationKey(domain.NotificationInvoiceSubmitted, ev.ID, admin.Email),
			ToEmail:        admin.Email,
			Type:           domain.NotificationInvoiceSubmitted,
			Title:          "New Invoice Submitted",
			Message:        fmt.Sprintf("%s submitted invoice %s from %s.", submitterName, inv.InvoiceNumber, inv.CompanyName),
			InvoiceID:      &inv.InvoiceID,
			StoreID:        &inv.StoreID,
			CreatedAt:      time.Now().UTC(),
		})
	}
	if err := n.notifications.BatchPutIfAbsent(ctx, notifications); err != nil {
		return fmt.Errorf("commit fan-out: %w", err)
	}

	n.log.Info("invoice submission notifications written",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("recipients", len(notifications)))
	return nil
}

// HandleInvoiceDeleted notifies every supervisor that an invoice was deleted.
// Unlike the create handler there is no self-exclusion and no user lookup:
// the name shown is the raw user_email, or "A user" when the snapshot carries
// none. Both asymmetries are long-standing behavior the inbox UI depends on.
func (n *Notifier) HandleInvoiceDeleted(ctx context.Context, ev Event) error {
	inv := ev.Invoice
	if inv == nil {
		return fmt.Errorf("invoice deleted event %s has no invoice snapshot", ev.ID)
	}

	submitterName := inv.UserEmail
	if submitterName == "" {
		submitterName = "A user"
	}

	admins, err := n.users.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	var notifications []domain.Notification
	for _, admin := range admins {
		notifications = append(notifications, domain.Notification{
			NotificationID: notificationKey(domain.NotificationInvoiceDeleted, ev.ID, admin.Email),
			ToEmail:        admin.Email,
			Type:           domain.NotificationInvoiceDeleted,
			Title:          "Invoice Deleted",
			Message:        fmt.Sprintf("%s deleted invoice %s from %s.", submitterName, inv.InvoiceNumber, inv.CompanyName),
			InvoiceID:      &inv.InvoiceID,
			StoreID:        &inv.StoreID,
			CreatedAt:      time.Now().UTC(),
		})
	}
	if err := n.notifications.BatchPutIfAbsent(ctx, notifications); err != nil {
		return fmt.Errorf("commit fan-out: %w", err)
	}

	n.log.Info("invoice deletion notifications written",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("recipients", len(notifications)))
	return nil
}

// HandleUserCreated writes the one-time welcome notification to the new
// user's own email. Single conditional write, no recipient resolution.
func (n *Notifier) HandleUserCreated(ctx context.Context, ev Event) error {
	u := ev.User
	if u == nil {
		return fmt.Errorf("user created event %s has no user snapshot", ev.ID)
	}

	notification := &domain.Notification{
		NotificationID: notificationKey(domain.NotificationWelcome, ev.ID, u.Email),
		ToEmail:        u.Email,
		Type:           domain.NotificationWelcome,
		Title:          "Welcome to PAC Pro",
		Message:        fmt.Sprintf("Hi %s, your account has been created. Start by exploring your dashboard!", u.FirstName),
		CreatedAt:      time.Now().UTC(),
	}
	if err := n.notifications.PutIfAbsent(ctx, notification); err != nil {
		return fmt.Errorf("write welcome notification: %w", err)
	}
	return nil
}
