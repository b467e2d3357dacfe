package event

import (
	"time"

	"github.com/pacpro-api/internal/domain"
)

// Event types emitted by the application services after the originating
// document write commits.
const (
	InvoiceCreated = "invoices.created"
	InvoiceDeleted = "invoices.deleted"
	UserCreated    = "users.created"
)

// Event is a document lifecycle event. ID is the triggering document's
// identifier and stays stable across redeliveries, which is what makes the
// derived notification keys deterministic. Exactly one of Invoice/User is set
// depending on Type; delete events carry the pre-delete snapshot.
type Event struct {
	ID         string
	Type       string
	Invoice    *domain.Invoice
	User       *domain.User
	OccurredAt time.Time
}
