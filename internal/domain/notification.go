package domain

import "time"

// Notification types written by the document-event handlers.
const (
	NotificationInvoiceSubmitted = "invoice_submitted"
	NotificationInvoiceDeleted   = "invoice_deleted"
	NotificationWelcome          = "welcome"
)

// Notification is write-only from the event handlers' perspective; the inbox
// endpoints own the read/readAt transitions. NotificationID is a deterministic
// key derived from the triggering event and recipient, so a redelivered event
// maps to the same item instead of a duplicate.
type Notification struct {
	NotificationID string     `json:"id" dynamodbav:"notification_id"`
	ToEmail        string     `json:"toEmail" dynamodbav:"toEmail"`
	Type           string     `json:"type" dynamodbav:"type"`
	Title          string     `json:"title" dynamodbav:"title"`
	Message        string     `json:"message" dynamodbav:"message"`
	InvoiceID      *string    `json:"invoiceId,omitempty" dynamodbav:"invoiceId"`
	StoreID        *string    `json:"storeId,omitempty" dynamodbav:"storeId"`
	Read           bool       `json:"read" dynamodbav:"read"`
	ReadAt         *time.Time `json:"readAt,omitempty" dynamodbav:"readAt"`
	CreatedAt      time.Time  `json:"createdAt" dynamodbav:"created_at"`
}
