package domain

import "time"

// NotificationSetting controls whether a notification type is produced and
// which roles see it in the inbox UI. Stored as one item per type in the
// settings table.
type NotificationSetting struct {
	Type    string   `json:"type" dynamodbav:"type"`
	Enabled bool     `json:"enabled" dynamodbav:"enabled"`
	Roles   []string `json:"roles" dynamodbav:"roles"`
}

// DefaultNotificationSettings seeds the settings document on first read.
func DefaultNotificationSettings() []NotificationSetting {
	types := []string{
		NotificationInvoiceSubmitted,
		NotificationInvoiceDeleted,
		NotificationWelcome,
	}
	settings := make([]NotificationSetting, 0, len(types))
	for _, t := range types {
		settings = append(settings, NotificationSetting{
			Type:    t,
			Enabled: true,
			Roles:   []string{RoleAdmin},
		})
	}
	return settings
}

// InvoiceCategory is one of the canonical expense categories with its
// mapped bank account number.
type InvoiceCategory struct {
	CategoryID  string    `json:"id" dynamodbav:"category_id"`
	BankAccount string    `json:"bankAccount" dynamodbav:"bankAccount"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// InvoiceCategoryIDs is the canonical category order shown by the invoice
// settings screen and used for monthly totals.
var InvoiceCategoryIDs = []string{
	"FOOD",
	"CONDIMENT",
	"PAPER",
	"NONPRODUCT",
	"TRAVEL",
	"ADV-OTHER",
	"PROMO",
	"OUTSIDE SVC",
	"LINEN",
	"OP. SUPPLY",
	"M+R",
	"SML EQUIP",
	"UTILITIES",
	"OFFICE",
	"TRAINING",
	"CREW RELATIONS",
}

type UpdateCategoryRequest struct {
	BankAccount string `json:"bankAccount" validate:"required"`
}

type UpdateNotificationSettingsRequest struct {
	Settings []NotificationSetting `json:"settings" validate:"required,dive"`
}
