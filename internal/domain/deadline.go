package domain

import "time"

// Deadline types. "pac" deadlines drive the monthly close; "invoice"
// deadlines gate submissions.
const (
	DeadlineTypePAC     = "pac"
	DeadlineTypeInvoice = "invoice"
)

type Deadline struct {
	DeadlineID  string    `json:"id" dynamodbav:"deadline_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	DueDate     string    `json:"dueDate" dynamodbav:"dueDate"` // YYYY-MM-DD
	Type        string    `json:"type" dynamodbav:"type"`
	Recurring   bool      `json:"recurring" dynamodbav:"recurring"`
	DayOfMonth  *int      `json:"dayOfMonth,omitempty" dynamodbav:"dayOfMonth"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type DeadlineInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
	Type        string `json:"type"`
	Recurring   bool   `json:"recurring"`
	DayOfMonth  *int   `json:"dayOfMonth" validate:"omitempty,min=1,max=31"`
}
