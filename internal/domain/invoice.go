package domain

import "time"

// Invoice mirrors the document written by the invoice-submission flow.
// Attribute names are kept exactly as the client writes them; only the
// partition key follows the snake_case id convention. Invoices are immutable
// once created — the only lifecycle transitions are create and delete.
type Invoice struct {
	InvoiceID     string               `json:"id" dynamodbav:"invoice_id"`
	UserEmail     string               `json:"user_email" dynamodbav:"user_email"`
	InvoiceNumber string               `json:"invoiceNumber" dynamodbav:"invoiceNumber"`
	CompanyName   string               `json:"companyName" dynamodbav:"companyName"`
	StoreID       string               `json:"storeID" dynamodbav:"storeID"`
	InvoiceDate   string               `json:"invoiceDate" dynamodbav:"invoiceDate"`     // MM/DD/YYYY as entered
	DateSubmitted string               `json:"dateSubmitted" dynamodbav:"dateSubmitted"` // YYYY-MM-DD
	TargetMonth   int                  `json:"targetMonth" dynamodbav:"targetMonth"`
	TargetYear    int                  `json:"targetYear" dynamodbav:"targetYear"`
	ImageURL      string               `json:"imageURL" dynamodbav:"imageURL"`
	Categories    map[string][]float64 `json:"categories" dynamodbav:"categories"`
	CreatedAt     time.Time            `json:"created" dynamodbav:"created_at"`
}

// SubmitInvoiceRequest carries the non-file fields of the multipart submit form.
type SubmitInvoiceRequest struct {
	UserEmail     string               `json:"user_email" validate:"required,email"`
	InvoiceNumber string               `json:"invoiceNumber" validate:"required"`
	CompanyName   string               `json:"companyName" validate:"required"`
	StoreID       string               `json:"storeID" validate:"required"`
	InvoiceDate   string               `json:"invoiceDate"`
	TargetMonth   int                  `json:"targetMonth" validate:"required,min=1,max=12"`
	TargetYear    int                  `json:"targetYear" validate:"required,min=2000,max=2100"`
	Categories    map[string][]float64 `json:"categories"`
}
