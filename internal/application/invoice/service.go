package invoice

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, req domain.SubmitInvoiceRequest, image io.Reader, filename string) (*domain.Invoice, error)
	List(ctx context.Context, storeID string, month, year int) ([]domain.Invoice, error)
	Get(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	Delete(ctx context.Context, invoiceID string) error
}

type invoiceStore interface {
	Put(ctx context.Context, inv *domain.Invoice) error
	Get(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	HardDelete(ctx context.Context, invoiceID string) error
	ListByStoreMonth(ctx context.Context, storeID string, month, year int) ([]domain.Invoice, error)
}

type imageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type eventEmitter interface {
	Emit(ev event.Event)
}

type service struct {
	repo    invoiceStore
	images  imageStore
	emitter eventEmitter
}

type ServiceDeps struct {
	InvoiceRepo invoiceStore
	ImageStore  imageStore
	Emitter     eventEmitter
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:    deps.InvoiceRepo,
		images:  deps.ImageStore,
		emitter: deps.Emitter,
	}
}

// Submit stores the invoice image, writes the invoice document and emits the
// created event. The event fires only after the document write commits, so a
// notification can never reference an invoice that was not stored.
func (s *service) Submit(ctx context.Context, req domain.SubmitInvoiceRequest, image io.Reader, filename string) (*domain.Invoice, error) {
	now := time.Now().UTC()
	inv := &domain.Invoice{
		InvoiceID:     id.New(),
		UserEmail:     req.UserEmail,
		InvoiceNumber: req.InvoiceNumber,
		CompanyName:   req.CompanyName,
		StoreID:       req.StoreID,
		InvoiceDate:   req.InvoiceDate,
		DateSubmitted: now.Format("2006-01-02"),
		TargetMonth:   req.TargetMonth,
		TargetYear:    req.TargetYear,
		Categories:    req.Categories,
		CreatedAt:     now,
	}
	if image != nil {
		key := fmt.Sprintf("invoices/%s/%s%s", req.StoreID, inv.InvoiceID, path.Ext(filename))
		url, err := s.images.Upload(ctx, key, image, "")
		if err != nil {
			return nil, fmt.Errorf("upload invoice image: %w", err)
		}
		inv.ImageURL = url
	}
	if err := s.repo.Put(ctx, inv); err != nil {
		return nil, err
	}
	s.emitter.Emit(event.Event{ID: inv.InvoiceID, Type: event.InvoiceCreated, Invoice: inv})
	return inv, nil
}

func (s *service) List(ctx context.Context, storeID string, month, year int) ([]domain.Invoice, error) {
	if storeID == "" {
		return nil, fmt.Errorf("storeID is required: %w", domain.ErrBadRequest)
	}
	return s.repo.ListByStoreMonth(ctx, storeID, month, year)
}

func (s *service) Get(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.repo.Get(ctx, invoiceID)
}

// Delete removes the invoice and emits the deleted event carrying the
// pre-delete snapshot, which the fan-out needs for the message fields.
func (s *service) Delete(ctx context.Context, invoiceID string) error {
	inv, err := s.repo.Get(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, invoiceID); err != nil {
		return err
	}
	s.emitter.Emit(event.Event{ID: inv.InvoiceID, Type: event.InvoiceDeleted, Invoice: inv})
	return nil
}
