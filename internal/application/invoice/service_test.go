package invoice

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockInvoiceStore struct{ mock.Mock }

func (m *mockInvoiceStore) Put(ctx context.Context, inv *domain.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *mockInvoiceStore) Get(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if inv, _ := args.Get(0).(*domain.Invoice); inv != nil {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockInvoiceStore) HardDelete(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}
func (m *mockInvoiceStore) ListByStoreMonth(ctx context.Context, storeID string, month, year int) ([]domain.Invoice, error) {
	args := m.Called(ctx, storeID, month, year)
	if invs, _ := args.Get(0).([]domain.Invoice); invs != nil {
		return invs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

type mockEmitter struct{ mock.Mock }

func (m *mockEmitter) Emit(ev event.Event) {
	m.Called(ev)
}

// --- helpers ---

func newService(is *mockInvoiceStore, img *mockImageStore, em *mockEmitter) Service {
	return NewService(ServiceDeps{InvoiceRepo: is, ImageStore: img, Emitter: em})
}

func submitReq() domain.SubmitInvoiceRequest {
	return domain.SubmitInvoiceRequest{
		UserEmail:     "a@x.com",
		InvoiceNumber: "INV-42",
		CompanyName:   "Acme Foods",
		StoreID:       "store-1",
		TargetMonth:   3,
		TargetYear:    2026,
		Categories:    map[string][]float64{"FOOD": {12.50}},
	}
}

// --- Submit tests ---

func TestSubmit_WritesAndEmitsCreated(t *testing.T) {
	is := &mockInvoiceStore{}
	em := &mockEmitter{}
	is.On("Put", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	em.On("Emit", mock.MatchedBy(func(ev event.Event) bool {
		return ev.Type == event.InvoiceCreated && ev.Invoice != nil && ev.ID == ev.Invoice.InvoiceID
	})).Return()

	inv, err := newService(is, nil, em).Submit(context.Background(), submitReq(), nil, "")

	require.NoError(t, err)
	assert.NotEmpty(t, inv.InvoiceID)
	assert.Equal(t, "INV-42", inv.InvoiceNumber)
	is.AssertExpectations(t)
	em.AssertExpectations(t)
}

func TestSubmit_UploadsImage(t *testing.T) {
	is := &mockInvoiceStore{}
	img := &mockImageStore{}
	em := &mockEmitter{}
	img.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "invoices/store-1/") && strings.HasSuffix(key, ".jpg")
	}), mock.Anything, "").Return("https://bucket/key.jpg", nil)
	is.On("Put", mock.Anything, mock.Anything).Return(nil)
	em.On("Emit", mock.Anything).Return()

	inv, err := newService(is, img, em).Submit(context.Background(), submitReq(), strings.NewReader("img"), "receipt.jpg")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket/key.jpg", inv.ImageURL)
	img.AssertExpectations(t)
}

func TestSubmit_UploadFailureAborts(t *testing.T) {
	is := &mockInvoiceStore{}
	img := &mockImageStore{}
	em := &mockEmitter{}
	img.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("s3 down"))

	_, err := newService(is, img, em).Submit(context.Background(), submitReq(), strings.NewReader("img"), "receipt.jpg")

	require.Error(t, err)
	is.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	em.AssertNotCalled(t, "Emit", mock.Anything)
}

func TestSubmit_PutFailureDoesNotEmit(t *testing.T) {
	is := &mockInvoiceStore{}
	em := &mockEmitter{}
	is.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	_, err := newService(is, nil, em).Submit(context.Background(), submitReq(), nil, "")

	require.Error(t, err)
	em.AssertNotCalled(t, "Emit", mock.Anything)
}

// --- List tests ---

func TestList_RequiresStoreID(t *testing.T) {
	svc := newService(&mockInvoiceStore{}, nil, &mockEmitter{})
	_, err := svc.List(context.Background(), "", 3, 2026)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Delete tests ---

func TestDelete_EmitsDeletedWithSnapshot(t *testing.T) {
	is := &mockInvoiceStore{}
	em := &mockEmitter{}
	existing := &domain.Invoice{InvoiceID: "i1", UserEmail: "a@x.com", InvoiceNumber: "INV-42"}
	is.On("Get", mock.Anything, "i1").Return(existing, nil)
	is.On("HardDelete", mock.Anything, "i1").Return(nil)
	em.On("Emit", mock.MatchedBy(func(ev event.Event) bool {
		return ev.Type == event.InvoiceDeleted && ev.Invoice == existing
	})).Return()

	err := newService(is, nil, em).Delete(context.Background(), "i1")

	require.NoError(t, err)
	is.AssertExpectations(t)
	em.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	is := &mockInvoiceStore{}
	em := &mockEmitter{}
	is.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	err := newService(is, nil, em).Delete(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	is.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
	em.AssertNotCalled(t, "Emit", mock.Anything)
}

func TestDelete_HardDeleteFailureDoesNotEmit(t *testing.T) {
	is := &mockInvoiceStore{}
	em := &mockEmitter{}
	is.On("Get", mock.Anything, "i1").Return(&domain.Invoice{InvoiceID: "i1"}, nil)
	is.On("HardDelete", mock.Anything, "i1").Return(errors.New("dynamo down"))

	err := newService(is, nil, em).Delete(context.Background(), "i1")

	require.Error(t, err)
	em.AssertNotCalled(t, "Emit", mock.Anything)
}
