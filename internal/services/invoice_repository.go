package services

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// Invoice storage backends selectable by configuration.
const (
	InvoiceBackendRelational = "relational"
	InvoiceBackendDocument   = "document"
)

const (
	invoicesCollection     = "invoices"
	invoiceDuplicateNumber = "Invoice number already exists"
)

// InvoiceRepository stores invoices in either the relational or the document store.
type InvoiceRepository interface {
	List(ctx context.Context) ([]models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, id string, mutate func(*models.Invoice) error) (*models.Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NewInvoiceRepository returns the repository for backend. The document
// backend requires store.
func NewInvoiceRepository(backend string, db *gorm.DB, store *docstore.Store) (InvoiceRepository, error) {
	switch backend {
	case "", InvoiceBackendRelational:
		return NewRelationalInvoices(db)
	case InvoiceBackendDocument:
		return NewDocumentInvoices(store)
	default:
		return nil, errors.New("invoice repository: unknown backend " + backend)
	}
}

func prepareInvoice(inv *models.Invoice) error {
	inv.ClientName = sanitizer.Text(inv.ClientName)
	inv.Notes = sanitizer.Text(inv.Notes)
	if inv.Status == "" {
		inv.Status = "pending"
	}
	if inv.DeploymentID != nil && *inv.DeploymentID == "" {
		inv.DeploymentID = nil
	}
	if err := inv.Validate(); err != nil {
		return apperrors.NewValidation(err.Error())
	}
	return nil
}

// RelationalInvoices keeps invoices in the SQL database.
type RelationalInvoices struct {
	repo relational[models.Invoice]
}

// NewRelationalInvoices constructs the gorm-backed invoice repository.
func NewRelationalInvoices(db *gorm.DB) (*RelationalInvoices, error) {
	if db == nil {
		return nil, errors.New("invoice repository: db is required")
	}

	repo := newRelational[models.Invoice](db, "Invoice")
	repo.order = "issue_date DESC"
	repo.duplicate = invoiceDuplicateNumber
	repo.prepare = func(_ *gorm.DB, inv *models.Invoice) error {
		return prepareInvoice(inv)
	}
	return &RelationalInvoices{repo: repo}, nil
}

func (r *RelationalInvoices) List(ctx context.Context) ([]models.Invoice, error) {
	return r.repo.list(ctx, nil)
}

func (r *RelationalInvoices) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return r.repo.get(ctx, id)
}

func (r *RelationalInvoices) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.repo.create(ctx, invoice)
}

func (r *RelationalInvoices) Update(ctx context.Context, id string, mutate func(*models.Invoice) error) (*models.Invoice, error) {
	return r.repo.update(ctx, id, mutate)
}

func (r *RelationalInvoices) Delete(ctx context.Context, id string) (bool, error) {
	return r.repo.delete(ctx, id)
}

// DocumentInvoices keeps invoices in the "invoices" document collection.
// Invoice number uniqueness is checked before each write but, like every
// document store write, is not safe against concurrent writers.
type DocumentInvoices struct {
	docs documents[models.Invoice]
}

// NewDocumentInvoices constructs the document-backed invoice repository.
func NewDocumentInvoices(store *docstore.Store) (*DocumentInvoices, error) {
	if store == nil {
		return nil, errors.New("invoice repository: document store is required")
	}
	return &DocumentInvoices{docs: newDocuments[models.Invoice](store, invoicesCollection, "Invoice")}, nil
}

func (r *DocumentInvoices) List(ctx context.Context) ([]models.Invoice, error) {
	items, err := r.docs.all(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].IssueDate.After(items[j].IssueDate)
	})
	return items, nil
}

func (r *DocumentInvoices) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return r.docs.get(ctx, id)
}

func (r *DocumentInvoices) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := prepareInvoice(invoice); err != nil {
		return err
	}
	if err := r.ensureUniqueNumber(ctx, invoice.InvoiceNumber, ""); err != nil {
		return err
	}
	return r.docs.create(ctx, invoice)
}

func (r *DocumentInvoices) Update(ctx context.Context, id string, mutate func(*models.Invoice) error) (*models.Invoice, error) {
	current, err := r.docs.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		if err := mutate(current); err != nil {
			return nil, err
		}
	}
	if err := prepareInvoice(current); err != nil {
		return nil, err
	}
	if err := r.ensureUniqueNumber(ctx, current.InvoiceNumber, id); err != nil {
		return nil, err
	}
	return r.docs.replace(ctx, id, current)
}

func (r *DocumentInvoices) Delete(ctx context.Context, id string) (bool, error) {
	return r.docs.delete(ctx, id)
}

func (r *DocumentInvoices) ensureUniqueNumber(ctx context.Context, number, exceptID string) error {
	matches, err := r.docs.query(ctx, docstore.Document{"invoice_number": number})
	if err != nil {
		return err
	}
	for _, m := range matches {
		if m.ID != exceptID {
			return apperrors.NewValidation(invoiceDuplicateNumber)
		}
	}
	return nil
}
