package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/models"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

func TestInvoiceRepositories(t *testing.T) {
	backends := map[string]func(t *testing.T) InvoiceRepository{
		InvoiceBackendRelational: func(t *testing.T) InvoiceRepository {
			repo, err := NewInvoiceRepository(InvoiceBackendRelational, openDB(t), nil)
			require.NoError(t, err)
			return repo
		},
		InvoiceBackendDocument: func(t *testing.T) InvoiceRepository {
			repo, err := NewInvoiceRepository(InvoiceBackendDocument, nil, newDocStore(t))
			require.NoError(t, err)
			return repo
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			testInvoiceRepository(t, open(t))
		})
	}
}

func testInvoiceRepository(t *testing.T, repo InvoiceRepository) {
	ctx := context.Background()

	older := &models.Invoice{InvoiceNumber: "INV-001", ClientName: "Bristol Council", IssueDate: day(2025, 1, 10), DueDate: day(2025, 2, 10), Amount: 1200}
	require.NoError(t, repo.Create(ctx, older))
	require.NotEmpty(t, older.ID)
	require.Equal(t, "pending", older.Status)

	newer := &models.Invoice{InvoiceNumber: "INV-002", ClientName: "Bath Hospital", IssueDate: day(2025, 3, 1), DueDate: day(2025, 4, 1), Amount: 300.5, Notes: "<p>urgent</p>"}
	require.NoError(t, repo.Create(ctx, newer))
	require.Equal(t, "urgent", newer.Notes)

	err := repo.Create(ctx, &models.Invoice{InvoiceNumber: "INV-001", ClientName: "Dup", IssueDate: day(2025, 1, 1), DueDate: day(2025, 1, 2), Amount: 1})
	requireCode(t, err, apperrors.CodeValidation)

	err = repo.Create(ctx, &models.Invoice{InvoiceNumber: "INV-003", ClientName: "Late", IssueDate: day(2025, 2, 1), DueDate: day(2025, 1, 1), Amount: 1})
	requireCode(t, err, apperrors.CodeValidation)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "INV-002", list[0].InvoiceNumber)
	require.Equal(t, "INV-001", list[1].InvoiceNumber)

	fetched, err := repo.Get(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, "Bristol Council", fetched.ClientName)
	require.Equal(t, 1200.0, fetched.Amount)
	require.True(t, fetched.IssueDate.Equal(day(2025, 1, 10)))
	require.Nil(t, fetched.DeploymentID)

	updated, err := repo.Update(ctx, older.ID, func(inv *models.Invoice) error {
		inv.Status = "paid"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "paid", updated.Status)
	require.Equal(t, "INV-001", updated.InvoiceNumber)

	_, err = repo.Update(ctx, older.ID, func(inv *models.Invoice) error {
		inv.InvoiceNumber = "INV-002"
		return nil
	})
	requireCode(t, err, apperrors.CodeValidation)

	deleted, err := repo.Delete(ctx, older.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, older.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = repo.Get(ctx, older.ID)
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestNewInvoiceRepositoryUnknownBackend(t *testing.T) {
	_, err := NewInvoiceRepository("redis", nil, nil)
	require.Error(t, err)
}
