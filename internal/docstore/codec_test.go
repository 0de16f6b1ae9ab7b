package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/models"
)

func TestDecodeTypedDocument(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	scheme := models.MutualAidScheme{
		ID:                 "s-1",
		Name:               "Riverside",
		StartDate:          start,
		ContributionAmount: 50,
		Balance:            150,
		Status:             "active",
	}

	doc, err := ToDocument(scheme)
	require.NoError(t, err)
	require.Equal(t, "2025-01-06T00:00:00Z", doc["start_date"])
	require.Nil(t, doc["end_date"])

	var decoded models.MutualAidScheme
	require.NoError(t, Decode(doc, &decoded))
	require.Equal(t, scheme.Name, decoded.Name)
	require.True(t, decoded.StartDate.Equal(start))
	require.Nil(t, decoded.EndDate)
	require.Equal(t, 150.0, decoded.Balance)
}

func TestDecodeEmbeddedBaseModel(t *testing.T) {
	doc := Document{
		"id":             "inv-1",
		"created_at":     "2025-02-01T10:00:00.5Z",
		"invoice_number": "INV-7",
		"issue_date":     "2025-02-01T00:00:00Z",
		"due_date":       "2025-03-01T00:00:00Z",
		"amount":         "99.5",
		"deployment_id":  nil,
	}

	var invoice models.Invoice
	require.NoError(t, Decode(doc, &invoice))
	require.Equal(t, "inv-1", invoice.ID)
	require.Equal(t, "INV-7", invoice.InvoiceNumber)
	require.Equal(t, 99.5, invoice.Amount)
	require.Equal(t, 500*time.Millisecond, time.Duration(invoice.CreatedAt.Nanosecond()))
	require.Nil(t, invoice.DeploymentID)
}
