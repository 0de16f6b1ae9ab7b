package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/models"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

func TestAlertServiceResolve(t *testing.T) {
	db := openDB(t)
	svc, err := NewAlertService(db)
	require.NoError(t, err)
	ctx := context.Background()

	fixed := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	alert := &models.Alert{Title: "Low level", Message: "B-001 below <i>10%</i>", AlertType: "level", Priority: "high"}
	require.NoError(t, svc.Create(ctx, alert))
	require.Equal(t, models.AlertOpen, alert.Status)
	require.Equal(t, "B-001 below 10%", alert.Message)

	resolved, err := svc.Resolve(ctx, alert.ID)
	require.NoError(t, err)
	require.Equal(t, models.AlertResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	require.True(t, resolved.ResolvedAt.Equal(fixed))

	svc.now = func() time.Time { return fixed.Add(time.Hour) }
	again, err := svc.Resolve(ctx, alert.ID)
	require.NoError(t, err)
	require.True(t, again.ResolvedAt.Equal(fixed))

	open, err := svc.List(ctx, Filter{"status": models.AlertOpen})
	require.NoError(t, err)
	require.Empty(t, open)

	_, err = svc.Resolve(ctx, "missing")
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestAlertServiceRequiresText(t *testing.T) {
	db := openDB(t)
	svc, err := NewAlertService(db)
	require.NoError(t, err)

	err = svc.Create(context.Background(), &models.Alert{Title: "<script></script>", Message: "x", AlertType: "level", Priority: "low"})
	requireCode(t, err, apperrors.CodeValidation)
}

func TestMaintenanceAndPartnerServices(t *testing.T) {
	db := openDB(t)
	maintenance, err := NewMaintenanceService(db)
	require.NoError(t, err)
	partners, err := NewPartnerService(db)
	require.NoError(t, err)
	ctx := context.Background()

	err = maintenance.Create(ctx, &models.Maintenance{BowserID: "missing", MaintenanceType: "repair", Description: "pump", Date: day(2025, 1, 2), Status: "scheduled"})
	requireCode(t, err, apperrors.CodeValidation)

	tanker := seedTanker(t, db, "B-500")
	record := &models.Maintenance{BowserID: tanker.ID, MaintenanceType: "repair", Description: "pump", Date: day(2025, 1, 2), Status: "scheduled"}
	require.NoError(t, maintenance.Create(ctx, record))

	records, err := maintenance.List(ctx, Filter{"bowser_id": tanker.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Bowser)

	err = partners.Create(ctx, &models.Partner{Name: "Relief Co", Email: "not-an-email", Type: "supplier"})
	requireCode(t, err, apperrors.CodeValidation)

	partner := &models.Partner{Name: "Relief Co", Email: "ops@relief.example", Type: "supplier"}
	require.NoError(t, partners.Create(ctx, partner))

	updated, err := partners.Update(ctx, partner.ID, func(p *models.Partner) error {
		p.Phone = "0117 000 0000"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "0117 000 0000", updated.Phone)

	deleted, err := partners.Delete(ctx, partner.ID)
	require.NoError(t, err)
	require.True(t, deleted)
}
