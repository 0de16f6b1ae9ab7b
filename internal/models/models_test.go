package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBaseModelBeforeCreateGeneratesID(t *testing.T) {
	var base BaseModel
	require.NoError(t, base.BeforeCreate(nil))
	require.NotEmpty(t, base.ID)

	keep := BaseModel{ID: "fixed"}
	require.NoError(t, keep.BeforeCreate(nil))
	require.Equal(t, "fixed", keep.ID)
}

func TestEmbeddedModelsUseBaseBeforeCreate(t *testing.T) {
	cases := []struct {
		name  string
		model func() *BaseModel
	}{
		{"user", func() *BaseModel { u := &User{}; return &u.BaseModel }},
		{"session", func() *BaseModel { s := &Session{}; return &s.BaseModel }},
		{"tanker", func() *BaseModel { m := &Tanker{}; return &m.BaseModel }},
		{"location", func() *BaseModel { m := &Location{}; return &m.BaseModel }},
		{"deployment", func() *BaseModel { m := &Deployment{}; return &m.BaseModel }},
		{"maintenance", func() *BaseModel { m := &Maintenance{}; return &m.BaseModel }},
		{"invoice", func() *BaseModel { m := &Invoice{}; return &m.BaseModel }},
		{"partner", func() *BaseModel { m := &Partner{}; return &m.BaseModel }},
		{"alert", func() *BaseModel { m := &Alert{}; return &m.BaseModel }},
		{"migration_run", func() *BaseModel { m := &MigrationRun{}; return &m.BaseModel }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := tc.model()
			require.NoError(t, base.BeforeCreate(nil))
			require.NotEmpty(t, base.ID)
		})
	}
}

func TestUserNeverSerialisesPasswordHash(t *testing.T) {
	user := User{Username: "ops", Email: "ops@example.com", PasswordHash: "$2a$10$secret", Role: RoleStaff}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret")
	require.NotContains(t, string(raw), "password")
	require.Contains(t, string(raw), `"last_login":null`)
	require.Contains(t, string(raw), `"account_locked_until":null`)
}

func TestUserIsLocked(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := User{}
	require.False(t, user.IsLocked(now))

	until := now.Add(time.Minute)
	user.AccountLockedUntil = &until
	require.True(t, user.IsLocked(now))
	require.False(t, user.IsLocked(until))
}

func TestSessionActive(t *testing.T) {
	now := time.Now()
	session := Session{ExpiresAt: now.Add(time.Hour)}
	require.True(t, session.Active(now))
	require.False(t, session.Active(now.Add(2*time.Hour)))

	session.RevokedAt = &now
	require.False(t, session.Active(now))
}

func TestTankerValidate(t *testing.T) {
	valid := Tanker{Number: "BW-1", Capacity: 5000, CurrentLevel: 5000, Status: TankerActive}
	require.NoError(t, valid.Validate())

	over := valid
	over.CurrentLevel = 5000.5
	require.Error(t, over.Validate())

	negative := valid
	negative.CurrentLevel = -1
	require.Error(t, negative.Validate())

	badStatus := valid
	badStatus.Status = "lost"
	require.Error(t, badStatus.Validate())

	require.Equal(t, "bowsers", Tanker{}.TableName())
}

func TestDeploymentValidate(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	dep := Deployment{StartDate: start, EndDate: &end, Status: DeploymentActive, Priority: PriorityHigh}
	require.NoError(t, dep.Validate())
	require.False(t, dep.Ongoing())

	sameDay := start
	dep.EndDate = &sameDay
	require.NoError(t, dep.Validate())

	before := start.AddDate(0, 0, -1)
	dep.EndDate = &before
	require.Error(t, dep.Validate())

	dep.EndDate = nil
	require.NoError(t, dep.Validate())
	require.True(t, dep.Ongoing())

	dep.Priority = "urgent"
	require.Error(t, dep.Validate())
}

func TestPriorityRank(t *testing.T) {
	require.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	require.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	require.Less(t, PriorityHigh.Rank(), PriorityCritical.Rank())
	require.False(t, Priority("urgent").Valid())
}

func TestInvoiceValidate(t *testing.T) {
	issue := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := Invoice{IssueDate: issue, DueDate: issue.AddDate(0, 1, 0), Amount: 120}
	require.NoError(t, inv.Validate())

	inv.DueDate = issue.AddDate(0, 0, -1)
	require.Error(t, inv.Validate())
}
