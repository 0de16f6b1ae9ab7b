package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/handlers/testutil"
	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/services"
)

func TestUserHandler_AdminOnly(t *testing.T) {
	env := testutil.NewEnv(t)
	_, staffToken := env.LoginAs(models.RoleStaff)

	w := env.Request(http.MethodGet, "/api/users", nil, staffToken)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_CreateUpdateDelete(t *testing.T) {
	env := testutil.NewEnv(t)
	admin, adminToken := env.LoginAs(models.RoleAdmin)

	created := env.Request(http.MethodPost, "/api/users", map[string]any{
		"username": "operator",
		"email":    "Operator@Example.com",
		"password": "Op3rator!pass",
	}, adminToken)
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	var user map[string]any
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &user)
	require.Equal(t, "staff", user["role"])
	require.Equal(t, "operator@example.com", user["email"])
	require.NotContains(t, user, "password_hash")
	id := user["id"].(string)

	duplicate := env.Request(http.MethodPost, "/api/users", map[string]any{
		"username": "operator",
		"email":    "other@example.com",
		"password": "Op3rator!pass",
	}, adminToken)
	require.Equal(t, http.StatusBadRequest, duplicate.Code)

	weak := env.Request(http.MethodPost, "/api/users", map[string]any{
		"username": "weak",
		"email":    "weak@example.com",
		"password": "weak",
	}, adminToken)
	require.Equal(t, http.StatusBadRequest, weak.Code)
	require.Equal(t, "PASSWORD_POLICY", testutil.DecodeResponse(t, weak).Code)

	operatorToken := env.Login("operator", "Op3rator!pass").Token
	promoted := env.Request(http.MethodPut, "/api/users/"+id, map[string]any{"role": "admin"}, adminToken)
	require.Equal(t, http.StatusOK, promoted.Code, promoted.Body.String())

	stale := env.Request(http.MethodGet, "/api/auth/me", nil, operatorToken)
	require.Equal(t, http.StatusUnauthorized, stale.Code)

	self := env.Request(http.MethodDelete, "/api/users/"+admin.ID, nil, adminToken)
	require.Equal(t, http.StatusBadRequest, self.Code)
	require.Equal(t, services.ErrSelfDelete.Message, testutil.DecodeResponse(t, self).Message)

	deleted := env.Request(http.MethodDelete, "/api/users/"+id, nil, adminToken)
	require.Equal(t, http.StatusOK, deleted.Code)
}

func TestInvoiceHandler_BothBackends(t *testing.T) {
	for _, backend := range []string{services.InvoiceBackendRelational, services.InvoiceBackendDocument} {
		t.Run(backend, func(t *testing.T) {
			env := testutil.NewEnv(t, testutil.WithInvoiceBackend(backend))
			_, token := env.LoginAs(models.RoleAdmin)

			for _, inv := range []map[string]any{
				{"invoice_number": "INV-1", "client_name": "Council", "issue_date": "2024-01-10", "due_date": "2024-02-10", "amount": 250.5},
				{"invoice_number": "INV-2", "client_name": "Utility", "issue_date": "2024-03-01", "due_date": "2024-04-01", "amount": 100},
			} {
				w := env.Request(http.MethodPost, "/api/invoices", inv, token)
				require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			}

			duplicate := env.Request(http.MethodPost, "/api/invoices", map[string]any{
				"invoice_number": "INV-1", "client_name": "Again", "issue_date": "2024-01-10", "due_date": "2024-01-11", "amount": 1,
			}, token)
			require.Equal(t, http.StatusBadRequest, duplicate.Code)

			list := env.Request(http.MethodGet, "/api/invoices", nil, token)
			var items []map[string]any
			testutil.DecodeInto(t, testutil.DecodeResponse(t, list).Data, &items)
			require.Len(t, items, 2)
			require.Equal(t, "INV-2", items[0]["invoice_number"])
			require.Equal(t, "pending", items[0]["status"])

			id := items[1]["id"].(string)
			paid := env.Request(http.MethodPut, "/api/invoices/"+id, map[string]any{"status": "paid"}, token)
			require.Equal(t, http.StatusOK, paid.Code, paid.Body.String())

			deleted := env.Request(http.MethodDelete, "/api/invoices/"+id, nil, token)
			require.Equal(t, http.StatusOK, deleted.Code)
			gone := env.Request(http.MethodGet, "/api/invoices/"+id, nil, token)
			require.Equal(t, http.StatusNotFound, gone.Code)
		})
	}
}

func TestSchemeHandler_ContributionsUpdateBalance(t *testing.T) {
	env := testutil.NewEnv(t)
	_, token := env.LoginAs(models.RoleAdmin)

	created := env.Request(http.MethodPost, "/api/schemes", map[string]any{
		"name":                "Village fund",
		"start_date":          "2024-01-01",
		"contribution_amount": 25,
	}, token)
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	var scheme map[string]any
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &scheme)
	id := scheme["id"].(string)
	require.EqualValues(t, 0, scheme["balance"])
	require.Equal(t, "active", scheme["status"])

	for _, amount := range []float64{25, 40} {
		w := env.Request(http.MethodPost, "/api/schemes/"+id+"/contributions", map[string]any{
			"contributor_name":  "Parish council",
			"amount":            amount,
			"contribution_date": "2024-02-01",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	zero := env.Request(http.MethodPost, "/api/schemes/"+id+"/contributions", map[string]any{
		"contributor_name": "Nobody",
		"amount":           0,
	}, token)
	require.Equal(t, http.StatusBadRequest, zero.Code)

	get := env.Request(http.MethodGet, "/api/schemes/"+id, nil, token)
	testutil.DecodeInto(t, testutil.DecodeResponse(t, get).Data, &scheme)
	require.EqualValues(t, 65, scheme["balance"])

	contributions := env.Request(http.MethodGet, "/api/schemes/"+id+"/contributions", nil, token)
	var items []map[string]any
	testutil.DecodeInto(t, testutil.DecodeResponse(t, contributions).Data, &items)
	require.Len(t, items, 2)

	edited := env.Request(http.MethodPut, "/api/schemes/"+id, map[string]any{"name": "Town fund"}, token)
	require.Equal(t, http.StatusOK, edited.Code)
	testutil.DecodeInto(t, testutil.DecodeResponse(t, edited).Data, &scheme)
	require.Equal(t, "Town fund", scheme["name"])
	require.EqualValues(t, 65, scheme["balance"])
}

func TestAlertHandler_RaiseAndResolve(t *testing.T) {
	env := testutil.NewEnv(t)
	_, token := env.LoginAs(models.RoleStaff)

	created := env.Request(http.MethodPost, "/api/alerts", map[string]any{
		"title":      "Low level",
		"message":    "Bowser B-1 below 10%",
		"alert_type": "level",
		"priority":   "high",
	}, token)
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	var alert map[string]any
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &alert)
	require.Equal(t, "open", alert["status"])

	resolved := env.Request(http.MethodPost, "/api/alerts/"+alert["id"].(string)+"/resolve", nil, token)
	require.Equal(t, http.StatusOK, resolved.Code)
	testutil.DecodeInto(t, testutil.DecodeResponse(t, resolved).Data, &alert)
	require.Equal(t, "resolved", alert["status"])
	require.NotNil(t, alert["resolved_at"])

	open := env.Request(http.MethodGet, "/api/alerts?status=open", nil, token)
	var items []map[string]any
	testutil.DecodeInto(t, testutil.DecodeResponse(t, open).Data, &items)
	require.Empty(t, items)
}

func TestPartnerHandler_CreateRequiresNameAndType(t *testing.T) {
	env := testutil.NewEnv(t)
	_, token := env.LoginAs(models.RoleStaff)

	missing := env.Request(http.MethodPost, "/api/partners", map[string]any{"email": "ops@example.com"}, token)
	require.Equal(t, http.StatusBadRequest, missing.Code)
	require.Equal(t, "Missing required fields: name, type", testutil.DecodeResponse(t, missing).Message)

	created := env.Request(http.MethodPost, "/api/partners", map[string]any{
		"name":  "Severn Water",
		"type":  "utility",
		"email": "ops@example.com",
	}, token)
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
}
