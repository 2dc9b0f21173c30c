package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compliancemodels "rentcheck/internal/compliance/models"
	complianceservice "rentcheck/internal/compliance/service"
	compliancestore "rentcheck/internal/compliance/store"
	"rentcheck/internal/platform/middleware"
	"rentcheck/internal/property/handler"
	"rentcheck/internal/property/models"
	propertyservice "rentcheck/internal/property/service"
	propertystore "rentcheck/internal/property/store"
)

const adminToken = "secret-token"

type staticOracle struct {
	rules []compliancemodels.CandidateRule
}

func (o staticOracle) Generate(context.Context, string) ([]compliancemodels.CandidateRule, error) {
	return o.rules, nil
}

func newRouter(t *testing.T, rules ...compliancemodels.CandidateRule) chi.Router {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	compliance := complianceservice.New(compliancestore.NewInMemory(), staticOracle{rules: rules})
	property := propertyservice.New(propertystore.NewInMemory(), compliance, compliance)

	h := handler.New(property, logger)
	router := chi.NewRouter()
	h.Register(router)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminToken(adminToken))
		h.RegisterAdmin(admin)
	})
	return router
}

func createProperty(t *testing.T, router chi.Router) models.Property {
	t.Helper()
	payload := map[string]any{
		"address":      "14 Marine Drive, Mumbai",
		"type":         "apartment",
		"monthly_rent": 2500000,
		"status":       "occupied",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var property models.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&property))
	require.NotEqual(t, uuid.Nil, property.ID)
	return property
}

func TestAdminTokenRequired(t *testing.T) {
	router := newRouter(t)

	body, _ := json.Marshal(map[string]any{"address": "X", "status": "vacant"})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	// No admin token header set
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateAndListProperties(t *testing.T) {
	router := newRouter(t)
	created := createProperty(t, router)

	req := httptest.NewRequest(http.MethodGet, "/properties", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, models.StatusOccupied, listed[0].Status)
}

func TestCreatePropertyRejectsBadStatus(t *testing.T) {
	router := newRouter(t)

	body, _ := json.Marshal(map[string]any{"address": "Somewhere", "status": "demolished"})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProperty(t *testing.T) {
	router := newRouter(t)
	created := createProperty(t, router)

	payload := map[string]any{
		"address":      "1 New Colony Road, Pune",
		"type":         "house",
		"monthly_rent": 1800000,
		"status":       "vacant",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/properties/"+created.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "1 New Colony Road, Pune", updated.Address)
	assert.Equal(t, models.StatusVacant, updated.Status)
}

func TestDeleteProperty(t *testing.T) {
	router := newRouter(t)
	created := createProperty(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/properties/"+created.ID.String(), nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/properties/"+created.ID.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardIncludesChecklists(t *testing.T) {
	router := newRouter(t, compliancemodels.CandidateRule{
		Category: "Agreement",
		Rule:     "Register leave and license agreement.",
	})
	created := createProperty(t, router)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []propertyservice.DashboardEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].Property.ID)
	require.Len(t, entries[0].Checklist, 1)
	assert.Equal(t, "Register leave and license agreement.", entries[0].Checklist[0].Rule)
}
