package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compliancemodels "rentcheck/internal/compliance/models"
	complianceservice "rentcheck/internal/compliance/service"
	compliancestore "rentcheck/internal/compliance/store"
	"rentcheck/internal/property/models"
	"rentcheck/internal/property/service"
	propertystore "rentcheck/internal/property/store"
	dErrors "rentcheck/pkg/domain-errors"
)

type staticOracle struct {
	rules []compliancemodels.CandidateRule
}

func (o staticOracle) Generate(context.Context, string) ([]compliancemodels.CandidateRule, error) {
	return o.rules, nil
}

func newFixture(rules ...compliancemodels.CandidateRule) (*service.Service, *compliancestore.InMemory) {
	taskStore := compliancestore.NewInMemory()
	compliance := complianceservice.New(taskStore, staticOracle{rules: rules})
	props := service.New(propertystore.NewInMemory(), compliance, compliance)
	return props, taskStore
}

func defaultRules() []compliancemodels.CandidateRule {
	return []compliancemodels.CandidateRule{
		{Category: "Verification", Rule: "Submit tenant police verification online."},
		{Category: "Agreement", Rule: "Register leave and license agreement."},
		{Category: "Society", Rule: "Obtain society NOC for the tenant."},
	}
}

func TestCreateAndGetProperty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture()

	created, err := svc.CreateProperty(ctx, "14 Marine Drive, Mumbai", "apartment", 2500000, models.StatusVacant)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := svc.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Address, found.Address)
	assert.Equal(t, models.StatusVacant, found.Status)
}

func TestCreatePropertyValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture()

	_, err := svc.CreateProperty(ctx, "   ", "apartment", 0, models.StatusVacant)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.CreateProperty(ctx, "Somewhere", "apartment", -1, models.StatusVacant)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestUpdatePropertyKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture()

	created, err := svc.CreateProperty(ctx, "Old Address", "apartment", 100, models.StatusVacant)
	require.NoError(t, err)

	updated, err := svc.UpdateProperty(ctx, created.ID, "New Address", "house", 200, models.StatusOccupied)
	require.NoError(t, err)
	assert.Equal(t, "New Address", updated.Address)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestGetUnknownProperty(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.GetProperty(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDeletePropertyCascadesChecklist(t *testing.T) {
	ctx := context.Background()
	svc, taskStore := newFixture(defaultRules()...)

	created, err := svc.CreateProperty(ctx, "14 Marine Drive, Mumbai", "apartment", 2500000, models.StatusOccupied)
	require.NoError(t, err)

	// Materialize through the dashboard, then delete.
	entries, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Checklist, 3)

	require.NoError(t, svc.DeleteProperty(ctx, created.ID))

	tasks, err := taskStore.ListTasks(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks, "checklist must not outlive its property")

	_, err = svc.GetProperty(ctx, created.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDashboardDegradesWhenOracleEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture() // oracle yields nothing

	_, err := svc.CreateProperty(ctx, "Nowhere Lane 1", "apartment", 100, models.StatusVacant)
	require.NoError(t, err)

	entries, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Checklist, "oracle outage renders as no tasks yet, not an error")
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture()

	for _, addr := range []string{"First Street 1", "Second Street 2", "Third Street 3"} {
		_, err := svc.CreateProperty(ctx, addr, "apartment", 100, models.StatusVacant)
		require.NoError(t, err)
	}

	listed, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
}
