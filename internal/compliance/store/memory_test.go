package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"rentcheck/internal/compliance/models"
	"rentcheck/pkg/platform/sentinel"
)

type ComplianceStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ComplianceStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestComplianceStoreSuite(t *testing.T) {
	suite.Run(t, new(ComplianceStoreSuite))
}

func (s *ComplianceStoreSuite) rules() []models.CandidateRule {
	return []models.CandidateRule{
		{Category: "Verification", Rule: "Submit tenant police verification online."},
		{Category: "Agreement", Rule: "Register leave and license agreement."},
		{Category: "Society", Rule: "Obtain society NOC for the tenant."},
	}
}

// TestInsertAndList verifies batch insert assigns IDs and preserves order.
func (s *ComplianceStoreSuite) TestInsertAndList() {
	propertyID := uuid.New()

	created, err := s.store.InsertBatch(s.ctx, propertyID, s.rules())
	s.Require().NoError(err)
	s.Require().Len(created, 3)

	listed, err := s.store.ListTasks(s.ctx, propertyID)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	for i, task := range listed {
		s.NotEqual(uuid.Nil, task.ID)
		s.Equal(propertyID, task.PropertyID)
		s.Equal(i, task.Position)
		s.False(task.Completed)
	}
	s.Equal("Register leave and license agreement.", listed[1].Rule)
	s.Equal("Agreement", listed[1].Category)
}

// TestListUnknownProperty verifies an un-materialized property yields an
// empty slice, never an error.
func (s *ComplianceStoreSuite) TestListUnknownProperty() {
	listed, err := s.store.ListTasks(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(listed)
}

// TestInsertConflict verifies the second batch for a property is rejected
// whole and the first batch survives untouched.
func (s *ComplianceStoreSuite) TestInsertConflict() {
	propertyID := uuid.New()

	first, err := s.store.InsertBatch(s.ctx, propertyID, s.rules())
	s.Require().NoError(err)

	_, err = s.store.InsertBatch(s.ctx, propertyID, []models.CandidateRule{{Rule: "Another rule."}})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	listed, err := s.store.ListTasks(s.ctx, propertyID)
	s.Require().NoError(err)
	s.Require().Len(listed, len(first))
	s.Equal(first[0].ID, listed[0].ID)
}

// TestToggle verifies the round-trip: false -> true -> false, reflected in
// subsequent lists.
func (s *ComplianceStoreSuite) TestToggle() {
	propertyID := uuid.New()
	created, err := s.store.InsertBatch(s.ctx, propertyID, s.rules())
	s.Require().NoError(err)

	completed, err := s.store.Toggle(s.ctx, created[0].ID)
	s.Require().NoError(err)
	s.True(completed)

	listed, err := s.store.ListTasks(s.ctx, propertyID)
	s.Require().NoError(err)
	s.True(listed[0].Completed)
	s.False(listed[1].Completed)

	completed, err = s.store.Toggle(s.ctx, created[0].ID)
	s.Require().NoError(err)
	s.False(completed)
}

// TestToggleUnknownTask verifies NotFound and that store state is unchanged.
func (s *ComplianceStoreSuite) TestToggleUnknownTask() {
	propertyID := uuid.New()
	_, err := s.store.InsertBatch(s.ctx, propertyID, s.rules())
	s.Require().NoError(err)

	_, err = s.store.Toggle(s.ctx, uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	listed, err := s.store.ListTasks(s.ctx, propertyID)
	s.Require().NoError(err)
	for _, task := range listed {
		s.False(task.Completed)
	}
}

// TestDeleteForProperty verifies cascade delete empties the checklist and
// removes task lookups.
func (s *ComplianceStoreSuite) TestDeleteForProperty() {
	propertyID := uuid.New()
	created, err := s.store.InsertBatch(s.ctx, propertyID, s.rules())
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteForProperty(s.ctx, propertyID))

	listed, err := s.store.ListTasks(s.ctx, propertyID)
	s.Require().NoError(err)
	s.Empty(listed)

	_, err = s.store.Toggle(s.ctx, created[0].ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	// Deleting again is a no-op.
	s.Require().NoError(s.store.DeleteForProperty(s.ctx, propertyID))
}
