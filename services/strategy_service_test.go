package services

import (
	"context"
	"testing"

	"stratplan/apperrors"
	"stratplan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyOrderScopedToParent(t *testing.T) {
	repo := newFakeStrategyRepo()
	svc := NewStrategyService(repo)

	seed := func(issueID string, order int) {
		s := models.Strategy{Name: "seed", StrategicIssueID: issueID, Order: order}
		require.NoError(t, repo.Create(context.Background(), &s))
	}
	seed("issue-a", 3)
	seed("issue-b", 7)

	// Ranking continues from the parent's own max, not the global one.
	created, err := svc.Create(context.Background(), adminActor, &models.Strategy{
		Name:             "Next in A",
		StrategicIssueID: "issue-a",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.Order)

	created, err = svc.Create(context.Background(), adminActor, &models.Strategy{
		Name:             "First elsewhere",
		StrategicIssueID: "issue-c",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Order)
}

func TestStrategyParentReferenceIsWeak(t *testing.T) {
	repo := newFakeStrategyRepo()
	svc := NewStrategyService(repo)

	// No existence check on the parent id: it is stored as given.
	created, err := svc.Create(context.Background(), adminActor, &models.Strategy{
		Name:             "Orphan",
		StrategicIssueID: "never-created",
	})
	require.NoError(t, err)
	assert.Equal(t, "never-created", created.StrategicIssueID)
	assert.Equal(t, adminActor.ID, created.Metadata.CreatedBy)
}

func TestDepartmentCannotMutateStrategies(t *testing.T) {
	repo := newFakeStrategyRepo()
	svc := NewStrategyService(repo)

	created, err := svc.Create(context.Background(), adminActor, &models.Strategy{
		Name:             "Catalog entry",
		StrategicIssueID: "issue-a",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), deptActor, &models.Strategy{
		Name:             "Forbidden",
		StrategicIssueID: "issue-a",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	name := "Renamed"
	_, err = svc.Update(context.Background(), deptActor, created.ID, models.UpdateStrategyInput{Name: &name})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	err = svc.Delete(context.Background(), deptActor, created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	// Reads stay open to department users.
	fetched, err := svc.GetByID(context.Background(), deptActor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Catalog entry", fetched.Name)
}
