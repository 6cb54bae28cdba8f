package services

import (
	"context"
	"net/url"
	"testing"

	"stratplan/apperrors"
	"stratplan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssueFixture() (*fakeIssueRepo, *fakeStrategyRepo, StrategicIssueService) {
	issues := newFakeIssueRepo()
	strategies := newFakeStrategyRepo()
	return issues, strategies, NewStrategicIssueService(issues, strategies)
}

func TestDepartmentCannotCreateIssues(t *testing.T) {
	_, _, svc := newIssueFixture()

	_, err := svc.Create(context.Background(), deptActor, &models.StrategicIssue{
		Title:       "Forbidden",
		StartPeriod: 2025,
		EndPeriod:   2026,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestDepartmentCanReadIssues(t *testing.T) {
	_, _, svc := newIssueFixture()

	created, err := svc.Create(context.Background(), adminActor, &models.StrategicIssue{
		Title:       "Shared catalog",
		StartPeriod: 2025,
		EndPeriod:   2026,
	})
	require.NoError(t, err)

	// Catalog reads are not owner-scoped: a department user sees
	// admin-created issues.
	listed, pagination, err := svc.List(context.Background(), deptActor, url.Values{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, int64(1), pagination.Total)

	fetched, err := svc.GetByID(context.Background(), deptActor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shared catalog", fetched.Title)
}

func TestCreateAutoAssignsOrder(t *testing.T) {
	issues, _, svc := newIssueFixture()
	issues.maxOrder = 4

	created, err := svc.Create(context.Background(), adminActor, &models.StrategicIssue{
		Title:       "Appended",
		StartPeriod: 2025,
		EndPeriod:   2026,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Order)

	// Explicit order is kept, duplicates tolerated.
	created, err = svc.Create(context.Background(), adminActor, &models.StrategicIssue{
		Title:       "Pinned",
		StartPeriod: 2025,
		EndPeriod:   2026,
		Order:       5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Order)
}

func TestUpdateRejectsInvertedPeriod(t *testing.T) {
	_, _, svc := newIssueFixture()

	created, err := svc.Create(context.Background(), adminActor, &models.StrategicIssue{
		Title:       "Window",
		StartPeriod: 2025,
		EndPeriod:   2026,
	})
	require.NoError(t, err)

	end := 2020
	_, err = svc.Update(context.Background(), adminActor, created.ID, models.UpdateStrategicIssueInput{EndPeriod: &end})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeleteCascadesStrategies(t *testing.T) {
	issues, strategies, svc := newIssueFixture()

	created, err := svc.Create(context.Background(), adminActor, &models.StrategicIssue{
		Title:       "Parent",
		StartPeriod: 2025,
		EndPeriod:   2026,
	})
	require.NoError(t, err)

	child := models.Strategy{Name: "Child", StrategicIssueID: created.ID.Hex()}
	require.NoError(t, strategies.Create(context.Background(), &child))
	unrelated := models.Strategy{Name: "Unrelated", StrategicIssueID: "elsewhere"}
	require.NoError(t, strategies.Create(context.Background(), &unrelated))

	require.NoError(t, svc.Delete(context.Background(), adminActor, created.ID))

	_, err = issues.GetByID(context.Background(), created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = strategies.GetByID(context.Background(), child.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	_, err = strategies.GetByID(context.Background(), unrelated.ID)
	assert.NoError(t, err)
}
