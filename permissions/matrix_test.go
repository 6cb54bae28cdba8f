package permissions

import (
	"testing"

	"stratplan/models"

	"github.com/stretchr/testify/assert"
)

var allResources = []Resource{
	ResourceStrategicIssues,
	ResourceStrategies,
	ResourceProjects,
	ResourceUsers,
}

var allTestActions = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

func TestMatrixIsTotal(t *testing.T) {
	roles := []models.Role{models.RoleAdmin, models.RoleDepartment, models.Role("intern"), models.Role("")}

	for _, role := range roles {
		for _, resource := range allResources {
			set := Allowed(role, resource)
			assert.NotNil(t, set, "role %q resource %q", role, resource)
		}
	}

	// Unknown resources resolve too.
	assert.Empty(t, Allowed(models.RoleAdmin, Resource("widgets")))
}

func TestMatrixIsDeterministic(t *testing.T) {
	for _, resource := range allResources {
		for _, action := range allTestActions {
			first := Can(models.RoleDepartment, resource, action)
			second := Can(models.RoleDepartment, resource, action)
			assert.Equal(t, first, second)
		}
	}
}

func TestAdminHasAllActions(t *testing.T) {
	for _, resource := range allResources {
		for _, action := range allTestActions {
			assert.True(t, Can(models.RoleAdmin, resource, action),
				"admin should be granted %s on %s", action, resource)
		}
	}
}

func TestDepartmentGrants(t *testing.T) {
	// Read-only on the planning catalog.
	for _, resource := range []Resource{ResourceStrategicIssues, ResourceStrategies} {
		assert.True(t, Can(models.RoleDepartment, resource, ActionRead))
		assert.False(t, Can(models.RoleDepartment, resource, ActionCreate))
		assert.False(t, Can(models.RoleDepartment, resource, ActionUpdate))
		assert.False(t, Can(models.RoleDepartment, resource, ActionDelete))
	}

	// Full CRUD on projects; ownership is layered elsewhere.
	for _, action := range allTestActions {
		assert.True(t, Can(models.RoleDepartment, ResourceProjects, action))
	}

	// No user management at all.
	for _, action := range allTestActions {
		assert.False(t, Can(models.RoleDepartment, ResourceUsers, action))
	}
}

func TestUnknownRoleGetsNothing(t *testing.T) {
	for _, resource := range allResources {
		for _, action := range allTestActions {
			assert.False(t, Can(models.Role("superuser"), resource, action))
		}
	}
}
