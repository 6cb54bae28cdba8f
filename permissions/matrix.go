// Package permissions holds the role/ownership access-control model:
// a flat role → resource → action matrix, and the Guard that layers
// ownership and self-protection rules on top of it.
package permissions

import (
	"stratplan/models"
)

type Resource string

const (
	ResourceStrategicIssues Resource = "strategic_issues"
	ResourceStrategies      Resource = "strategies"
	ResourceProjects        Resource = "projects"
	ResourceUsers           Resource = "users"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type ActionSet map[Action]struct{}

func (s ActionSet) Has(action Action) bool {
	_, ok := s[action]
	return ok
}

func actions(list ...Action) ActionSet {
	set := make(ActionSet, len(list))
	for _, a := range list {
		set[a] = struct{}{}
	}
	return set
}

var allActions = actions(ActionRead, ActionCreate, ActionUpdate, ActionDelete)

// matrix grants actions unconditionally per role and resource.
// Ownership scoping is not expressed here; the Guard layers it on top.
var matrix = map[models.Role]map[Resource]ActionSet{
	models.RoleAdmin: {
		ResourceStrategicIssues: allActions,
		ResourceStrategies:      allActions,
		ResourceProjects:        allActions,
		ResourceUsers:           allActions,
	},
	models.RoleDepartment: {
		ResourceStrategicIssues: actions(ActionRead),
		ResourceStrategies:      actions(ActionRead),
		ResourceProjects:        allActions,
		ResourceUsers:           actions(),
	},
}

// Allowed returns the granted action set for a role and resource. It is
// total: unknown roles and resources yield the empty set.
func Allowed(role models.Role, resource Resource) ActionSet {
	byResource, ok := matrix[role]
	if !ok {
		return actions()
	}
	set, ok := byResource[resource]
	if !ok {
		return actions()
	}
	return set
}

func Can(role models.Role, resource Resource, action Action) bool {
	return Allowed(role, resource).Has(action)
}
