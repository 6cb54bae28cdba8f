package permissions

import (
	"stratplan/models"
)

// Target is the minimal view of a record the Guard needs for ownership
// and self-protection checks. Nil means no specific record is involved
// (create, list).
type Target struct {
	ID        string
	CreatedBy string
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

const (
	ReasonForbidden   = "forbidden"
	ReasonNotOwner    = "not owner"
	ReasonSelfDelete  = "cannot delete or deactivate own account"
	ReasonNotSelf     = "cannot change another account's password"
	ReasonUnknownRole = "unknown role"
)

// ownedResources are the resources whose single-record read, update and
// delete require the target to belong to the acting user.
var ownedResources = map[Resource]struct{}{
	ResourceProjects: {},
}

// Authorize decides whether actor may perform action on resource. For
// update, delete and single-record read, target carries the record's
// identity and owner. Deterministic and total for every known role.
func Authorize(actor models.Actor, resource Resource, action Action, target *Target) Decision {
	// Self-protection precedes everything, including the admin
	// short-circuit: nobody removes their own account.
	if resource == ResourceUsers && action == ActionDelete && target != nil && target.ID == actor.ID {
		return deny(ReasonSelfDelete)
	}

	if actor.Role == models.RoleAdmin {
		return allow()
	}

	// Self-service on the users resource: reading and updating one's
	// own record is allowed without a matrix grant.
	if resource == ResourceUsers && target != nil && target.ID == actor.ID {
		if action == ActionRead || action == ActionUpdate {
			return allow()
		}
	}

	if !Can(actor.Role, resource, action) {
		return deny(ReasonForbidden)
	}

	if _, owned := ownedResources[resource]; owned && target != nil {
		switch action {
		case ActionRead, ActionUpdate, ActionDelete:
			if target.CreatedBy != actor.ID {
				return deny(ReasonNotOwner)
			}
		}
	}

	return allow()
}

// AuthorizePasswordChange covers the one users action that is stricter
// than the generic rules: non-admin actors may only change their own
// password, whatever else they may do with the record.
func AuthorizePasswordChange(actor models.Actor, targetID string) Decision {
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	if targetID != actor.ID {
		return deny(ReasonNotSelf)
	}
	return allow()
}

// ListScope returns the owner id that must be forced into the filter
// for list requests on ownership-scoped resources. Empty string means
// the list is unscoped. Lists are never denied here; they are
// downgraded so pagination can't leak other users' records.
func ListScope(actor models.Actor, resource Resource) string {
	if actor.Role == models.RoleAdmin {
		return ""
	}
	if _, owned := ownedResources[resource]; owned {
		return actor.ID
	}
	return ""
}
