// Package auth holds the per-action access policy consulted when routes
// are built.
package auth

import "github.com/classroom/schoolapi/internal/app/models"

// Action names follow the generic CRUD vocabulary of the REST layer.
type Action string

// Actions
const (
	ActionCreate         Action = "create"
	ActionList           Action = "list"
	ActionRetrieve       Action = "retrieve"
	ActionUpdate         Action = "update"
	ActionPartialUpdate  Action = "partial_update"
	ActionDelete         Action = "delete"
	ActionChangePassword Action = "change_password"
)

// Resources
const (
	ResourceUser  = "user"
	ResourceClass = "class"
)

// Requirement is the permission a caller must satisfy for an action.
type Requirement int

const (
	// AllowAny permits anonymous callers.
	AllowAny Requirement = iota
	// IsAuthenticated requires a valid access token.
	IsAuthenticated
)

// adminRoles may mutate other accounts and their privilege flags.
var adminRoles = []string{string(models.RoleAdmin), string(models.RoleSuperAdmin)}

// AccessPolicy maps resource/action pairs to permission requirements.
// Actions missing from a resource's table fall back to the default.
type AccessPolicy struct {
	rules      map[string]map[Action]Requirement
	roles      map[string]map[Action][]string
	defaultReq Requirement
}

// NewAccessPolicy builds the application policy.
//
// User creation stays open so accounts can be registered without a
// session; everything that reads or mutates existing users requires
// authentication, including change_password, delete and partial_update.
// Mutating an existing user additionally requires an admin role, since
// update carries the is_active/is_staff/is_superuser/role flags.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{
		defaultReq: IsAuthenticated,
		roles: map[string]map[Action][]string{
			ResourceUser: {
				ActionUpdate:        adminRoles,
				ActionPartialUpdate: adminRoles,
				ActionDelete:        adminRoles,
			},
		},
		rules: map[string]map[Action]Requirement{
			ResourceUser: {
				ActionCreate:         AllowAny,
				ActionList:           IsAuthenticated,
				ActionRetrieve:       IsAuthenticated,
				ActionUpdate:         IsAuthenticated,
				ActionPartialUpdate:  IsAuthenticated,
				ActionDelete:         IsAuthenticated,
				ActionChangePassword: IsAuthenticated,
			},
			ResourceClass: {
				ActionCreate:        IsAuthenticated,
				ActionList:          AllowAny,
				ActionRetrieve:      AllowAny,
				ActionUpdate:        IsAuthenticated,
				ActionPartialUpdate: IsAuthenticated,
				ActionDelete:        IsAuthenticated,
			},
		},
	}
}

// Requirement returns the permission requirement for an action on a
// resource.
func (p *AccessPolicy) Requirement(resource string, action Action) Requirement {
	actions, ok := p.rules[resource]
	if !ok {
		return p.defaultReq
	}
	req, ok := actions[action]
	if !ok {
		return p.defaultReq
	}
	return req
}

// RequiresAuth reports whether an action needs an authenticated caller.
func (p *AccessPolicy) RequiresAuth(resource string, action Action) bool {
	return p.Requirement(resource, action) == IsAuthenticated
}

// RequiredRoles returns the roles allowed to perform an action, or nil
// when any authenticated caller (or anyone, for public actions) may.
func (p *AccessPolicy) RequiredRoles(resource string, action Action) []string {
	actions, ok := p.roles[resource]
	if !ok {
		return nil
	}
	return actions[action]
}
