package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicy(t *testing.T) {
	policy := NewAccessPolicy()

	tests := []struct {
		resource  string
		action    Action
		wantsAuth bool
	}{
		{ResourceUser, ActionCreate, false},
		{ResourceUser, ActionList, true},
		{ResourceUser, ActionRetrieve, true},
		{ResourceUser, ActionUpdate, true},
		{ResourceUser, ActionPartialUpdate, true},
		{ResourceUser, ActionDelete, true},
		{ResourceUser, ActionChangePassword, true},
		{ResourceClass, ActionCreate, true},
		{ResourceClass, ActionList, false},
		{ResourceClass, ActionRetrieve, false},
		{ResourceClass, ActionUpdate, true},
		{ResourceClass, ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.resource+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.wantsAuth, policy.RequiresAuth(tt.resource, tt.action))
		})
	}

	t.Run("unknown resource falls back to authenticated", func(t *testing.T) {
		assert.True(t, policy.RequiresAuth("grade", ActionList))
	})

	t.Run("unknown action falls back to authenticated", func(t *testing.T) {
		assert.True(t, policy.RequiresAuth(ResourceClass, Action("export")))
	})

	t.Run("requirement values", func(t *testing.T) {
		assert.Equal(t, AllowAny, policy.Requirement(ResourceUser, ActionCreate))
		assert.Equal(t, IsAuthenticated, policy.Requirement(ResourceUser, ActionChangePassword))
	})
}

func TestAccessPolicy_RequiredRoles(t *testing.T) {
	policy := NewAccessPolicy()

	t.Run("mutating users is admin-only", func(t *testing.T) {
		for _, action := range []Action{ActionUpdate, ActionPartialUpdate, ActionDelete} {
			roles := policy.RequiredRoles(ResourceUser, action)
			assert.ElementsMatch(t, []string{"ADMIN", "SUPERADMIN"}, roles, string(action))
		}
	})

	t.Run("reading users has no role gate", func(t *testing.T) {
		assert.Empty(t, policy.RequiredRoles(ResourceUser, ActionList))
		assert.Empty(t, policy.RequiredRoles(ResourceUser, ActionRetrieve))
		assert.Empty(t, policy.RequiredRoles(ResourceUser, ActionChangePassword))
	})

	t.Run("classes have no role gate", func(t *testing.T) {
		assert.Empty(t, policy.RequiredRoles(ResourceClass, ActionUpdate))
		assert.Empty(t, policy.RequiredRoles(ResourceClass, ActionDelete))
	})
}
