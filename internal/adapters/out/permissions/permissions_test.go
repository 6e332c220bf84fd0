package permissions_test

import (
	"testing"

	"custody/internal/adapters/out/permissions"
	"custody/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func Test_RolePermissionGate(t *testing.T) {
	gate := permissions.NewRolePermissionGate()

	tests := []struct {
		name      string
		role      string
		canCreate bool
		canUpdate bool
		canDelete bool
	}{
		{"admin has full access", ports.RoleAdmin, true, true, true},
		{"officer cannot delete", ports.RoleOfficer, true, true, false},
		{"readonly cannot mutate", ports.RoleReadOnly, false, false, false},
		{"unknown role has no capabilities", "auditor", false, false, false},
		{"empty role has no capabilities", "", false, false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.canCreate, gate.CanCreate(test.role))
			assert.Equal(t, test.canUpdate, gate.CanUpdate(test.role))
			assert.Equal(t, test.canDelete, gate.CanDelete(test.role))
		})
	}
}
