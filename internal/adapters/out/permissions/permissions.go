// Package permissions implements the role-based gate enforced by the
// presentation layer before mutating operations reach the engine. The gate is
// coarse by design: holder-based authorization stays inside the domain, the
// gate only answers whether a role may attempt the class of operation at all.
package permissions

import (
	"custody/internal/core/ports"
)

var _ ports.PermissionGate = &RolePermissionGate{}

type capabilities struct {
	create bool
	update bool
	delete bool
}

// RolePermissionGate maps roles to capability sets. Unknown roles have no
// capabilities.
type RolePermissionGate struct {
	roles map[string]capabilities
}

func NewRolePermissionGate() *RolePermissionGate {
	return &RolePermissionGate{
		roles: map[string]capabilities{
			ports.RoleAdmin:    {create: true, update: true, delete: true},
			ports.RoleOfficer:  {create: true, update: true, delete: false},
			ports.RoleReadOnly: {create: false, update: false, delete: false},
		},
	}
}

func (g *RolePermissionGate) CanCreate(role string) bool {
	return g.roles[role].create
}

func (g *RolePermissionGate) CanUpdate(role string) bool {
	return g.roles[role].update
}

func (g *RolePermissionGate) CanDelete(role string) bool {
	return g.roles[role].delete
}
