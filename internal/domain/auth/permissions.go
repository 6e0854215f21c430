package auth

import "context"

const (
	RoleEmployee    = "employee"
	RoleManager     = "manager"
	RoleHR          = "hr"
	RoleSystemAdmin = "system_admin"
)

const (
	PermCompensationReadSelf = "compensation.read.self"
	PermCompensationReadAll  = "compensation.read.all"
	PermCompensationExport   = "compensation.export"
	PermPerformanceRead      = "performance.read"
	PermSystemAdmin          = "admin.system"
)

var DefaultPermissions = []string{
	PermCompensationReadSelf,
	PermCompensationReadAll,
	PermCompensationExport,
	PermPerformanceRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermCompensationReadSelf,
		PermPerformanceRead,
	},
	RoleManager: {
		PermCompensationReadSelf,
		PermPerformanceRead,
	},
	RoleHR: {
		PermCompensationReadSelf,
		PermCompensationReadAll,
		PermCompensationExport,
		PermPerformanceRead,
	},
	RoleSystemAdmin: DefaultPermissions,
}

// StaticPermissions resolves permissions from RolePermissions by role name.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, roleName, permission string) (bool, error) {
	for _, p := range RolePermissions[roleName] {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}
