package user

type Permission string

const (
	// Directory
	PermissionUserView   Permission = "user.view"
	PermissionUserManage Permission = "user.manage"

	// Holiday Management
	PermissionHolidayCreate  Permission = "holiday.create"
	PermissionHolidayViewAll Permission = "holiday.view_all"
	PermissionHolidayApprove Permission = "holiday.approve"

	// Policy Library
	PermissionPolicyView   Permission = "policy.view"
	PermissionPolicyCreate Permission = "policy.create"

	// Learning
	PermissionLearningView   Permission = "learning.view"
	PermissionLearningManage Permission = "learning.manage"

	// Organization
	PermissionOrganizationView   Permission = "organization.view"
	PermissionOrganizationManage Permission = "organization.manage"
)

// everyone holds the permissions granted to all authenticated roles
var everyone = []Permission{
	PermissionUserView,
	PermissionHolidayCreate,
	PermissionPolicyView,
	PermissionLearningView,
	PermissionOrganizationView,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append([]Permission{
		PermissionUserManage,
		PermissionHolidayViewAll,
		PermissionHolidayApprove,
		PermissionPolicyCreate,
		PermissionLearningManage,
		PermissionOrganizationManage,
	}, everyone...),
	RoleHRManager: append([]Permission{
		PermissionHolidayViewAll,
		PermissionHolidayApprove,
		PermissionPolicyCreate,
	}, everyone...),
	RoleManager: append([]Permission{
		PermissionHolidayViewAll,
		PermissionHolidayApprove,
	}, everyone...),
	RoleEmployee: everyone,
}

// PositionGrant adds permissions to users holding a position in a department,
// regardless of their role.
type PositionGrant struct {
	Department  string
	Position    string
	Permissions []Permission
}

var PositionGrants = []PositionGrant{
	{
		Department:  "Human Resources",
		Position:    "HR Manager",
		Permissions: []Permission{PermissionPolicyCreate},
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	return contains(permissions, permission)
}

// Authorize evaluates the role table first, then position grants.
func Authorize(u User, permission Permission) bool {
	if HasPermission(u.Role, permission) {
		return true
	}

	for _, grant := range PositionGrants {
		if grant.Department == u.Department && grant.Position == u.Position && contains(grant.Permissions, permission) {
			return true
		}
	}

	return false
}

// RolesWith returns the roles whose table entry includes permission.
func RolesWith(permission Permission) []Role {
	var roles []Role
	for _, role := range AllRoles() {
		if HasPermission(role, permission) {
			roles = append(roles, role)
		}
	}
	return roles
}

func contains(permissions []Permission, permission Permission) bool {
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
