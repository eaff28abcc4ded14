package user

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"      // Full access, user administration
	RoleHRManager Role = "hr_manager" // Approves holidays, publishes policies
	RoleManager   Role = "manager"    // Approves holidays
	RoleEmployee  Role = "employee"   // Regular employee
)

// AllRoles lists every role in declaration order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleHRManager, RoleManager, RoleEmployee}
}

func (r Role) Valid() bool {
	for _, role := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Role         Role
	Department   string
	Position     string
	ProfileImage *string
	ManagerID    *int64

	// Profile
	Phone        *string
	Address      *string
	City         *string
	Country      *string
	EmployeeCode *string
	HireDate     *time.Time
	Skills       []string
	Languages    []string

	CreatedAt time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin checks if user administers the portal
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Summary is the denormalized user snippet attached to records that reference a user.
type Summary struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Department   string  `json:"department"`
	Position     string  `json:"position"`
	ProfileImage *string `json:"profileImage"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Department:   u.Department,
		Position:     u.Position,
		ProfileImage: u.ProfileImage,
	}
}
