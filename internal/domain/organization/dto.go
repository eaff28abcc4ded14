package organization

import (
	"strings"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HeadID      *int64 `json:"headId"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, Description: d.Description, HeadID: d.HeadID}
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	HeadID      *int64 `json:"headId" validate:"omitempty,gt=0"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r).Err()
}

// MemberResponse is a user projected for the organization tree.
type MemberResponse struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Role         user.Role `json:"role"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
	ProfileImage *string   `json:"profileImage"`
	ManagerID    *int64    `json:"managerId"`
}

func NewMemberResponse(u user.User) MemberResponse {
	return MemberResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
		Position:     u.Position,
		ProfileImage: u.ProfileImage,
		ManagerID:    u.ManagerID,
	}
}

// ManagerNode is a department member with direct reports inside the same department.
type ManagerNode struct {
	Manager MemberResponse   `json:"manager"`
	Reports []MemberResponse `json:"reports"`
}

type DepartmentChart struct {
	Department DepartmentResponse `json:"department"`
	Head       *MemberResponse    `json:"head"`
	Managers   []ManagerNode      `json:"managers"`
	Unassigned []MemberResponse   `json:"unassigned"`
}
