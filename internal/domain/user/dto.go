package user

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	Department   string     `json:"department"`
	Position     string     `json:"position"`
	ProfileImage *string    `json:"profileImage"`
	ManagerID    *int64     `json:"managerId"`
	Phone        *string    `json:"phone,omitempty"`
	Address      *string    `json:"address,omitempty"`
	City         *string    `json:"city,omitempty"`
	Country      *string    `json:"country,omitempty"`
	EmployeeCode *string    `json:"employeeCode,omitempty"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	Skills       []string   `json:"skills"`
	Languages    []string   `json:"languages"`
}

func NewUserResponse(u User) UserResponse {
	skills, languages := u.Skills, u.Languages
	if skills == nil {
		skills = []string{}
	}
	if languages == nil {
		languages = []string{}
	}
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
		Position:     u.Position,
		ProfileImage: u.ProfileImage,
		ManagerID:    u.ManagerID,
		Phone:        u.Phone,
		Address:      u.Address,
		City:         u.City,
		Country:      u.Country,
		EmployeeCode: u.EmployeeCode,
		HireDate:     u.HireDate,
		Skills:       skills,
		Languages:    languages,
	}
}

// OptionalID distinguishes an absent JSON field from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=50"`
	Password     string  `json:"password" validate:"required,min=8"`
	FirstName    string  `json:"firstName" validate:"required,max=100"`
	LastName     string  `json:"lastName" validate:"required,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	Role         Role    `json:"role" validate:"required,oneof=admin hr_manager manager employee"`
	Department   string  `json:"department" validate:"required"`
	Position     string  `json:"position" validate:"required"`
	ManagerID    *int64  `json:"managerId" validate:"omitempty,gt=0"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
	ProfileFields
}

func (r *CreateUserRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, r.ProfileFields.validate()...)
	return errs.Err()
}

// ProfileFields are the self-service contact details
type ProfileFields struct {
	Phone        *string    `json:"phone" validate:"omitempty,max=30"`
	Address      *string    `json:"address" validate:"omitempty,max=255"`
	City         *string    `json:"city" validate:"omitempty,max=100"`
	Country      *string    `json:"country" validate:"omitempty,max=100"`
	EmployeeCode *string    `json:"employeeCode" validate:"omitempty,max=50"`
	HireDate     *time.Time `json:"hireDate"`
	Skills       []string   `json:"skills" validate:"omitempty,dive,required"`
	Languages    []string   `json:"languages" validate:"omitempty,dive,required"`
}

func (p ProfileFields) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors
	if p.HireDate != nil && p.HireDate.After(time.Now()) {
		errs.Add("hireDate", "hireDate must not be in the future")
	}
	return errs
}

// Apply copies every provided field onto u.
func (p ProfileFields) Apply(u *User) {
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Address != nil {
		u.Address = p.Address
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.Country != nil {
		u.Country = p.Country
	}
	if p.EmployeeCode != nil {
		u.EmployeeCode = p.EmployeeCode
	}
	if p.HireDate != nil {
		u.HireDate = p.HireDate
	}
	if p.Skills != nil {
		u.Skills = p.Skills
	}
	if p.Languages != nil {
		u.Languages = p.Languages
	}
}

// UpdateUserRequest is the admin partial update. ManagerID accepts null to clear.
type UpdateUserRequest struct {
	Username     *string    `json:"username" validate:"omitempty,min=3,max=50"`
	Password     *string    `json:"password" validate:"omitempty,min=8"`
	FirstName    *string    `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName     *string    `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email        *string    `json:"email" validate:"omitempty,email"`
	Role         *Role      `json:"role" validate:"omitempty,oneof=admin hr_manager manager employee"`
	Department   *string    `json:"department" validate:"omitempty,min=1"`
	Position     *string    `json:"position" validate:"omitempty,min=1"`
	ProfileImage *string    `json:"profileImage" validate:"omitempty,url"`
	ManagerID    OptionalID `json:"managerId"`
	ProfileFields
}

func (r *UpdateUserRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ManagerID.Value != nil && *r.ManagerID.Value <= 0 {
		errs.Add("managerId", "managerId must be greater than 0")
	}
	errs = append(errs, r.ProfileFields.validate()...)
	return errs.Err()
}

// UpdateProfileRequest is what a user may change on their own record.
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
	ProfileFields
}

func (r *UpdateProfileRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, r.ProfileFields.validate()...)
	return errs.Err()
}

// DeleteUserRequest carries the reassignment target for the user's direct reports.
type DeleteUserRequest struct {
	NewManagerID OptionalID `json:"newManagerId"`
}
