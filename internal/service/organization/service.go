package organization

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type OrganizationServiceImpl struct {
	organization.DepartmentRepository
	userRepository user.UserRepository
}

func NewOrganizationService(departmentRepository organization.DepartmentRepository, userRepository user.UserRepository) organization.Service {
	return &OrganizationServiceImpl{
		DepartmentRepository: departmentRepository,
		userRepository:       userRepository,
	}
}

// ListDepartments implements organization.Service.
func (s *OrganizationServiceImpl) ListDepartments(ctx context.Context) ([]organization.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	responses := make([]organization.DepartmentResponse, len(departments))
	for i, d := range departments {
		responses[i] = organization.NewDepartmentResponse(d)
	}
	return responses, nil
}

// CreateDepartment implements organization.Service.
func (s *OrganizationServiceImpl) CreateDepartment(ctx context.Context, req organization.CreateDepartmentRequest) (organization.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.DepartmentResponse{}, err
	}

	_, err := s.DepartmentRepository.GetByName(ctx, req.Name)
	if err == nil {
		return organization.DepartmentResponse{}, organization.ErrDepartmentNameExists
	}
	if !errors.Is(err, organization.ErrDepartmentNotFound) {
		return organization.DepartmentResponse{}, err
	}

	if req.HeadID != nil {
		if _, err := s.userRepository.GetByID(ctx, *req.HeadID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				var errs validator.ValidationErrors
				errs.Add("headId", "department head does not exist")
				return organization.DepartmentResponse{}, errs
			}
			return organization.DepartmentResponse{}, err
		}
	}

	created, err := s.DepartmentRepository.Create(ctx, organization.Department{
		Name:        req.Name,
		Description: req.Description,
		HeadID:      req.HeadID,
	})
	if err != nil {
		return organization.DepartmentResponse{}, err
	}
	return organization.NewDepartmentResponse(created), nil
}

// Members implements organization.Service.
func (s *OrganizationServiceImpl) Members(ctx context.Context) ([]organization.MemberResponse, error) {
	users, err := s.userRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	members := make([]organization.MemberResponse, len(users))
	for i, u := range users {
		members[i] = organization.NewMemberResponse(u)
	}
	return members, nil
}

// Chart groups each department's members under its head and in-department managers.
// Members listed under a manager, the head and the managers themselves are not
// repeated in Unassigned.
func (s *OrganizationServiceImpl) Chart(ctx context.Context) ([]organization.DepartmentChart, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	users, err := s.userRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	byDepartment := make(map[string][]user.User)
	for _, u := range users {
		byDepartment[u.Department] = append(byDepartment[u.Department], u)
	}

	charts := make([]organization.DepartmentChart, 0, len(departments))
	for _, d := range departments {
		charts = append(charts, buildChart(d, byDepartment[d.Name]))
	}
	return charts, nil
}

func buildChart(d organization.Department, members []user.User) organization.DepartmentChart {
	chart := organization.DepartmentChart{
		Department: organization.NewDepartmentResponse(d),
		Managers:   []organization.ManagerNode{},
		Unassigned: []organization.MemberResponse{},
	}

	reports := make(map[int64][]user.User)
	inDepartment := make(map[int64]bool, len(members))
	for _, u := range members {
		inDepartment[u.ID] = true
	}
	for _, u := range members {
		if u.ManagerID != nil && inDepartment[*u.ManagerID] {
			reports[*u.ManagerID] = append(reports[*u.ManagerID], u)
		}
	}

	for _, u := range members {
		if d.HeadID != nil && u.ID == *d.HeadID {
			head := organization.NewMemberResponse(u)
			chart.Head = &head
		}
		if len(reports[u.ID]) == 0 {
			continue
		}
		node := organization.ManagerNode{
			Manager: organization.NewMemberResponse(u),
			Reports: make([]organization.MemberResponse, len(reports[u.ID])),
		}
		for i, r := range reports[u.ID] {
			node.Reports[i] = organization.NewMemberResponse(r)
		}
		chart.Managers = append(chart.Managers, node)
	}

	for _, u := range members {
		if d.HeadID != nil && u.ID == *d.HeadID {
			continue
		}
		if len(reports[u.ID]) > 0 {
			continue
		}
		if u.ManagerID != nil && len(reports[*u.ManagerID]) > 0 {
			continue
		}
		chart.Unassigned = append(chart.Unassigned, organization.NewMemberResponse(u))
	}

	return chart
}
