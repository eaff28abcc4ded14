package organization

import "context"

type Service interface {
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	// Members lists every user as a node for client-side tree building.
	Members(ctx context.Context) ([]MemberResponse, error)
	Chart(ctx context.Context) ([]DepartmentChart, error)
}
