package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type OrganizationHandler interface {
	ListDepartments(w http.ResponseWriter, r *http.Request)
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	Members(w http.ResponseWriter, r *http.Request)
	Chart(w http.ResponseWriter, r *http.Request)
}

type OrganizationHandlerImpl struct {
	organizationService organization.Service
}

func NewOrganizationHandler(organizationService organization.Service) OrganizationHandler {
	return &OrganizationHandlerImpl{organizationService: organizationService}
}

// ListDepartments implements OrganizationHandler.
func (h *OrganizationHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.organizationService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, departments)
}

// CreateDepartment implements OrganizationHandler.
func (h *OrganizationHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req organization.CreateDepartmentRequest
	if !decodeJSON(w, r, "CreateDepartment", &req, false) {
		return
	}
	created, err := h.organizationService.CreateDepartment(r.Context(), req)
	if err != nil {
		slog.Error("CreateDepartment service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

// Members implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.organizationService.Members(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, members)
}

// Chart implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Chart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.organizationService.Chart(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, chart)
}
