package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type PolicyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Categories(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService policy.Service
}

func NewPolicyHandler(policyService policy.Service) PolicyHandler {
	return &PolicyHandlerImpl{policyService: policyService}
}

// List implements PolicyHandler.
func (h *PolicyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, policies)
}

// Categories implements PolicyHandler.
func (h *PolicyHandlerImpl) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.policyService.Categories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, categories)
}

// Get implements PolicyHandler.
func (h *PolicyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.policyService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, p)
}

// Create implements PolicyHandler. Authorization includes position grants, so the
// service makes the final decision.
func (h *PolicyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req policy.CreatePolicyRequest
	if !decodeJSON(w, r, "CreatePolicy", &req, false) {
		return
	}

	created, err := h.policyService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("CreatePolicy service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}
