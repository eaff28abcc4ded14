package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Upcoming(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayService holiday.Service
}

func NewHolidayHandler(holidayService holiday.Service) HolidayHandler {
	return &HolidayHandlerImpl{holidayService: holidayService}
}

// List implements HolidayHandler.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	requests, err := h.holidayService.List(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, requests)
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req holiday.CreateRequest
	if !decodeJSON(w, r, "CreateHolidayRequest", &req, false) {
		return
	}

	created, err := h.holidayService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("CreateHolidayRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

// Upcoming implements HolidayHandler.
func (h *HolidayHandlerImpl) Upcoming(w http.ResponseWriter, r *http.Request) {
	requests, err := h.holidayService.Upcoming(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, requests)
}

// Balance implements HolidayHandler.
func (h *HolidayHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	balance, err := h.holidayService.Balance(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, balance)
}

// Pending implements HolidayHandler.
func (h *HolidayHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.holidayService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, requests)
}

// UpdateStatus implements HolidayHandler.
func (h *HolidayHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req holiday.UpdateStatusRequest
	if !decodeJSON(w, r, "UpdateHolidayStatus", &req, false) {
		return
	}

	decided, err := h.holidayService.UpdateStatus(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("UpdateHolidayStatus service error", "error", err, "request_id", id)
		response.HandleError(w, err)
		return
	}
	response.OK(w, decided)
}
