package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type LearningHandler interface {
	ListCourses(w http.ResponseWriter, r *http.Request)
	Categories(w http.ResponseWriter, r *http.Request)
	GetCourse(w http.ResponseWriter, r *http.Request)
	ListModules(w http.ResponseWriter, r *http.Request)
	ListProgress(w http.ResponseWriter, r *http.Request)
	CurrentCourses(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	UpdateProgress(w http.ResponseWriter, r *http.Request)
	CreateCourse(w http.ResponseWriter, r *http.Request)
	CreateModule(w http.ResponseWriter, r *http.Request)
}

type LearningHandlerImpl struct {
	learningService learning.Service
}

func NewLearningHandler(learningService learning.Service) LearningHandler {
	return &LearningHandlerImpl{learningService: learningService}
}

// ListCourses implements LearningHandler.
func (h *LearningHandlerImpl) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.learningService.ListCourses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, courses)
}

// Categories implements LearningHandler.
func (h *LearningHandlerImpl) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.learningService.Categories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, categories)
}

// GetCourse implements LearningHandler.
func (h *LearningHandlerImpl) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	course, err := h.learningService.GetCourse(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, course)
}

// ListModules implements LearningHandler.
func (h *LearningHandlerImpl) ListModules(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	modules, err := h.learningService.ListModules(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, modules)
}

// ListProgress implements LearningHandler.
func (h *LearningHandlerImpl) ListProgress(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	progress, err := h.learningService.ListProgress(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, progress)
}

// CurrentCourses implements LearningHandler.
func (h *LearningHandlerImpl) CurrentCourses(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	current, err := h.learningService.CurrentCourses(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, current)
}

// Stats implements LearningHandler.
func (h *LearningHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.learningService.Stats(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, stats)
}

// UpdateProgress implements LearningHandler.
func (h *LearningHandlerImpl) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req learning.UpdateProgressRequest
	if !decodeJSON(w, r, "UpdateProgress", &req, false) {
		return
	}

	progress, err := h.learningService.UpdateProgress(r.Context(), actor.ID, id, req)
	if err != nil {
		slog.Error("UpdateProgress service error", "error", err, "course_id", id)
		response.HandleError(w, err)
		return
	}
	response.OK(w, progress)
}

// CreateCourse implements LearningHandler.
func (h *LearningHandlerImpl) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req learning.CreateCourseRequest
	if !decodeJSON(w, r, "CreateCourse", &req, false) {
		return
	}
	course, err := h.learningService.CreateCourse(r.Context(), req)
	if err != nil {
		slog.Error("CreateCourse service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, course)
}

// CreateModule implements LearningHandler.
func (h *LearningHandlerImpl) CreateModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req learning.CreateModuleRequest
	if !decodeJSON(w, r, "CreateModule", &req, false) {
		return
	}
	module, err := h.learningService.CreateModule(r.Context(), id, req)
	if err != nil {
		slog.Error("CreateModule service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, module)
}
