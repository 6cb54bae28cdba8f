package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "stratplan/middlewares"
	"stratplan/models"
	service "stratplan/services"
	"stratplan/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	projects, pagination, err := h.service.List(ctx, actor, r.URL.Query())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, "Projects retrieved successfully", projects, pagination)
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	project, err := h.service.GetByID(ctx, actor, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Project retrieved successfully", project, http.StatusOK)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := utils.DecodeAndValidate(w, r, &project); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, actor, &project)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Project created successfully", created, http.StatusCreated)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	var input models.UpdateProjectInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := h.service.Update(ctx, actor, id, input)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Project updated successfully", updated, http.StatusOK)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, actor, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Project deleted successfully", http.StatusOK)
}

// PublicList serves the anonymous project listing. It is mounted
// without the JWT middleware and never consults the guard.
func (h *ProjectHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	projects, pagination, err := h.service.PublicList(ctx, r.URL.Query())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, "Projects retrieved successfully", projects, pagination)
}

// PublicStats serves the anonymous status breakdown.
func (h *ProjectHandler) PublicStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.PublicStats(ctx)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Project statistics retrieved successfully", stats, http.StatusOK)
}
