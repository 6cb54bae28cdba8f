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

type StrategicIssueHandler struct {
	service service.StrategicIssueService
}

func NewStrategicIssueHandler(service service.StrategicIssueService) *StrategicIssueHandler {
	return &StrategicIssueHandler{
		service: service,
	}
}

func (h *StrategicIssueHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	issues, pagination, err := h.service.List(ctx, actor, r.URL.Query())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, "Strategic issues retrieved successfully", issues, pagination)
}

func (h *StrategicIssueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid strategic issue ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	issue, err := h.service.GetByID(ctx, actor, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Strategic issue retrieved successfully", issue, http.StatusOK)
}

func (h *StrategicIssueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var issue models.StrategicIssue
	if err := utils.DecodeAndValidate(w, r, &issue); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, actor, &issue)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Strategic issue created successfully", created, http.StatusCreated)
}

func (h *StrategicIssueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid strategic issue ID format", http.StatusBadRequest)
		return
	}

	var input models.UpdateStrategicIssueInput
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

	utils.HandleDataResponse(w, "Strategic issue updated successfully", updated, http.StatusOK)
}

func (h *StrategicIssueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid strategic issue ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, actor, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Strategic issue deleted successfully", http.StatusOK)
}
