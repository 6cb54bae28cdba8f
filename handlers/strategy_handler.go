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

type StrategyHandler struct {
	service service.StrategyService
}

func NewStrategyHandler(service service.StrategyService) *StrategyHandler {
	return &StrategyHandler{
		service: service,
	}
}

func (h *StrategyHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	strategies, pagination, err := h.service.List(ctx, actor, r.URL.Query())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, "Strategies retrieved successfully", strategies, pagination)
}

func (h *StrategyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid strategy ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	strategy, err := h.service.GetByID(ctx, actor, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Strategy retrieved successfully", strategy, http.StatusOK)
}

func (h *StrategyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var strategy models.Strategy
	if err := utils.DecodeAndValidate(w, r, &strategy); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, actor, &strategy)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Strategy created successfully", created, http.StatusCreated)
}

func (h *StrategyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid strategy ID format", http.StatusBadRequest)
		return
	}

	var input models.UpdateStrategyInput
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

	utils.HandleDataResponse(w, "Strategy updated successfully", updated, http.StatusOK)
}

func (h *StrategyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid strategy ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, actor, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Strategy deleted successfully", http.StatusOK)
}
