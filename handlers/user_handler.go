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

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, pagination, err := h.service.List(ctx, actor, r.URL.Query())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, "Users retrieved successfully", users, pagination)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.GetByID(ctx, actor, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "User retrieved successfully", user, http.StatusOK)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateUserInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Create(ctx, actor, input)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "User created successfully", user, http.StatusCreated)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	var input models.UpdateUserInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Update(ctx, actor, id, input)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "User updated successfully", user, http.StatusOK)
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Deactivate(ctx, actor, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "User deactivated successfully", http.StatusOK)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	var input models.ChangePasswordInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.ChangePassword(ctx, actor, id, input); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Password changed successfully", http.StatusOK)
}

// Me returns the acting user's own record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	id, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid token subject", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.GetByID(ctx, actor, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Profile retrieved successfully", user, http.StatusOK)
}

// UpdateMe lets the acting user edit their own profile.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	id, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid token subject", http.StatusUnauthorized)
		return
	}

	var input models.UpdateUserInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Update(ctx, actor, id, input)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Profile updated successfully", user, http.StatusOK)
}

// ChangeMyPassword rotates the acting user's own password.
func (h *UserHandler) ChangeMyPassword(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	id, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid token subject", http.StatusUnauthorized)
		return
	}

	var input models.ChangePasswordInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.ChangePassword(ctx, actor, id, input); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Password changed successfully", http.StatusOK)
}
