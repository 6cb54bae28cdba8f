package utils

import (
	"encoding/json"
	"net/http"

	"stratplan/apperrors"
	"stratplan/models"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

// DecodeAndValidate decodes the request body into a structure and validates it
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return err
	}
	if err := Validate.Struct(v); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)

		for _, e := range validationErrors {
			errorMessages[e.Field()] = e.Tag()
		}
		HandleValidationResponse(w, errorMessages)
		return err
	}
	return nil
}

// HandleMessageResponse writes a success/failure envelope with no data.
func HandleMessageResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, models.NewMessageResponse(statusCode < 400, message))
}

// HandleValidationResponse writes field-level validation errors.
func HandleValidationResponse(w http.ResponseWriter, validationErrors interface{}) {
	writeJSON(w, http.StatusBadRequest, models.NewValidationResponse(validationErrors))
}

// HandleDataResponse writes a success envelope carrying data.
func HandleDataResponse(w http.ResponseWriter, message string, data interface{}, statusCode int) {
	writeJSON(w, statusCode, models.NewDataResponse(message, data))
}

// HandleListResponse writes a success envelope with data and pagination.
func HandleListResponse(w http.ResponseWriter, message string, data interface{}, pagination models.Pagination) {
	writeJSON(w, http.StatusOK, models.NewListResponse(message, data, pagination))
}

// HandleError maps a service error onto its HTTP status. Handlers never
// choose status codes for service failures themselves.
func HandleError(w http.ResponseWriter, err error) {
	HandleMessageResponse(w, err.Error(), apperrors.StatusCode(err))
}

func writeJSON(w http.ResponseWriter, statusCode int, response models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
