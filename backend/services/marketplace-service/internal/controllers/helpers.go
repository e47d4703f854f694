package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	shared_dtos "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-middleware"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// formatValidationErrors converts validator errors into a user-friendly format.
func formatValidationErrors(errs validator.ValidationErrors) []shared_dtos.ValidationErrorDetail {
	var details []shared_dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "uuid":
			message = fmt.Sprintf("Field '%s' must be a valid id", err.Field())
		case "datetime":
			message = fmt.Sprintf("Field '%s' must be a date in %s format", err.Field(), err.Param())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s", err.Field(), err.Param())
		case "gt", "gte":
			message = fmt.Sprintf("Field '%s' must be greater than %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, shared_dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

// decodeAndValidate reads a JSON body into dst and runs the struct tags. Any
// missing required field yields the "All fields are required" 400.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
			return false
		}
		details := formatValidationErrors(vErrs)
		for _, fe := range vErrs {
			if fe.Tag() == "required" {
				utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeMissingFields, "All fields are required", details, err)
				return false
			}
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", details, err)
		return false
	}
	return true
}

// requireUser returns the authenticated caller or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, models.Role, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing userID in context", nil)
		return uuid.Nil, "", false
	}
	role, _ := middleware.RoleFromContext(r.Context())
	return userID, role, true
}

// authorizeSubject rejects a request whose token names a different user than
// the body does. Anonymous requests and admins pass.
func authorizeSubject(w http.ResponseWriter, r *http.Request, bodyUserID uuid.UUID) bool {
	tokenUser, ok := middleware.UserIDFromContext(r.Context())
	if !ok || tokenUser == bodyUserID {
		return true
	}
	if role, _ := middleware.RoleFromContext(r.Context()); role.IsAdmin() {
		return true
	}
	utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "You may only act on your own account", nil)
	return false
}

// pathUUID parses the {id} route variable or writes a 400.
func pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// mustUUID parses an id that already passed the uuid validator.
func mustUUID(s string) uuid.UUID {
	return uuid.MustParse(s)
}
