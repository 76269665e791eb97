// Package handler contains the gin HTTP handlers. Handlers translate
// between the wire and the storage contract; no business rules live here.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// errorBody is the uniform error envelope
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError maps an error to a status code and the uniform envelope.
// Internal details never reach the wire; they are logged instead.
func respondError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(domainStatus(domainErr), errorBody{Code: domainErr.Code, Message: domainErr.Message})
		return
	}

	var connErr *tenant.ConnectionError
	if errors.As(err, &connErr) {
		logger.L(c.Request.Context()).Error("storage unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorBody{Code: "STORAGE_UNAVAILABLE", Message: "Storage temporarily unavailable"})
		return
	}

	logger.L(c.Request.Context()).Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "Internal server error"})
}

func domainStatus(err *shared.DomainError) int {
	switch err.Code {
	case shared.ErrNotFound.Code:
		return http.StatusNotFound
	case shared.ErrAlreadyExists.Code:
		return http.StatusConflict
	case shared.ErrInvalidInput.Code:
		return http.StatusBadRequest
	case shared.ErrUnauthorized.Code:
		return http.StatusUnauthorized
	case shared.ErrForbidden.Code:
		return http.StatusForbidden
	case shared.ErrCouponExhausted.Code, shared.ErrInvalidState.Code, shared.ErrInsufficientBalance.Code:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondValidation reports a request binding failure, with per-field
// messages when the failure came from struct validation
func respondValidation(c *gin.Context, err error) {
	body := errorBody{Code: "INVALID_INPUT", Message: "Request validation failed"}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		body.Fields = make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			body.Fields[fe.Field()] = validationMessage(fe)
		}
	} else {
		body.Message = err.Error()
	}

	c.JSON(http.StatusBadRequest, body)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "invalid UUID format"
	default:
		return "invalid value"
	}
}
