package handler

import (
	"errors"
	"net/http"

	"github.com/Pelmenoff/m2-hw12/internal/api/rest/response"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// handleError translates a service error into an HTTP error response.
// Errors of unknown kind are logged and reported as 500 without details.
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	detail := err.Error()
	var domainErr *model.Error
	if errors.As(err, &domainErr) {
		detail = domainErr.Message
	}

	switch {
	case errors.Is(err, model.ErrValidation):
		response.Error(w, http.StatusUnprocessableEntity, detail)
	case errors.Is(err, model.ErrNotFound):
		response.Error(w, http.StatusNotFound, detail)
	case errors.Is(err, model.ErrConflict):
		response.Error(w, http.StatusConflict, detail)
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrInvalidToken):
		response.Unauthorized(w, detail)
	default:
		log.Error("Handler: internal error",
			"error", err.Error())
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
