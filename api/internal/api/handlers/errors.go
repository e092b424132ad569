package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/featurelist/configseal/api/internal/core/services"
	"github.com/featurelist/configseal/api/internal/infrastructure/obfuscation"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// HandleError maps service and codec errors onto HTTP responses. Codec
// rejections are client errors and keep their kind so callers can branch.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	var oerr *obfuscation.Error

	switch {
	case errors.As(err, &verrs):
		writeError(w, http.StatusBadRequest, "Validation failed: "+verrs[0].Field()+" is "+verrs[0].Tag(), "")

	case errors.As(err, &oerr):
		writeError(w, http.StatusUnprocessableEntity, oerr.Error(), oerr.Kind.String())

	case errors.Is(err, services.ErrInvalidConfig):
		writeError(w, http.StatusUnprocessableEntity, services.ErrInvalidConfig.Error(), "InvalidConfig")

	default:
		slog.Error("Unhandled request error",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}

func writeError(w http.ResponseWriter, status int, message, kind string) {
	writeJSON(w, status, ErrorResponse{Message: message, Kind: kind})
}
