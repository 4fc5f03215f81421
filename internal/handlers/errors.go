package handlers

import (
	"errors"
	"net/http"

	"github.com/finledger/bank_recon_app/internal/apperrors"
)

// statusFromError maps service errors onto HTTP status codes. AppError codes
// win; bare sentinels fall back to their conventional status.
func statusFromError(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
