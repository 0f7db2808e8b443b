package uploaderrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

// NewMalformedWorkbook wraps a structural parse failure so the caller gets a
// 422 with the concrete reason rather than a masked 500.
func NewMalformedWorkbook(reason string) *apperror.AppError {
	return apperror.New(
		apperror.CodeUnprocessable,
		reason,
		http.StatusUnprocessableEntity,
	)
}

var (
	ErrUploadNotFound = apperror.New(
		apperror.CodeNotFound,
		"Upload not found",
		http.StatusNotFound,
	)
	ErrMissingFile = apperror.New(
		apperror.CodeInvalidInput,
		"A spreadsheet file is required",
		http.StatusBadRequest,
	)
	ErrInvalidUploadID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid upload ID",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Monetary amounts must not be negative",
		http.StatusBadRequest,
	)
)
