package catalog

import (
	"errors"
	"net/http"

	"bookcatalog/internal/book"
	"bookcatalog/internal/document"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/report"
)

type errorMapping struct {
	status  int
	code    string
	message string // replaces err.Error() when set
}

// classify maps a core failure to a status and envelope code. Order matters:
// ErrNoBooks also wraps ErrInvalidArgument.
func classify(err error) errorMapping {
	switch {
	case errors.Is(err, report.ErrNoBooks):
		return errorMapping{status: http.StatusNotFound, code: "NO_BOOKS"}
	case errors.Is(err, document.ErrNotFound):
		return errorMapping{status: http.StatusNotFound, code: "CATALOG_NOT_FOUND", message: "Catalog document not found"}
	case errors.Is(err, book.ErrNotFound):
		return errorMapping{status: http.StatusNotFound, code: "NOT_FOUND"}
	case errors.Is(err, book.ErrAlreadyExists):
		return errorMapping{status: http.StatusConflict, code: "ALREADY_EXISTS"}
	case errors.Is(err, book.ErrTranscode):
		return errorMapping{status: http.StatusBadRequest, code: "MALFORMED_RECORD"}
	case errors.Is(err, book.ErrValidation):
		return errorMapping{status: http.StatusBadRequest, code: "VALIDATION_ERROR"}
	case errors.Is(err, book.ErrInvalidArgument):
		return errorMapping{status: http.StatusBadRequest, code: "INVALID_ARGUMENT"}
	case errors.Is(err, report.ErrUnsupportedFormat):
		return errorMapping{status: http.StatusBadRequest, code: "UNSUPPORTED_FORMAT"}
	default:
		return errorMapping{status: http.StatusInternalServerError, code: "INTERNAL_ERROR"}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	m := classify(err)
	if m.status == http.StatusInternalServerError {
		httpx.JSONError(w, r, m.status, m.code, "Internal server error", nil)
		return
	}

	message := m.message
	if message == "" {
		message = err.Error()
	}

	var details []httpx.ErrorDetail
	var fe *book.FieldError
	if errors.As(err, &fe) {
		details = []httpx.ErrorDetail{{Field: fe.Field, Message: fe.Msg}}
	}
	httpx.JSONError(w, r, m.status, m.code, message, details)
}
