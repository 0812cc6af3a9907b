package http

import (
	"errors"
	"net/http"

	"github.com/mind-engage/snapstudy/internal/storage"
	"github.com/mind-engage/snapstudy/internal/study"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, study.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, study.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, study.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, study.ErrNoSelection),
		errors.Is(err, study.ErrOutOfOrder),
		errors.Is(err, study.ErrOptionRange):
		return http.StatusBadRequest
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	http.Error(w, msg, code)
}
