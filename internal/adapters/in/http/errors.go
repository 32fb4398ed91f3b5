package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionError is returned for illegal status transitions and lists the
// targets that were legal from the current status.
type TransitionError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Allowed []string `json:"allowed"`
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	var illegal *errs.IllegalTransitionError
	switch {
	case errors.As(err, &illegal):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrRemoteFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	code := StatusFor(err)

	var illegal *errs.IllegalTransitionError
	if errors.As(err, &illegal) {
		allowed := illegal.Allowed
		if allowed == nil {
			allowed = []string{}
		}
		return c.JSON(code, TransitionError{Code: code, Message: err.Error(), Allowed: allowed})
	}

	body := Error{Code: code, Message: err.Error()}
	var remote *errs.RemoteFailureError
	if errors.As(err, &remote) {
		body.Message = remote.UserMessage()
	}

	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	if code == http.StatusInternalServerError {
		body.Message = "internal server error"
	}

	return c.JSON(code, body)
}
