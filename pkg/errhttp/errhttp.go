// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/tocampus/governance/pkg/httpx"
	govdomain "github.com/tocampus/governance/services/governance/domain"
)

// PolicyErrorResponse is written for policy violations so clients can show
// the offending rules next to the form.
type PolicyErrorResponse struct {
	Error           string   `json:"error"`
	ComplianceScore int      `json:"compliance_score"`
	Violations      []string `json:"violations"`
} // @name PolicyErrorResponse

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	var pv *govdomain.PolicyViolationError
	if errors.As(err, &pv) {
		httpx.JSON(w, http.StatusUnprocessableEntity, PolicyErrorResponse{
			Error:           err.Error(),
			ComplianceScore: pv.Score,
			Violations:      append([]string{}, pv.Violations...),
		})
		return
	}
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

// WriteSafeError is WriteError with 5xx messages replaced by the status text
// in production.
func WriteSafeError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)
	if status < http.StatusInternalServerError {
		WriteError(w, err)
		return
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

// Status returns the HTTP status code WriteError would use for err.
func Status(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, govdomain.ErrContentNotFound):
		return http.StatusNotFound // 404
	// ErrUnauthorizedActor wraps ErrInvalidTransition, so it must come first.
	case errors.Is(err, govdomain.ErrUnauthorizedActor), errors.Is(err, govdomain.ErrUserNotFound):
		return http.StatusForbidden // 403
	case errors.Is(err, govdomain.ErrInvalidTransition), errors.Is(err, govdomain.ErrVersionConflict):
		return http.StatusConflict // 409
	case errors.Is(err, govdomain.ErrValidation), errors.Is(err, govdomain.ErrPolicyViolation):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500, including ErrAuditWrite
	}
}
