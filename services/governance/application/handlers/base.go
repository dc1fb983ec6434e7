// Package handlers holds the HTTP handlers of the governance API. Each
// handler resolves the caller from the session context, validates its
// request and calls one Pipeline operation.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/auth"
	"github.com/tocampus/governance/pkg/errhttp"
	"github.com/tocampus/governance/pkg/httpx"
	"github.com/tocampus/governance/pkg/telemetry"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
)

type base struct {
	svc        *appsvcs.Services
	production bool
}

// fail writes err as a JSON error. Server-side failures are also reported
// to Sentry with the route that hit them.
func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errhttp.Status(err) >= http.StatusInternalServerError {
		tags := map[string]string{"method": r.Method}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			tags["route"] = rctx.RoutePattern()
		}
		telemetry.CaptureError(r.Context(), err, tags)
	}
	errhttp.WriteSafeError(w, err, b.production)
}

// caller returns the authenticated user, or writes 401.
func caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

// contentID parses the {id} path parameter, or writes 400.
func contentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid content id"})
		return uuid.Nil, false
	}
	return id, true
}
