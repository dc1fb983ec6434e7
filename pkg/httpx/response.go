// Package httpx holds the HTTP plumbing shared by both binaries: the router
// and server constructors, JSON responses and the health endpoint.
package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with status. v is encoded before any header is written, so
// an unencodable value becomes a plain 500 rather than a truncated body.
func JSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// JSONError writes {"error": message}.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// SafeError is the client-facing message for err. In production 5xx
// details are replaced by the status text.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
