package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/platform/obs"
	"waypoint-route-service/internal/ports"
	"waypoint-route-service/internal/services"
)

// Upper bound on request bodies; services.MaxPoints waypoints fit comfortably.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to HTTP statuses; anything unknown is
// logged and reported as a 500 without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate), errors.Is(err, services.ErrInvalidRoute):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrRouteNotFound):
		writeError(w, r, http.StatusNotFound, "route not found")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeBody decodes exactly one JSON object into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
