package web

// errors.go maps catalog errors onto HTTP responses. Technical details are
// logged with the request ID; clients get the catalog.MapError message and
// code, as JSON for API routes and as an HTML alert for pages.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/logging"
	"github.com/JonMunkholm/CoursePlanner/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Details, Missing and Row carry the specifics of catalog validation
// failures.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Row     int      `json:"row,omitempty"`
	Action  string   `json:"action,omitempty"`
	Code    string   `json:"code"`
}

var rateLimitResponse = newErrorResponse(errors.New("rate limit exceeded"))

// newErrorResponse maps err for clients.
func newErrorResponse(err error) ErrorResponse {
	msg := catalog.MapError(err)
	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Details: msg.Details,
		Action:  msg.Action,
		Code:    msg.Code,
	}

	var upe *catalog.UnresolvedPrerequisiteError
	if errors.As(err, &upe) {
		resp.Missing = upe.Missing
	}
	var mre *catalog.MalformedRowError
	if errors.As(err, &mre) {
		resp.Row = mre.Row
	}
	return resp
}

// statusFor picks the HTTP status for a catalog error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrMalformedRow), errors.Is(err, catalog.ErrUnresolvedPrerequisite):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, catalog.ErrTooManyLoads):
		return http.StatusTooManyRequests
	case errors.Is(err, catalog.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrNoSource):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes a user-facing response with the status
// chosen by statusFor.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := newErrorResponse(err)

	logging.FromContext(r.Context()).Log(r.Context(), logging.LevelForStatus(status), "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", resp.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, resp, status)
		return
	}
	page := templates.Layout("Error", templates.ErrorAlert(resp.Message, resp.Details, resp.Action, resp.Code))
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, resp ErrorResponse, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
