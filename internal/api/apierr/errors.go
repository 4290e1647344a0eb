package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeNameTaken          = "NAME_TAKEN"
	CodeInvalidName        = "INVALID_NAME"
	CodePhaseNotLobby      = "PHASE_NOT_LOBBY"
	CodeInvalidZone        = "INVALID_ZONE"
	CodeInvalidLocation    = "INVALID_LOCATION"
	CodeInvalidTeam        = "INVALID_TEAM"
	CodeTeamFull           = "TEAM_FULL"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeAccountRequired    = "ACCOUNT_REQUIRED"
	CodeUnavailable        = "UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUnknownPlayer), errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Name is already taken"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Name must be 1-32 characters"}}
	case errors.Is(err, model.ErrPhaseNotLobby):
		return &httpError{http.StatusConflict, APIError{CodePhaseNotLobby, "Game is not in the lobby"}}
	case errors.Is(err, model.ErrInvalidZone):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidZone, "Zone needs valid coordinates and a positive radius"}}
	case errors.Is(err, model.ErrInvalidLocation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLocation, "Invalid coordinates"}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "Team must be a positive number"}}
	case errors.Is(err, model.ErrTeamFull):
		return &httpError{http.StatusConflict, APIError{CodeTeamFull, "Team already has two players"}}
	case errors.Is(err, model.ErrNotDirector):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Director key required"}}
	case errors.Is(err, model.ErrEngineStopped):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeUnavailable, "Game engine is not running"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrInvalidPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPassword, "Password must not be empty"}}
	case errors.Is(err, auth.ErrAccountRequired):
		return &httpError{http.StatusForbidden, APIError{CodeAccountRequired, "A registered account is required"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
