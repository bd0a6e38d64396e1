package middleware

import (
	"encoding/json"
	"net/http"

	"stockroom/internal/domain"

	"go.uber.org/zap"
)

const (
	MessageValidationFailed = "Validation failed"
	MessageInternalError    = "Action failed"
)

// ErrorResponse is the failure form of the response envelope
type ErrorResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Errors  []domain.Violation `json:"errors,omitempty"`
}

// RespondWithError sends a failure envelope
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// RespondWithValidationErrors sends a 400 failure envelope listing every violation
func RespondWithValidationErrors(w http.ResponseWriter, violations []domain.Violation) {
	RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{
		Success: false,
		Message: MessageValidationFailed,
		Errors:  violations,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, MessageInternalError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NotFoundHandler answers unmatched routes with a failure envelope
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	RespondWithError(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowedHandler answers known routes called with the wrong verb
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
