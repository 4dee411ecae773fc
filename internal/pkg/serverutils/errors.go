package serverutils

import "github.com/gofiber/fiber/v2"

// ApiError is the error type services return for conditions that map onto a
// specific HTTP status. Anything else bubbles up as a 500.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

func NewBadRequest(message string) *ApiError {
	return NewApiError(fiber.StatusBadRequest, message)
}

func NewNotFound(message string) *ApiError {
	return NewApiError(fiber.StatusNotFound, message)
}

func NewConflict(message string) *ApiError {
	return NewApiError(fiber.StatusConflict, message)
}

// NewDataError covers responses we received but could not use, like an AI
// reply that is not the JSON we asked for.
func NewDataError(message string) *ApiError {
	return NewApiError(fiber.StatusUnprocessableEntity, message)
}

// NewUpstreamError covers failed calls to the AI or storage backends.
func NewUpstreamError(message string) *ApiError {
	return NewApiError(fiber.StatusBadGateway, message)
}

// NewConfigError covers actions that cannot run because a credential or
// endpoint is not configured. The action fails, the process does not.
func NewConfigError(message string) *ApiError {
	return NewApiError(fiber.StatusServiceUnavailable, message)
}
