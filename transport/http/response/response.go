package response

import (
	"encoding/json"
	"net/http"

	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/shared/logger"

	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type Error struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Deleted struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type User[T any] struct {
	Success bool   `json:"success"`
	User    T      `json:"user"`
	Message string `json:"message"`
}

// WithMessage sends a success response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: true, Message: message})
}

// WithJSON sends a success response carrying payload under data
func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	response(writer, code, Data[T]{Success: true, Data: payload})
}

// WithDeleted sends a success response for a bulk delete
func WithDeleted(writer http.ResponseWriter, code int, message string, deletedCount int64) {
	response(writer, code, Deleted{Success: true, Message: message, DeletedCount: deletedCount})
}

// WithUser sends a success response carrying a user identity
func WithUser[T any](writer http.ResponseWriter, code int, user T, message string) {
	response(writer, code, User[T]{Success: true, User: user, Message: message})
}

// WithError sends a failure response. Only the client-safe message of err is
// written; server errors are logged with their cause.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("request failed")
	}

	WithErrorMessage(writer, code, failure.GetMessage(err))
}

// WithErrorMessage sends a failure response with the given status and message
func WithErrorMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Error{Success: false, Error: message})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
