package response

import (
	"encoding/json"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the body of every API response.
type Envelope[T any] struct {
	Success  bool     `json:"success"`
	Messages []string `json:"messages"`
	Data     *T       `json:"data,omitempty"`
}

// WithMessage sends an envelope carrying only messages. Codes below 400 are reported as success.
func WithMessage(writer http.ResponseWriter, code int, messages ...string) {
	response(writer, code, Envelope[any]{Success: code < http.StatusBadRequest, Messages: normalize(messages)})
}

// WithJSON sends a successful envelope with payload as data.
func WithJSON[T any](writer http.ResponseWriter, code int, payload T, messages ...string) {
	response(writer, code, Envelope[T]{Success: true, Messages: normalize(messages), Data: &payload})
}

// WithEmpty sends a failed envelope with payload as data, used when a listing has no rows.
func WithEmpty[T any](writer http.ResponseWriter, code int, payload T, messages ...string) {
	response(writer, code, Envelope[T]{Success: false, Messages: normalize(messages), Data: &payload})
}

// WithError sends the failure message of err with its code. Errors that are not failures are hidden.
func WithError(writer http.ResponseWriter, err error) {
	WithErrorCode(writer, failure.GetCode(err), err)
}

// WithErrorCode sends err with an explicit status code.
func WithErrorCode(writer http.ResponseWriter, code int, err error) {
	errMsg := err.Error()
	if !failure.IsFailure(err) || code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("code", code).Msg("request failed")

		errMsg = constant.ResponseErrorInternal
	}

	response(writer, code, Envelope[any]{Success: false, Messages: []string{errMsg}})
}

// WithErrorRemapped sends err like WithError, except that failures carrying one of codes are sent with status.
func WithErrorRemapped(writer http.ResponseWriter, err error, status int, codes ...int) {
	for _, code := range codes {
		if failure.HasCode(err, code) {
			WithErrorCode(writer, status, err)

			return
		}
	}

	WithError(writer, err)
}

// WithDeleteError reports a refused delete. An unknown row and a row still referenced are both bad requests.
func WithDeleteError(writer http.ResponseWriter, err error) {
	WithErrorRemapped(writer, err, http.StatusBadRequest, http.StatusNotFound, http.StatusConflict)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func normalize(messages []string) []string {
	if messages == nil {
		return []string{}
	}

	return messages
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
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
