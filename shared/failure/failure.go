// Package failure carries errors meant for API callers together with the HTTP status they map to.
// Any other error reaching a handler is reported as an internal error with its message hidden.
package failure

import (
	"errors"
	"fmt"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// New returns a Failure with the given status code.
func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

// BadRequest turns err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// InternalError turns err into a 500. A nil err stays nil.
func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// NotFound reports a missing row, e.g. NotFound("room not found").
func NotFound(message string) error {
	return New(http.StatusNotFound, message)
}

func NotFoundf(format string, args ...any) error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Conflict reports a write refused because of the state of other rows, such as a room still reserved.
func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

func Conflictf(format string, args ...any) error {
	return Conflict(fmt.Sprintf(format, args...))
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}

// GetCode returns the status of the Failure wrapped in err, 500 when there is none.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func IsFailure(err error) bool {
	_, ok := as(err)

	return ok
}

// HasCode reports whether err wraps a Failure with the given code.
func HasCode(err error, code int) bool {
	fail, ok := as(err)

	return ok && fail.Code == code
}
