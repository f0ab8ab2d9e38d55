package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"go.creack.net/eqcalc/parser"
)

// Error is the body of every failed request.
type Error struct {
	Status  int    `json:"status" msgpack:"status"`
	Message string `json:"message,omitempty" msgpack:"message,omitempty"`
	Details string `json:"details,omitempty" msgpack:"details,omitempty"`

	// Pos is the byte offset of the offending token when the equation
	// itself is invalid.
	Pos *int `json:"pos,omitempty" msgpack:"pos,omitempty"`
}

// NewError creates an error reported with the given HTTP status.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func (err *Error) Error() string {
	if err.Details == "" {
		return fmt.Sprintf("%d %s", err.Status, err.Message)
	}
	return fmt.Sprintf("%d %s (%s)", err.Status, err.Message, err.Details)
}

// WithDetails sets the details and returns the same error.
func (err *Error) WithDetails(details string) *Error {
	err.Details = details
	return err
}

// equationError reports an equation that failed to lex, parse or evaluate.
func equationError(err error) *Error {
	e := NewError(http.StatusBadRequest, err.Error()).WithDetails("failed to evaluate equation")
	var ierr parser.InputError
	if errors.As(err, &ierr) {
		pos := ierr.Pos()
		e.Pos = &pos
	}
	return e
}

// asError turns a recovered panic value into an Error. Anything but an *Error
// is unexpected and reported as an internal error.
func asError(r interface{}) *Error {
	switch v := r.(type) {
	case *Error:
		log.WithError(v).Warn("request failed")
		return v
	case error:
		log.WithError(v).Error("request panicked")
		log.Debugf("stack trace:\n%s", debug.Stack())
		return NewError(http.StatusInternalServerError, v.Error())
	default:
		log.WithField("panic", r).Error("request panicked")
		log.Debugf("stack trace:\n%s", debug.Stack())
		return NewError(http.StatusInternalServerError, fmt.Sprint(r))
	}
}

// RecoverFromPanic is deferred by every handler. Handlers fail by panicking
// with an *Error, which is written in the negotiated format.
func RecoverFromPanic(ctx *gin.Context) {
	r := recover()
	if r == nil {
		return
	}
	e := asError(r)
	if err := write(ctx, e.Status, e); err != nil {
		// Must not panic again from here.
		log.WithError(err).Error("failed to encode error")
		ctx.JSON(e.Status, e)
	}
	ctx.Abort()
}
