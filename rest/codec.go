package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gopkg.in/vmihailenco/msgpack.v2"
)

// supported response formats
const (
	MIME_JSON     = "application/json"
	MIME_MSGPACK  = "application/msgpack"
	MIME_XMSGPACK = "application/x-msgpack"
)

// write encodes v in the format requested by the Accept header, JSON by
// default.
func write(ctx *gin.Context, status int, v interface{}) error {
	switch mime := ctx.NegotiateFormat(MIME_JSON, MIME_MSGPACK, MIME_XMSGPACK); mime {
	case MIME_MSGPACK, MIME_XMSGPACK:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to encode msgpack")
		}
		ctx.Data(status, mime, data)
	default:
		ctx.JSON(status, v)
	}
	return nil
}

// render is write for handlers: an encoding failure is an internal error.
func render(ctx *gin.Context, status int, v interface{}) {
	if err := write(ctx, status, v); err != nil {
		panic(NewError(http.StatusInternalServerError, err.Error()).
			WithDetails("failed to encode response"))
	}
}
