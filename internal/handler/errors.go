package handler

import (
	"errors"
	"io"
	"net/http"

	"bilim-chat/internal/transport/httpdto"
	apperrors "bilim-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	errInvalidBody  = apperrors.New(apperrors.ErrInvalidInput, "invalid request body")
	errBodyTooLarge = apperrors.New(apperrors.ErrTooLarge, "request body too large")
	errNotFound     = apperrors.New(apperrors.ErrNotFound, "Not found")
	errUnauthorized = apperrors.New(apperrors.ErrUnauthorized, "Unauthorized")
)

const internalErrorMessage = "internal server error"

type errorMapping struct {
	kind   error
	status int
	code   string
}

var errorTable = []errorMapping{
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_REQUEST"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
	{apperrors.ErrTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
}

// Status returns the HTTP status and error code for err. Unclassified errors are 500.
func Status(err error) (int, string) {
	kind := apperrors.Kind(err)
	for _, m := range errorTable {
		if m.kind == kind {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// WriteError aborts the request with the mapped status. Internal errors are
// attached to the gin context for the error middleware to log, and their text
// is only shown to clients outside release mode.
func WriteError(c *gin.Context, err error) {
	status, code := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		if gin.Mode() == gin.ReleaseMode {
			msg = internalErrorMessage
		}
	}
	c.AbortWithStatusJSON(status, httpdto.NewErrorResponse(msg, code))
}

// bindJSON decodes the request body into obj. An empty body decodes as the
// zero value and is then validated. Failed binding tags are reported as
// missing when missing is non-nil.
func bindJSON(c *gin.Context, obj any, missing error) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	var invalid validator.ValidationErrors
	switch {
	case errors.As(err, &tooLarge):
		return errBodyTooLarge
	case errors.As(err, &invalid) && missing != nil:
		return missing
	default:
		return errInvalidBody
	}
}

// pathUUID parses a path parameter. An unparseable id is reported as not found.
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errNotFound
	}
	return id, nil
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	WriteError(c, errNotFound)
}
