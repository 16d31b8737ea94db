package website

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/carafeforum/carafe/src/carafedata"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/oops"
)

func FourOhFour(c *RequestContext) ResponseData {
	var res ResponseData
	res.StatusCode = http.StatusNotFound
	res.WriteJson(map[string]any{"error": "Not Found"})
	return res
}

// A SafeError can be used to wrap another error and explicitly provide
// an error message that is safe to show to a user. This allows the original
// error to easily be logged and for servers to consistently return errors
// in a standard format, without having to worry about leaking sensitive
// info (assuming you use the right middleware!).
type SafeError struct {
	Wrapped error
	Msg     string
}

func NewSafeError(err error, msg string, args ...interface{}) error {
	return &SafeError{
		Wrapped: err,
		Msg:     fmt.Sprintf(msg, args...),
	}
}

func (s *SafeError) Error() string {
	return s.Msg
}

func (s *SafeError) Unwrap() error {
	return s.Wrapped
}

// dataErrorResponse maps carafedata errors onto HTTP responses. Hidden or
// missing content is a plain 404; a permission failure on content the user
// can see is an overt 403.
func dataErrorResponse(c *RequestContext, err error, what string) ResponseData {
	switch {
	case errors.Is(err, db.NotFound):
		return FourOhFour(c)
	case errors.Is(err, carafedata.ErrForbidden):
		return c.ErrorResponse(http.StatusForbidden, NewSafeError(err, "you are not allowed to do that"))
	case errors.Is(err, carafedata.ErrValidation):
		return c.ErrorResponse(http.StatusUnprocessableEntity, NewSafeError(err, "%s", err.Error()))
	case errors.Is(err, carafedata.ErrConflict):
		return c.ErrorResponse(http.StatusConflict, NewSafeError(err, "%s", err.Error()))
	default:
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to %s", what))
	}
}
