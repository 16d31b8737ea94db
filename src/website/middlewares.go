package website

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/carafeforum/carafe/src/auth"
	"github.com/carafeforum/carafe/src/carafedata"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/logging"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/oops"
	"github.com/google/uuid"
)

func panicCatcherMiddleware(h Handler) Handler {
	return func(c *RequestContext) (res ResponseData) {
		defer func() {
			if recovered := recover(); recovered != nil {
				maybeError, ok := recovered.(*error)
				var err error
				if ok {
					err = *maybeError
				} else {
					err = oops.New(nil, fmt.Sprintf("Recovered from panic with value: %v", recovered))
				}
				res = c.ErrorResponse(http.StatusInternalServerError, err)
			}
		}()

		return h(c)
	}
}

// trackRequestMiddleware gives every request an id, a logger tagged with it,
// and a timing log line on the way out.
func trackRequestMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		requestID := uuid.New().String()
		logger := c.Logger.With().Str("requestId", requestID).Logger()
		c.Logger = &logger

		start := time.Now()
		res := h(c)

		c.Logger.Info().
			Str("method", c.Req.Method).
			Str("path", c.Req.URL.Path).
			Int("status", res.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("served request")

		return res
	}
}

// loadCommonData resolves the session cookie into a current user, if any.
// Anonymous requests proceed with both fields nil.
func loadCommonData(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
		if err == nil {
			user, session, err := getCurrentUserAndSession(c, sessionCookie.Value)
			if err != nil {
				return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to get current user"))
			}

			c.CurrentUser = user
			c.CurrentSession = session
		}
		// http.ErrNoCookie is the only error Cookie ever returns, so no further handling to do here.

		return h(c)
	}
}

// Given a session id, fetches user data from the database. Will return nil if
// the user cannot be found, and will only return an error if it's serious.
func getCurrentUserAndSession(c *RequestContext, sessionId string) (*models.User, *models.Session, error) {
	session, err := auth.GetSession(c, c.Conn, sessionId)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			return nil, nil, nil
		} else {
			return nil, nil, oops.New(err, "failed to get current session")
		}
	}

	user, err := carafedata.FetchUserByUsername(c, c.Conn, session.Username)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			logging.Debug().Str("username", session.Username).Msg("returning no current user for this request because the user for the session couldn't be found")
			return nil, nil, nil // user was deleted or something
		} else {
			return nil, nil, oops.New(err, "failed to get user for session")
		}
	}

	return user, session, nil
}

func needsAuth(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil {
			return c.ErrorResponse(http.StatusUnauthorized, NewSafeError(nil, "you must be logged in to do that"))
		}

		return h(c)
	}
}

func adminsOnly(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil || !c.CurrentUser.IsAdmin {
			return FourOhFour(c)
		}

		return h(c)
	}
}

func csrfMiddleware(h Handler) Handler {
	// CSRF mitigation actions per the OWASP cheat sheet:
	// https://cheatsheetseries.owasp.org/cheatsheets/Cross-Site_Request_Forgery_Prevention_Cheat_Sheet.html
	return func(c *RequestContext) ResponseData {
		err := c.Req.ParseForm()
		if err != nil {
			return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
		}
		csrfToken := c.Req.Form.Get(auth.CSRFFieldName)
		if csrfToken == "" {
			csrfToken = c.Req.Header.Get("X-CSRF-Token")
		}
		if csrfToken != c.CurrentSession.CSRFToken {
			c.Logger.Warn().Str("username", c.CurrentUser.Username).Msg("user failed CSRF validation - potential attack?")

			res := c.ErrorResponse(http.StatusForbidden, NewSafeError(nil, "CSRF validation failed"))
			logoutUser(c, &res)

			return res
		}

		return h(c)
	}
}

func logContextErrors(c *RequestContext, errs ...error) {
	for _, err := range errs {
		c.Logger.Error().Timestamp().Stack().Str("Requested", c.FullUrl()).Err(err).Msg("error occurred during request")
	}
}

func logContextErrorsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		logContextErrors(c, res.Errors...)
		return res
	}
}
