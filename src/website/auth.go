package website

import (
	"errors"
	"net/http"

	"github.com/carafeforum/carafe/src/auth"
	"github.com/carafeforum/carafe/src/carafedata"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/logging"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/oops"
)

func Signup(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return RejectRequest(c, "You are already logged in.")
	}

	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	username := form.Get("username")
	email := form.Get("email")
	password := form.Get("password")

	user, err := carafedata.CreateUser(c, c.Conn, username, email, password)
	if err != nil {
		return dataErrorResponse(c, err, "create user")
	}

	var res ResponseData
	err = loginUser(c, user, &res)
	if err != nil {
		return ErrorResponse(http.StatusInternalServerError, err)
	}
	res.WriteJson(map[string]any{"user": userPayload(user)})
	return res
}

func Login(c *RequestContext) ResponseData {
	// TODO: Make this resilient to timing attacks.
	if c.CurrentUser != nil {
		return RejectRequest(c, "You are already logged in.")
	}

	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	username := form.Get("username")
	password := form.Get("password")
	if username == "" || password == "" {
		return RejectRequest(c, "You must provide both a username and password.")
	}

	loginFailure := func() ResponseData {
		return c.ErrorResponse(http.StatusUnauthorized, NewSafeError(nil, "incorrect username or password"))
	}

	user, err := carafedata.FetchUserByUsername(c, c.Conn, username)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return loginFailure()
		} else {
			return ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to look up user by username"))
		}
	}

	success, err := tryLogin(c, user, password)
	if err != nil {
		return ErrorResponse(http.StatusInternalServerError, err)
	}
	if !success {
		return loginFailure()
	}

	var res ResponseData
	err = loginUser(c, user, &res)
	if err != nil {
		return ErrorResponse(http.StatusInternalServerError, err)
	}
	res.WriteJson(map[string]any{"user": userPayload(user)})
	return res
}

func Logout(c *RequestContext) ResponseData {
	var res ResponseData
	logoutUser(c, &res)
	res.WriteJson(map[string]any{"loggedOut": true})
	return res
}

func tryLogin(c *RequestContext, user *models.User, password string) (bool, error) {
	hashed, err := auth.ParsePasswordString(user.Password)
	if err != nil {
		return false, oops.New(err, "failed to parse password string for user %s", user.Username)
	}

	return auth.CheckPassword(password, hashed)
}

func loginUser(c *RequestContext, user *models.User, responseData *ResponseData) error {
	err := carafedata.TouchLastLogin(c, c.Conn, user.ID)
	if err != nil {
		return oops.New(err, "failed to update last_login for user")
	}

	session, err := auth.CreateSession(c, c.Conn, user.Username)
	if err != nil {
		return oops.New(err, "failed to create session")
	}

	responseData.SetCookie(auth.NewSessionCookie(session))
	return nil
}

func logoutUser(c *RequestContext, res *ResponseData) {
	sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
	if err == nil {
		// clear the session from the db immediately, no expiration
		err := auth.DeleteSession(c, c.Conn, sessionCookie.Value)
		if err != nil {
			logging.Error().Err(err).Msg("failed to delete session on logout")
		}
	}

	res.SetCookie(auth.DeleteSessionCookie)
}

func userPayload(user *models.User) map[string]any {
	return map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
	}
}
