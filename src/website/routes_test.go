package website

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/carafeforum/carafe/src/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogContextErrors(t *testing.T) {
	err1 := errors.New("test error 1")
	err2 := errors.New("test error 2")

	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Print("sanity check")

	assert.Contains(t, buf.String(), "sanity check")

	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			func(h Handler) Handler {
				return func(c *RequestContext) (res ResponseData) {
					c.Logger = &logger
					return logContextErrorsMiddleware(h)(c)
				}
			},
		},
	}

	routes.GET(regexp.MustCompile("^/test$"), func(c *RequestContext) ResponseData {
		return c.ErrorResponse(http.StatusInternalServerError, err1, err2)
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/test")
	if assert.Nil(t, err) {
		defer res.Body.Close()

		t.Logf("Log contents: %s", buf.String())

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

		assert.Contains(t, buf.String(), err1.Error())
		assert.Contains(t, buf.String(), err2.Error())
	}
}

func TestRouterPathParams(t *testing.T) {
	router := &Router{}
	routes := RouteBuilder{Router: router}

	routes.GET(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/post/(?P<postid>\d+)$`), func(c *RequestContext) ResponseData {
		assert.Equal(t, 3, c.PathParamInt("boardid"))
		assert.Equal(t, 12, c.PathParamInt("postid"))

		var res ResponseData
		res.WriteJson(map[string]any{"ok": true})
		return res
	})
	routes.AnyMethod(regexp.MustCompile(`^/.*$`), FourOhFour)

	srv := httptest.NewServer(router)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/board/3/post/12")
	if assert.Nil(t, err) {
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	}

	res, err = http.Get(srv.URL + "/api/board/pizza/post/12")
	if assert.Nil(t, err) {
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	}
}

func TestNeedsAuth(t *testing.T) {
	router := &Router{}
	routes := RouteBuilder{Router: router}

	authed := routes.WithMiddleware(needsAuth)
	authed.POST(regexp.MustCompile(`^/secret$`), func(c *RequestContext) ResponseData {
		t.Fatal("handler should not run for anonymous requests")
		return ResponseData{}
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	res, err := http.Post(srv.URL+"/secret", "application/x-www-form-urlencoded", nil)
	if assert.Nil(t, err) {
		defer res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

		body, _ := io.ReadAll(res.Body)
		assert.Contains(t, string(body), "logged in")
	}
}

func TestCSRFRejectsBadRequests(t *testing.T) {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			func(h Handler) Handler {
				return func(c *RequestContext) ResponseData {
					c.CurrentUser = &models.User{Username: "someone"}
					c.CurrentSession = &models.Session{CSRFToken: "goodtoken"}
					return h(c)
				}
			},
			csrfMiddleware,
		},
	}

	routes.POST(regexp.MustCompile(`^/mutate$`), func(c *RequestContext) ResponseData {
		t.Fatal("handler should not run without a valid CSRF token")
		return ResponseData{}
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	// A body that fails form parsing is a 400, not a token mismatch.
	res, err := http.Post(srv.URL+"/mutate", "application/x-www-form-urlencoded", strings.NewReader("%zz"))
	if assert.Nil(t, err) {
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	}

	// A parseable body with the wrong token is forbidden.
	res, err = http.Post(srv.URL+"/mutate", "application/x-www-form-urlencoded", strings.NewReader("csrf_token=badtoken"))
	if assert.Nil(t, err) {
		defer res.Body.Close()
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	}
}

func TestAdminsOnlyHidesRoutes(t *testing.T) {
	router := &Router{}
	routes := RouteBuilder{Router: router}

	admin := routes.WithMiddleware(adminsOnly)
	admin.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/erase$`), func(c *RequestContext) ResponseData {
		t.Fatal("handler should not run for anonymous requests")
		return ResponseData{}
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	// Anonymous users get the same 404 as a route that doesn't exist.
	res, err := http.Post(srv.URL+"/api/board/1/erase", "application/x-www-form-urlencoded", nil)
	if assert.Nil(t, err) {
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	}
}
