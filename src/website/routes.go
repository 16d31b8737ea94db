package website

import (
	"net/http"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewWebsiteRoutes(conn *pgxpool.Pool) http.Handler {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			setDBConn(conn),
			trackRequestMiddleware,
			panicCatcherMiddleware,
			logContextErrorsMiddleware,
			loadCommonData,
		},
	}

	// Mutating routes get the CSRF check; moderation routes 404 for
	// non-admins so hidden content stays hidden.
	authed := routes.WithMiddleware(needsAuth, csrfMiddleware)
	admin := routes.WithMiddleware(adminsOnly, csrfMiddleware)

	routes.POST(regexp.MustCompile(`^/api/signup$`), Signup)
	routes.POST(regexp.MustCompile(`^/api/login$`), Login)
	authed.POST(regexp.MustCompile(`^/api/logout$`), Logout)

	routes.GET(regexp.MustCompile(`^/api/boards$`), BoardList)
	routes.GET(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/posts$`), PostList)
	routes.GET(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/post/(?P<postid>\d+)$`), PostGet)

	admin.POST(regexp.MustCompile(`^/api/boards$`), BoardCreate)
	admin.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)$`), BoardEdit)
	admin.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/delete$`), BoardDelete)
	admin.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/revive$`), BoardRevive)
	admin.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/erase$`), BoardErase)

	authed.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/posts$`), PostCreate)
	authed.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/post/(?P<postid>\d+)$`), PostEdit)
	authed.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/post/(?P<postid>\d+)/delete$`), PostDelete)

	authed.POST(regexp.MustCompile(`^/api/board/(?P<boardid>\d+)/post/(?P<postid>\d+)/comments$`), CommentCreate)
	authed.POST(regexp.MustCompile(`^/api/comment/(?P<commentid>\d+)$`), CommentEdit)
	authed.POST(regexp.MustCompile(`^/api/comment/(?P<commentid>\d+)/delete$`), CommentDelete)
	admin.POST(regexp.MustCompile(`^/api/comment/(?P<commentid>\d+)/revive$`), CommentRevive)

	routes.AnyMethod(regexp.MustCompile(`^/.*$`), FourOhFour)

	return router
}

func setDBConn(conn *pgxpool.Pool) Middleware {
	return func(h Handler) Handler {
		return func(c *RequestContext) ResponseData {
			c.Conn = conn
			return h(c)
		}
	}
}
