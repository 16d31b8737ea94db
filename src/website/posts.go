package website

import (
	"net/http"

	"github.com/carafeforum/carafe/src/carafedata"
	"github.com/carafeforum/carafe/src/config"
	"github.com/carafeforum/carafe/src/utils"
)

func PostList(c *RequestContext) ResponseData {
	boardID := c.PathParamInt("boardid")

	// The board must exist and be visible before we list anything.
	_, err := carafedata.FetchBoard(c, c.Conn, boardID, carafedata.BoardsQuery{})
	if err != nil {
		return dataErrorResponse(c, err, "fetch board")
	}

	posts, err := carafedata.FetchPosts(c, c.Conn, boardID, carafedata.PostsQuery{})
	if err != nil {
		return dataErrorResponse(c, err, "fetch posts")
	}

	start, end, refused := getWindowInfo(c.Req.URL.Query().Get("window"), config.ResourceLimit)
	start = utils.IntClamp(0, start, len(posts))
	end = utils.IntClamp(start, end, len(posts))
	posts = posts[start:end]

	postPayloads := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		postPayloads = append(postPayloads, postListPayload(post))
	}

	payload := map[string]any{"posts": postPayloads}
	if refused {
		payload["windowRefused"] = true
	}

	var res ResponseData
	res.WriteJson(payload)
	return res
}

func PostGet(c *RequestContext) ResponseData {
	// Soft-deleted posts stay addressable by id; a direct lookup gets an
	// explicit notice rather than pretending the post never existed.
	post, err := carafedata.FetchPost(c, c.Conn, c.PathParamInt("boardid"), c.PathParamInt("postid"), carafedata.PostsQuery{IncludeDeleted: true})
	if err != nil {
		return dataErrorResponse(c, err, "fetch post")
	}
	if post.Post.Deleted {
		return postGoneResponse()
	}

	comments, err := carafedata.FetchComments(c, c.Conn, post.Post.ID)
	if err != nil {
		return dataErrorResponse(c, err, "fetch comments")
	}

	commentPayloads := make([]map[string]any, 0, len(comments))
	for _, comment := range comments {
		commentPayloads = append(commentPayloads, commentPayload(comment))
	}

	var res ResponseData
	res.WriteJson(map[string]any{
		"post":     postPayload(post),
		"comments": commentPayloads,
	})
	return res
}

func postGoneResponse() ResponseData {
	res := ResponseData{
		StatusCode: http.StatusGone,
	}
	res.WriteJson(map[string]any{
		"deleted": true,
		"error":   "This post has been deleted.",
	})
	return res
}

func PostCreate(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	post, err := carafedata.CreatePost(c, c.Conn, currentActor(c), c.PathParamInt("boardid"), form.Get("title"), form.Get("body"))
	if err != nil {
		return dataErrorResponse(c, err, "create post")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"id": post.ID})
	return res
}

func PostEdit(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	updated, err := carafedata.EditPost(c, c.Conn, currentActor(c), c.PathParamInt("postid"), form.Get("title"), form.Get("body"))
	if err != nil {
		return dataErrorResponse(c, err, "edit post")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"updated": updated})
	return res
}

func PostDelete(c *RequestContext) ResponseData {
	err := carafedata.SoftDeletePost(c, c.Conn, currentActor(c), c.PathParamInt("postid"))
	if err != nil {
		return dataErrorResponse(c, err, "delete post")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"deleted": true})
	return res
}
