package website

import (
	"net/http"

	"github.com/carafeforum/carafe/src/carafedata"
)

func CommentCreate(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	comment, err := carafedata.CreateComment(c, c.Conn, currentActor(c), c.PathParamInt("postid"), form.Get("body"))
	if err != nil {
		return dataErrorResponse(c, err, "create comment")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"id": comment.ID})
	return res
}

func CommentEdit(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	updated, err := carafedata.EditComment(c, c.Conn, currentActor(c), c.PathParamInt("commentid"), form.Get("body"))
	if err != nil {
		return dataErrorResponse(c, err, "edit comment")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"updated": updated})
	return res
}

func CommentDelete(c *RequestContext) ResponseData {
	err := carafedata.SoftDeleteComment(c, c.Conn, currentActor(c), c.PathParamInt("commentid"))
	if err != nil {
		return dataErrorResponse(c, err, "delete comment")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"deleted": true})
	return res
}

func CommentRevive(c *RequestContext) ResponseData {
	err := carafedata.ReviveComment(c, c.Conn, currentActor(c), c.PathParamInt("commentid"))
	if err != nil {
		return dataErrorResponse(c, err, "revive comment")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"revived": true})
	return res
}
