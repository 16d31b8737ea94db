package website

import (
	"github.com/carafeforum/carafe/src/carafedata"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/parsing"
	"github.com/carafeforum/carafe/src/perms"
)

func currentActor(c *RequestContext) perms.Actor {
	if c.CurrentUser == nil {
		return perms.Anonymous()
	}
	return perms.Authenticated(c.CurrentUser.ID, c.CurrentUser.IsAdmin)
}

func boardPayload(board *models.Board) map[string]any {
	return map[string]any{
		"id":          board.ID,
		"name":        board.Name,
		"description": board.Description,
	}
}

func postListPayload(p *carafedata.PostAndStuff) map[string]any {
	return map[string]any{
		"id":     p.Post.ID,
		"author": p.Author.Username,
		"title":  p.Post.Title,
		"body":   p.Post.Body,
	}
}

func postPayload(p *carafedata.PostAndStuff) map[string]any {
	return map[string]any{
		"id":         p.Post.ID,
		"boardId":    p.Post.BoardID,
		"author":     p.Author.Username,
		"title":      p.Post.Title,
		"body":       p.Post.Body,
		"bodyHtml":   parsing.ParseMarkdown(p.Post.Body, parsing.RealMarkdown),
		"date":       p.Post.Date,
		"dateEdited": p.Post.DateEdited,
	}
}

func commentPayload(cm *carafedata.CommentAndStuff) map[string]any {
	return map[string]any{
		"id":         cm.Comment.ID,
		"author":     cm.Author.Username,
		"body":       cm.Comment.Body,
		"bodyHtml":   parsing.ParseMarkdown(cm.Comment.Body, parsing.RealMarkdown),
		"date":       cm.Comment.Date,
		"dateEdited": cm.Comment.DateEdited,
	}
}
