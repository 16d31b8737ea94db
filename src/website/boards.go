package website

import (
	"net/http"

	"github.com/carafeforum/carafe/src/carafedata"
)

func BoardList(c *RequestContext) ResponseData {
	boards, err := carafedata.FetchBoards(c, c.Conn, carafedata.BoardsQuery{})
	if err != nil {
		return dataErrorResponse(c, err, "fetch boards")
	}

	boardPayloads := make([]map[string]any, 0, len(boards))
	for _, board := range boards {
		boardPayloads = append(boardPayloads, boardPayload(board))
	}

	var res ResponseData
	res.WriteJson(map[string]any{"boards": boardPayloads})
	return res
}

func BoardCreate(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	board, err := carafedata.CreateBoard(c, c.Conn, currentActor(c), form.Get("name"), form.Get("description"))
	if err != nil {
		return dataErrorResponse(c, err, "create board")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"board": boardPayload(board)})
	return res
}

func BoardEdit(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	updated, err := carafedata.EditBoard(c, c.Conn, currentActor(c), c.PathParamInt("boardid"), form.Get("name"), form.Get("description"))
	if err != nil {
		return dataErrorResponse(c, err, "edit board")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"updated": updated})
	return res
}

func BoardDelete(c *RequestContext) ResponseData {
	err := carafedata.SoftDeleteBoard(c, c.Conn, currentActor(c), c.PathParamInt("boardid"))
	if err != nil {
		return dataErrorResponse(c, err, "delete board")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"deleted": true})
	return res
}

func BoardRevive(c *RequestContext) ResponseData {
	err := carafedata.ReviveBoard(c, c.Conn, currentActor(c), c.PathParamInt("boardid"))
	if err != nil {
		return dataErrorResponse(c, err, "revive board")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"revived": true})
	return res
}

func BoardErase(c *RequestContext) ResponseData {
	err := carafedata.EraseBoard(c, c.Conn, currentActor(c), c.PathParamInt("boardid"))
	if err != nil {
		return dataErrorResponse(c, err, "erase board")
	}

	var res ResponseData
	res.WriteJson(map[string]any{"erased": true})
	return res
}
