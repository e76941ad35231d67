package handler

import (
	"net/http"
	"net/url"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const boardTemplate = "index.html"

type boardPage struct {
	model.Board
	Msg string
	Err string
}

func (h *Handler) ShowBoard(c echo.Context) error {
	board, err := h.loadBoard(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, boardTemplate, boardPage{
		Board: board,
		Msg:   c.QueryParam("msg"),
		Err:   c.QueryParam("err"),
	})
}

// SubmitBoard runs one form action and redirects back to the board with the
// outcome as a flash message.
func (h *Handler) SubmitBoard(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cmd, err := model.ParseForm(form)
	if err != nil {
		if errors.Is(err, errs.ErrUnknownAction) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return redirectBoard(c, "err", err.Error())
	}

	d := NewDispatcher(h.catalogSvc, h.lendingSvc)
	if err := cmd.Execute(c.Request().Context(), d); err != nil {
		if statusCode(err) == http.StatusInternalServerError {
			h.log.Error("board action", zap.String("action", string(cmd.Action())), zap.Error(err))
			return redirectBoard(c, "err", "internal error")
		}
		return redirectBoard(c, "err", err.Error())
	}
	return redirectBoard(c, "msg", d.Note())
}

func redirectBoard(c echo.Context, key, text string) error {
	return c.Redirect(http.StatusSeeOther, "/?"+url.Values{key: {text}}.Encode())
}
