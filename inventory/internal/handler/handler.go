package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	md "github.com/Astemirdum/inventory-service/pkg/middleware"
	"github.com/Astemirdum/inventory-service/pkg/validate"
	_ "github.com/Astemirdum/inventory-service/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	catalogSvc CatalogService
	lendingSvc LendingService
	log        *zap.Logger
}

func New(catalogSvc CatalogService, lendingSvc LendingService, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		lendingSvc: lendingSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost},
	}))

	e.Renderer = NewRenderer()
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	board := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	board.GET("/", h.ShowBoard)
	board.POST("/", h.SubmitBoard)

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	api.GET("/board", h.GetBoard)

	api.GET("/students", h.ListStudents)
	api.POST("/students", h.CreateStudent)

	api.GET("/items", h.ListItems)
	api.POST("/items", h.CreateItem)

	api.GET("/borrows", h.ListBorrows)
	api.POST("/borrows", h.CreateBorrow)
	api.POST("/borrows/:borrowId/return", h.ReturnBorrow)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetBoard godoc
// @Summary      Board
// @Description  students, items and borrows in one response
// @Tags         board
// @Produce      json
// @Success      200  {object}  model.Board
// @Failure      500  {object}  errs.ErrorResponse
// @Router       /board [get]
func (h *Handler) GetBoard(c echo.Context) error {
	board, err := h.loadBoard(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, board)
}

// ListStudents godoc
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200  {array}   model.Student
// @Failure      500  {object}  errs.ErrorResponse
// @Router       /students [get]
func (h *Handler) ListStudents(c echo.Context) error {
	students, err := h.catalogSvc.ListStudents(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, students)
}

// CreateStudent godoc
// @Summary      Add student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateStudentRequest  true  "student"
// @Success      201      {object}  model.Student
// @Failure      400      {object}  errs.ErrorResponse
// @Router       /students [post]
func (h *Handler) CreateStudent(c echo.Context) error {
	var req model.CreateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	student, err := h.catalogSvc.AddStudent(c.Request().Context(), req.Name, req.Type)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, student)
}

// ListItems godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Success      200  {array}   model.Item
// @Failure      500  {object}  errs.ErrorResponse
// @Router       /items [get]
func (h *Handler) ListItems(c echo.Context) error {
	items, err := h.catalogSvc.ListItems(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateItem godoc
// @Summary      Add item
// @Description  qty defaults to 1, negative qty is stored as 0
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateItemRequest  true  "item"
// @Success      201      {object}  model.Item
// @Failure      400      {object}  errs.ErrorResponse
// @Router       /items [post]
func (h *Handler) CreateItem(c echo.Context) error {
	var req model.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}
	item, err := h.catalogSvc.AddItem(c.Request().Context(), req.Title, qty)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// ListBorrows godoc
// @Summary      List borrows
// @Description  newest first
// @Tags         borrows
// @Produce      json
// @Success      200  {array}   model.BorrowView
// @Failure      500  {object}  errs.ErrorResponse
// @Router       /borrows [get]
func (h *Handler) ListBorrows(c echo.Context) error {
	borrows, err := h.lendingSvc.ListBorrows(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, borrows)
}

// CreateBorrow godoc
// @Summary      Borrow an item
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Param        request  body      model.BorrowRequest  true  "borrow"
// @Success      201      {object}  model.Borrow
// @Failure      400      {object}  errs.ErrorResponse
// @Failure      404      {object}  errs.ErrorResponse
// @Failure      409      {object}  errs.ErrorResponse
// @Router       /borrows [post]
func (h *Handler) CreateBorrow(c echo.Context) error {
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	borrow, err := h.lendingSvc.Borrow(c.Request().Context(), req.StudentID, req.ItemID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, borrow)
}

// ReturnBorrow godoc
// @Summary      Return a borrowed item
// @Tags         borrows
// @Produce      json
// @Param        borrowId  path      int  true  "borrow id"
// @Success      200       {object}  model.Borrow
// @Failure      400       {object}  errs.ErrorResponse
// @Failure      404       {object}  errs.ErrorResponse
// @Failure      409       {object}  errs.ErrorResponse
// @Router       /borrows/{borrowId}/return [post]
func (h *Handler) ReturnBorrow(c echo.Context) error {
	borrowID, err := strconv.ParseInt(c.Param("borrowId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "borrowId is invalid")
	}
	borrow, err := h.lendingSvc.ReturnItem(c.Request().Context(), borrowID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, borrow)
}

func (h *Handler) loadBoard(ctx context.Context) (model.Board, error) {
	var board model.Board
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		board.Students, err = h.catalogSvc.ListStudents(ctx)
		return err
	})
	g.Go(func() (err error) {
		board.Items, err = h.catalogSvc.ListItems(ctx)
		return err
	})
	g.Go(func() (err error) {
		board.Borrows, err = h.lendingSvc.ListBorrows(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Board{}, err
	}
	return board, nil
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOutOfStock), errors.Is(err, errs.ErrAlreadyReturned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) httpError(err error) *echo.HTTPError {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		h.log.Error("internal", zap.Error(err))
	}
	return echo.NewHTTPError(code, err.Error())
}
