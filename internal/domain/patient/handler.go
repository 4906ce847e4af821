package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.Create)
	api.PUT("/patients/:id", h.Update)
	api.GET("/patients/:id", h.Get)
	api.GET("/patients", h.List)
	api.GET("/patients/search", h.Search)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	caller := auth.IdentityFromContext(c.Request().Context())
	if _, err := h.svc.Create(c.Request().Context(), caller, &p); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	caller := auth.IdentityFromContext(c.Request().Context())
	if err := h.svc.Update(c.Request().Context(), caller, &p); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c echo.Context) error {
	pattern := c.QueryParam("pattern")
	if pattern == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pattern is required")
	}
	field := c.QueryParam("field")
	matches, err := h.svc.Search(c.Request().Context(), pattern, field)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, matches)
}
