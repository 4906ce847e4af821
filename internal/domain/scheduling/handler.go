package scheduling

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
	api.POST("/appointments", h.Create)
	api.GET("/appointments", h.ListByPatient)
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	caller := auth.IdentityFromContext(c.Request().Context())
	if _, err := h.svc.Create(c.Request().Context(), caller, &a); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.QueryParam("patient_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
