package billing

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/pkg/export"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/invoices", h.Create)
	api.GET("/invoices", h.ListByPatient)
	api.GET("/invoices/:id/export", h.Export)
}

// invoiceResponse decorates an invoice with its derived payable total.
type invoiceResponse struct {
	*Invoice
	Total float64 `json:"total"`
}

func (h *Handler) Create(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	caller := auth.IdentityFromContext(c.Request().Context())
	if _, err := h.svc.Create(c.Request().Context(), caller, &inv); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, invoiceResponse{Invoice: &inv, Total: inv.Total(true)})
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
	resp := []invoiceResponse{}
	for _, inv := range items {
		resp = append(resp, invoiceResponse{Invoice: inv, Total: inv.Total(true)})
	}
	return c.JSON(http.StatusOK, resp)
}

// Export streams a single fetched invoice as a Field,Value CSV table.
func (h *Handler) Export(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	if inv == nil {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice_%d.csv"`, inv.ID))
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteRecord(c.Response(), inv.ExportFields())
}
