package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/estateiq/lead-import/internal/application/lead"
)

type LeadHandler struct {
	useCase app.GetLeadByID
}

func NewLeadHandler(useCase app.GetLeadByID) *LeadHandler {
	return &LeadHandler{useCase: useCase}
}

func (h *LeadHandler) GetLeadByID(c echo.Context) error {
	entity, err := h.useCase.Execute(c.Request().Context(), app.GetLeadByIDInput{
		TenantID: c.QueryParam("tenantId"),
		ID:       c.Param("id"),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingTenant):
			return badRequest(c, "missing_tenant", "tenantId query parameter is required")
		case errors.Is(err, app.ErrInvalidLeadID):
			return badRequest(c, "invalid_lead_id", "id must be a valid UUID")
		case errors.Is(err, app.ErrLeadNotFound):
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "lead not found",
			}})
		default:
			return internalError(c, "failed to get lead")
		}
	}

	return c.JSON(http.StatusOK, apiResponse{Data: entity})
}
