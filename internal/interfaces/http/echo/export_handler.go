package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/estateiq/lead-import/internal/application/lead"
	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

type ExportService interface {
	Start(req app.ExportRequest) (domain.ExportJob, error)
	Get(exportID string) (domain.ExportJob, bool)
	Download(exportID string) (*domain.ExportJob, error)
}

type ExportHandler struct {
	exports ExportService
}

func NewExportHandler(exports ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type startExportRequest struct {
	TenantID string `json:"tenantId"`
	Format   string `json:"format"`
	Status   string `json:"status"`
	Source   string `json:"source"`
	Tag      string `json:"tag"`
}

func (h *ExportHandler) StartExport(c echo.Context) error {
	var req startExportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	job, err := h.exports.Start(app.ExportRequest{
		TenantID: req.TenantID,
		Format:   domain.ExportFormat(req.Format),
		Filter: domain.ExportFilter{
			Status: req.Status,
			Source: req.Source,
			Tag:    req.Tag,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingTenant):
			return badRequest(c, "missing_tenant", "tenantId is required")
		case errors.Is(err, app.ErrInvalidExportFormat):
			return badRequest(c, "invalid_format", "format must be csv, xlsx, or json")
		default:
			return internalError(c, "failed to start export")
		}
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: job})
}

func (h *ExportHandler) GetExportStatus(c echo.Context) error {
	job, ok := h.exports.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
			Code:    "not_found",
			Message: "export job not found",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: job})
}

func (h *ExportHandler) DownloadExport(c echo.Context) error {
	job, err := h.exports.Download(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "export job not found",
			}})
		case errors.Is(err, app.ErrExportNotReady):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "not_ready",
				Message: "export has not completed",
			}})
		default:
			return internalError(c, "failed to download export")
		}
	}

	return serveFile(c, job.FileName, exportContentType(job.Format), job.Data)
}

func exportContentType(format domain.ExportFormat) string {
	switch format {
	case domain.ExportFormatCSV:
		return "text/csv"
	case domain.ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
