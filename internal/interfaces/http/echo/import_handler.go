package echo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/estateiq/lead-import/internal/application/lead"
	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/parser"
)

type ImportService interface {
	Start(req app.ImportRequest) (domain.ImportJob, error)
	Get(importID string) (domain.ImportJob, bool)
}

type ImportHandler struct {
	imports ImportService
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(imports ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// SubmitImport accepts the multipart upload plus option form fields and
// returns the initial job record without waiting for the pipeline.
func (h *ImportHandler) SubmitImport(c echo.Context) error {
	fileName, data, err := readUpload(c)
	if err != nil {
		return badRequest(c, "invalid_file", err.Error())
	}

	opts, err := parseImportOptions(c)
	if err != nil {
		return badRequest(c, "invalid_options", err.Error())
	}

	job, err := h.imports.Start(app.ImportRequest{
		FileName: fileName,
		Data:     data,
		TenantID: c.FormValue("tenantId"),
		UserID:   c.FormValue("userId"),
		Options:  opts,
	})
	if err != nil {
		return mapImportError(c, err)
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: job})
}

// GetImportStatus returns the current job snapshot for polling.
func (h *ImportHandler) GetImportStatus(c echo.Context) error {
	job, ok := h.imports.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
			Code:    "not_found",
			Message: "import job not found",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: job})
}

// ValidateFile runs parse and validate without persisting, for preview.
func (h *ImportHandler) ValidateFile(c echo.Context) error {
	fileName, data, err := readUpload(c)
	if err != nil {
		return badRequest(c, "invalid_file", err.Error())
	}

	mapping, err := parseFieldMapping(c.FormValue("fieldMapping"))
	if err != nil {
		return badRequest(c, "invalid_options", err.Error())
	}

	result, err := app.ValidateFile(app.ValidateFileRequest{
		FileName:     fileName,
		Data:         data,
		FieldMapping: mapping,
	})
	if err != nil {
		return mapImportError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: result})
}

// DownloadTemplate serves the ready-made sample file.
func (h *ImportHandler) DownloadTemplate(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		data, err := parser.TemplateCSV()
		if err != nil {
			return internalError(c, "failed to build template")
		}
		return serveFile(c, "lead-import-template.csv", "text/csv", data)
	case "xlsx":
		data, err := parser.TemplateXLSX()
		if err != nil {
			return internalError(c, "failed to build template")
		}
		return serveFile(c, "lead-import-template.xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		return badRequest(c, "invalid_format", fmt.Sprintf("unsupported template format %q", format))
	}
}

func readUpload(c echo.Context) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("file form field is required")
	}

	src, err := header.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, app.MaxFileSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("read uploaded file: %w", err)
	}
	return header.Filename, data, nil
}

func parseImportOptions(c echo.Context) (domain.ImportOptions, error) {
	var opts domain.ImportOptions

	var err error
	if opts.UpdateExisting, err = formBool(c, "updateExisting", false); err != nil {
		return opts, err
	}
	if opts.SkipDuplicates, err = formBool(c, "skipDuplicates", true); err != nil {
		return opts, err
	}

	if raw := c.FormValue("batchSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return opts, fmt.Errorf("batchSize must be a positive integer, got %q", raw)
		}
		opts.BatchSize = size
	}

	opts.DefaultSource = c.FormValue("defaultSource")
	opts.DefaultStatus = c.FormValue("defaultStatus")
	opts.DefaultPriority = c.FormValue("defaultPriority")

	if raw := c.FormValue("defaultTags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				opts.DefaultTags = append(opts.DefaultTags, tag)
			}
		}
	}

	if opts.FieldMapping, err = parseFieldMapping(c.FormValue("fieldMapping")); err != nil {
		return opts, err
	}

	return opts, nil
}

func parseFieldMapping(raw string) ([]domain.FieldMapping, error) {
	if raw == "" {
		return nil, nil
	}
	var mapping []domain.FieldMapping
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, fmt.Errorf("fieldMapping must be a JSON array of {sourceColumn, targetField}: %v", err)
	}
	return mapping, nil
}

func formBool(c echo.Context, field string, fallback bool) (bool, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", field, raw)
	}
	return value, nil
}

func mapImportError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrMissingTenant):
		return badRequest(c, "missing_tenant", "tenantId form field is required")
	case errors.Is(err, app.ErrMissingUser):
		return badRequest(c, "missing_user", "userId form field is required")
	case errors.Is(err, app.ErrEmptyFile):
		return badRequest(c, "empty_file", "uploaded file is empty")
	case errors.Is(err, app.ErrFileTooLarge):
		return badRequest(c, "file_too_large", "uploaded file exceeds the 10MB limit")
	case errors.Is(err, app.ErrUnsupportedFileType):
		return badRequest(c, "unsupported_file_type", "file must be .csv or .xlsx")
	case errors.Is(err, parser.ErrNoDataRows), errors.Is(err, parser.ErrUnsupportedFormat):
		return badRequest(c, "invalid_file", err.Error())
	default:
		return internalError(c, "import request failed")
	}
}

func badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

func internalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: message,
	}})
}

func serveFile(c echo.Context, name, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Blob(http.StatusOK, contentType, data)
}
