package lead

import "errors"

var (
	ErrMissingTenant       = errors.New("tenantId is required")
	ErrMissingUser         = errors.New("userId is required")
	ErrEmptyFile           = errors.New("uploaded file is empty")
	ErrFileTooLarge        = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrExportNotReady      = errors.New("export is not finished")
)
