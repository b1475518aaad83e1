package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, exportHandler *ExportHandler, leadHandler *LeadHandler) {
	server.POST("/api/v1/imports/leads", importHandler.SubmitImport)
	server.GET("/api/v1/imports/leads/template", importHandler.DownloadTemplate)
	server.POST("/api/v1/imports/leads/validate", importHandler.ValidateFile)
	server.GET("/api/v1/imports/leads/:id", importHandler.GetImportStatus)

	server.POST("/api/v1/exports/leads", exportHandler.StartExport)
	server.GET("/api/v1/exports/leads/:id", exportHandler.GetExportStatus)
	server.GET("/api/v1/exports/leads/:id/download", exportHandler.DownloadExport)

	server.GET("/api/v1/leads/:id", leadHandler.GetLeadByID)
}
