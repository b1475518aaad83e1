package bootstrap

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	app "github.com/estateiq/lead-import/internal/application/lead"
	"github.com/estateiq/lead-import/internal/infrastructure/repository"
	httpecho "github.com/estateiq/lead-import/internal/interfaces/http/echo"
	"github.com/estateiq/lead-import/internal/registry"
)

type Config struct {
	BatchWriteTimeout  time.Duration
	ExportQueryTimeout time.Duration
}

func NewHTTPServer(db *gorm.DB, pool *pgxpool.Pool, jobs *registry.Registry, cfg Config) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))

	bulkRepo := repository.NewLeadBulkRepository(pool)
	queryRepo := repository.NewLeadQueryRepository(db)

	importer := app.NewImporter(jobs, bulkRepo, app.ImporterConfig{
		BatchWriteTimeout: cfg.BatchWriteTimeout,
	})
	exporter := app.NewExporter(jobs, queryRepo, cfg.ExportQueryTimeout)
	getLead := app.NewGetLeadByID(queryRepo)

	httpecho.RegisterRoutes(server,
		httpecho.NewImportHandler(importer),
		httpecho.NewExportHandler(exporter),
		httpecho.NewLeadHandler(getLead),
	)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
