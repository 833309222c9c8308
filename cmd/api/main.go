package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
	"github.com/jhoicas/retail-analytics/internal/bootstrap"
	infrapdf "github.com/jhoicas/retail-analytics/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/retail-analytics/internal/interfaces/http"
	"github.com/jhoicas/retail-analytics/pkg/config"
	"github.com/jhoicas/retail-analytics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	source, closeSource, err := bootstrap.OpenSource(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir origen de datos")
	}
	defer closeSource()

	dashboardUC := analytics.NewDashboardUseCase(source, log.Component("dashboard"))
	// Una carga inicial fallida no detiene el servidor: responde 503 hasta un POST /reload exitoso.
	if _, err := dashboardUC.Load(ctx); err != nil {
		log.Error().Err(err).Msg("carga inicial del dataset")
	}

	// PDF: exportación del dashboard filtrado
	reportUC := analytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Analytics API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
