package routes

import (
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, deps Dependencies) {
	paslonRepo := repository.NewPaslonRepository(deps.DB)
	reportRepo := repository.NewReportRepository(deps.DB)
	hdl := handler.NewReportHandler(usecase.NewRekapUsecase(paslonRepo, reportRepo))

	api := app.Group("/api/report", auth(deps))
	api.Get("/summary", hdl.Summary)
	api.Get("/:jenis/region", hdl.Region)
}
