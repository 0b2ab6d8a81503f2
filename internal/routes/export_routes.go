package routes

import (
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupExportRoutes(app *fiber.App, deps Dependencies) {
	exportUsecase := usecase.NewExportUsecase(
		repository.NewTPSRepository(deps.DB),
		repository.NewSuaraRepository(deps.DB),
		repository.NewPaslonRepository(deps.DB),
	)
	hdl := handler.NewExportHandler(exportUsecase)

	api := app.Group("/api/export", auth(deps), middleware.Role(model.RoleAdmin))
	api.Get("/tps.xlsx", hdl.TPS)
	api.Get("/:jenis/tps-paslon.xlsx", hdl.Rekap)
}
