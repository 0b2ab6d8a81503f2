package routes

import (
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupSuaraRoutes(app *fiber.App, deps Dependencies) {
	tpsRepo := repository.NewTPSRepository(deps.DB)
	suaraRepo := repository.NewSuaraRepository(deps.DB)
	paslonRepo := repository.NewPaslonRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	reportRepo := repository.NewReportRepository(deps.DB)

	suaraUsecase := usecase.NewSuaraUsecase(
		repository.NewTransactor(deps.DB),
		tpsRepo, suaraRepo, paslonRepo, userRepo,
		deps.Store,
		deps.Config.StrictRekap,
	)
	hdl := handler.NewSuaraHandler(suaraUsecase, usecase.NewRekapUsecase(paslonRepo, reportRepo))

	api := app.Group("/api/suara/:jenis", auth(deps))
	api.Post("/", hdl.Submit)
	api.Get("/tps/:tpsId", hdl.GetByTPS)
	api.Get("/user/:userId", hdl.GetByUser)
	api.Get("/paslon", hdl.PerPaslon)
	api.Get("/paslon/:paslonId", hdl.Paslon)
}
