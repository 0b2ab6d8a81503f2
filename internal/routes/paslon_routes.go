package routes

import (
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupPaslonRoutes(app *fiber.App, deps Dependencies) {
	paslonRepo := repository.NewPaslonRepository(deps.DB)
	partaiRepo := repository.NewPartaiRepository(deps.DB)
	hdl := handler.NewPaslonHandler(usecase.NewPaslonUsecase(paslonRepo, partaiRepo, deps.Store))

	authed := auth(deps)
	admin := middleware.Role(model.RoleAdmin)

	app.Post("/api/partai", authed, admin, hdl.CreatePartai)
	app.Get("/api/partai", authed, hdl.GetAllPartai)

	paslon := app.Group("/api/paslon/:jenis", authed)
	paslon.Post("/", admin, hdl.Create)
	paslon.Get("/", hdl.GetAll)
	paslon.Get("/:id", hdl.GetByID)
}
