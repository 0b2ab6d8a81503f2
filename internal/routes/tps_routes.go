package routes

import (
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupTPSRoutes(app *fiber.App, deps Dependencies) {
	tpsRepo := repository.NewTPSRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	hdl := handler.NewTPSHandler(usecase.NewTPSUsecase(repository.NewTransactor(deps.DB), tpsRepo, userRepo))

	api := app.Group("/api/tps", auth(deps))
	admin := middleware.Role(model.RoleAdmin)

	api.Get("/distinct/:field", hdl.Distinct)
	api.Get("/user/:userId", hdl.GetByUser)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)
	api.Post("/", admin, hdl.Create)
	api.Patch("/:id", admin, hdl.Update)
}
