package routes

import (
	deliveryHttp "rekap-suara-backend/internal/delivery/http"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, deps Dependencies) {
	userRepo := repository.NewUserRepository(deps.DB)
	tpsRepo := repository.NewTPSRepository(deps.DB)
	userUsecase := usecase.NewUserUsecase(userRepo, tpsRepo, deps.Store, deps.Config.JWTSecret, deps.Config.JWTTTL)
	hdl := deliveryHttp.NewUserHandler(userUsecase)

	authed := auth(deps)
	admin := middleware.Role(model.RoleAdmin)

	// Public
	app.Post("/api/login", hdl.Login)
	app.Get("/api/user/check", hdl.Check)

	app.Post("/api/register", authed, admin, hdl.Register)
	app.Get("/api/users", authed, admin, hdl.GetAll)
	app.Get("/api/user/:id", authed, hdl.GetByID)
	app.Patch("/api/user/:id", authed, admin, hdl.Update)
	app.Patch("/api/attendance/:userId", authed, hdl.Attendance)
}
