package routes

import (
	"rekap-suara-backend/config"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dependencies dibuat sekali di cmd/api lalu dibagikan ke semua route.
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Store  storage.Store
}

func Setup(app *fiber.App, deps Dependencies) {
	SetupUserRoutes(app, deps)
	SetupPaslonRoutes(app, deps)
	SetupTPSRoutes(app, deps)
	SetupSuaraRoutes(app, deps)
	SetupReportRoutes(app, deps)
	SetupExportRoutes(app, deps)
}

// auth memvalidasi token dan memuat ulang role user dari database.
func auth(deps Dependencies) fiber.Handler {
	return middleware.Auth(deps.Config.JWTSecret, repository.NewUserRepository(deps.DB))
}
