package middleware

import (
	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func Role(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Ambil role user dari context (diset di Auth middleware)
		actor := ActorFrom(c)
		for _, role := range allowedRoles {
			if role == actor.Role {
				return c.Next()
			}
		}
		return deny(c, apperror.Forbidden("Akses ditolak: role tidak diizinkan"))
	}
}
