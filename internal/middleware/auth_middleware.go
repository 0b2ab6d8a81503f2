package middleware

import (
	"errors"
	"strings"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const actorKey = "actor"

// UserFinder dipenuhi oleh repository.UserRepository.
type UserFinder interface {
	FindByID(id uint) (*model.User, error)
}

// Auth memvalidasi token Bearer lalu menyimpan user ke context. Jika users
// diisi, role diambil dari database sehingga user yang diturunkan role-nya
// atau dihapus langsung kehilangan akses walaupun token belum kadaluwarsa.
func Auth(secret string, users UserFinder) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return deny(c, apperror.Auth("Token tidak ditemukan"))
		}

		// Format header: "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// 2. Parse dan Validasi Token
		actor, err := usecase.ParseToken(key, tokenString)
		if err != nil {
			return deny(c, err)
		}

		// 3. Cocokkan dengan data user terbaru
		if users != nil {
			user, err := users.FindByID(actor.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return deny(c, apperror.Auth("User tidak ditemukan"))
				}
				return deny(c, apperror.Internal("Gagal memvalidasi user", err))
			}
			actor.Role = user.Role
		}

		// 4. Simpan data user ke Context agar bisa dipakai di Handler
		c.Locals(actorKey, actor)
		c.Locals("user_id", actor.UserID)
		c.Locals("role", string(actor.Role))

		return c.Next()
	}
}

// ActorFrom mengambil user yang diset oleh Auth.
func ActorFrom(c *fiber.Ctx) usecase.Actor {
	actor, _ := c.Locals(actorKey).(usecase.Actor)
	return actor
}

func deny(c *fiber.Ctx, err error) error {
	return c.Status(apperror.StatusCode(err)).JSON(fiber.Map{
		"message": apperror.Message(err),
		"error":   err.Error(),
	})
}
