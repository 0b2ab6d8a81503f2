package http

import (
	"strconv"
	"strings"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input usecase.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Respond(c, apperror.Validation("Input tidak valid"))
	}

	user, err := h.usecase.Register(input)
	if err != nil {
		return handler.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User berhasil terdaftar", "data": user})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return handler.Respond(c, apperror.Validation("Input tidak valid"))
	}

	token, user, err := h.usecase.Login(input.Username, input.Password)
	if err != nil {
		return handler.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login Berhasil!",
		"token":   token,
		"data":    user,
	})
}

// Check dipakai aplikasi untuk memastikan token yang tersimpan masih berlaku.
func (h *UserHandler) Check(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return handler.Respond(c, apperror.Auth("Token tidak ditemukan"))
	}

	user, err := h.usecase.Check(token)
	if err != nil {
		return handler.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Token valid", "data": user})
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		return handler.Respond(c, apperror.Validation("Parameter page harus berupa angka"))
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(usecase.DefaultLimit)))
	if err != nil {
		return handler.Respond(c, apperror.Validation("Parameter limit harus berupa angka"))
	}

	result, err := h.usecase.List(page, limit, c.Query("role"), c.Query("username"))
	if err != nil {
		return handler.Respond(c, err)
	}
	return c.JSON(result)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := userID(c, "id")
	if err != nil {
		return handler.Respond(c, err)
	}

	user, err := h.usecase.Get(middleware.ActorFrom(c), id)
	if err != nil {
		return handler.Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := userID(c, "id")
	if err != nil {
		return handler.Respond(c, err)
	}

	var input usecase.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Respond(c, apperror.Validation("Input tidak valid"))
	}

	user, err := h.usecase.Update(id, input)
	if err != nil {
		return handler.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "User berhasil diperbarui", "data": user})
}

// Attendance: multipart dengan field isAttending (default true) dan image opsional.
func (h *UserHandler) Attendance(c *fiber.Ctx) error {
	id, err := userID(c, "userId")
	if err != nil {
		return handler.Respond(c, err)
	}

	attending := true
	if raw := c.FormValue("isAttending"); raw != "" {
		attending, err = strconv.ParseBool(raw)
		if err != nil {
			return handler.Respond(c, apperror.Validation("isAttending harus true atau false"))
		}
	}

	image, closeImage, err := handler.FormImage(c, "image")
	if err != nil {
		return handler.Respond(c, err)
	}
	defer closeImage()

	user, err := h.usecase.Attendance(c.UserContext(), middleware.ActorFrom(c), id, attending, image)
	if err != nil {
		return handler.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Kehadiran berhasil dicatat", "data": user})
}

func userID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Parameter " + name + " tidak valid")
	}
	return uint(id), nil
}
