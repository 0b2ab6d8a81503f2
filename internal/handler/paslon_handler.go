package handler

import (
	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type PaslonHandler struct {
	usecase *usecase.PaslonUsecase
}

func NewPaslonHandler(u *usecase.PaslonUsecase) *PaslonHandler {
	return &PaslonHandler{usecase: u}
}

// CreatePartai menerima multipart (nama + file image) atau JSON (nama + URL image).
func (h *PaslonHandler) CreatePartai(c *fiber.Ctx) error {
	var input struct {
		Nama  string `json:"nama" form:"nama"`
		Image string `json:"image" form:"image"`
	}
	if err := c.BodyParser(&input); err != nil {
		return Respond(c, apperror.Validation("Input tidak valid"))
	}

	file, closeFile, err := FormImage(c, "image")
	if err != nil {
		return Respond(c, err)
	}
	defer closeFile()

	partai, err := h.usecase.CreatePartai(c.UserContext(), usecase.CreatePartaiInput{
		Nama:  input.Nama,
		Image: input.Image,
		File:  file,
	})
	if err != nil {
		return Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Partai berhasil dibuat", "data": partai})
}

func (h *PaslonHandler) GetAllPartai(c *fiber.Ctx) error {
	list, err := h.usecase.ListPartai()
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *PaslonHandler) Create(c *fiber.Ctx) error {
	var input usecase.CreatePaslonInput
	if err := c.BodyParser(&input); err != nil {
		return Respond(c, apperror.Validation("Input tidak valid"))
	}

	paslon, err := h.usecase.Create(c.Params("jenis"), input)
	if err != nil {
		return Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Paslon berhasil dibuat", "data": paslon})
}

func (h *PaslonHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.usecase.List(c.Params("jenis"))
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *PaslonHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return Respond(c, err)
	}

	paslon, err := h.usecase.Get(c.Params("jenis"), id)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": paslon})
}
