package handler

import (
	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type TPSHandler struct {
	usecase *usecase.TPSUsecase
}

func NewTPSHandler(u *usecase.TPSUsecase) *TPSHandler {
	return &TPSHandler{usecase: u}
}

func (h *TPSHandler) Create(c *fiber.Ctx) error {
	var input usecase.CreateTPSInput
	if err := c.BodyParser(&input); err != nil {
		return Respond(c, apperror.Validation("Input tidak valid"))
	}

	tps, err := h.usecase.Create(input)
	if err != nil {
		return Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "TPS berhasil dibuat", "data": tps})
}

// Update hanya mengubah hitungan suara, wilayah TPS tidak bisa diubah.
func (h *TPSHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return Respond(c, err)
	}

	var input usecase.UpdateTPSInput
	if err := c.BodyParser(&input); err != nil {
		return Respond(c, apperror.Validation("Input tidak valid"))
	}

	tps, err := h.usecase.UpdateCounters(id, input)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "TPS berhasil diperbarui", "data": tps})
}

func (h *TPSHandler) GetAll(c *fiber.Ctx) error {
	set, err := filter.StationSearchSchema.Parse(query(c))
	if err != nil {
		return Respond(c, err)
	}
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return Respond(c, err)
	}
	limit, err := queryInt(c, "limit", usecase.DefaultLimit)
	if err != nil {
		return Respond(c, err)
	}

	result, err := h.usecase.List(middleware.ActorFrom(c), set, page, limit)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(result)
}

func (h *TPSHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return Respond(c, err)
	}

	tps, err := h.usecase.Get(middleware.ActorFrom(c), id)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": tps})
}

func (h *TPSHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return Respond(c, err)
	}

	tps, err := h.usecase.GetByWitness(middleware.ActorFrom(c), userID)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": tps})
}

// Distinct untuk dropdown bertingkat dapil -> kecamatan -> desa -> kodeTPS.
func (h *TPSHandler) Distinct(c *fiber.Ctx) error {
	region, err := filter.ParseRegion(query(c))
	if err != nil {
		return Respond(c, err)
	}

	values, err := h.usecase.Distinct(c.Params("field"), region)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": values})
}
