package handler

import (
	"strconv"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	rekap *usecase.RekapUsecase
}

func NewReportHandler(rekap *usecase.RekapUsecase) *ReportHandler {
	return &ReportHandler{rekap: rekap}
}

// Summary menyediakan data capaian input suara untuk dashboard.
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	region, err := filter.ParseRegion(query(c))
	if err != nil {
		return Respond(c, err)
	}

	summary, err := h.rekap.Ringkasan(region, c.Query("jenis"))
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": summary})
}

// Region menyediakan drill-down satu tingkat di bawah filter wilayah.
func (h *ReportHandler) Region(c *fiber.Ctx) error {
	region, err := filter.ParseRegion(query(c))
	if err != nil {
		return Respond(c, err)
	}

	var paslonID *uint
	if raw := c.Query("paslonId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Respond(c, apperror.Validation("Parameter paslonId harus berupa angka"))
		}
		v := uint(id)
		paslonID = &v
	}

	laporan, err := h.rekap.LaporanDaerah(c.Params("jenis"), region, paslonID)
	if err != nil {
		return Respond(c, err)
	}
	if laporan == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": laporan})
}
