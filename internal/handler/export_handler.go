package handler

import (
	"bytes"
	"fmt"
	"time"

	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	usecase *usecase.ExportUsecase
}

func NewExportHandler(u *usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{usecase: u}
}

// TPS: export data TPS, filter sama dengan daftar TPS.
func (h *ExportHandler) TPS(c *fiber.Ctx) error {
	set, err := filter.StationSearchSchema.Parse(query(c))
	if err != nil {
		return Respond(c, err)
	}

	var buf bytes.Buffer
	if err := h.usecase.TPS(&buf, set); err != nil {
		return Respond(c, err)
	}
	return sendXLSX(c, fmt.Sprintf("data-tps-%s.xlsx", time.Now().Format("20060102")), buf.Bytes())
}

// Rekap: suara per TPS per paslon, filter wilayah persis.
func (h *ExportHandler) Rekap(c *fiber.Ctx) error {
	region, err := filter.ParseRegion(query(c))
	if err != nil {
		return Respond(c, err)
	}

	var buf bytes.Buffer
	jenis := c.Params("jenis")
	if err := h.usecase.WriteRekap(&buf, jenis, region); err != nil {
		return Respond(c, err)
	}
	return sendXLSX(c, fmt.Sprintf("rekap-%s-%s.xlsx", jenis, time.Now().Format("20060102")), buf.Bytes())
}

func sendXLSX(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Attachment(filename)
	return c.Send(data)
}
