package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/middleware"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type SuaraHandler struct {
	suara *usecase.SuaraUsecase
	rekap *usecase.RekapUsecase
}

func NewSuaraHandler(suara *usecase.SuaraUsecase, rekap *usecase.RekapUsecase) *SuaraHandler {
	return &SuaraHandler{suara: suara, rekap: rekap}
}

// voteBody menerima nama field baru (paslonId, suaraSah) maupun nama lama
// dari aplikasi saksi (paslon, jumlahSuaraSah).
type voteBody struct {
	PaslonID       uint `json:"paslonId"`
	Paslon         uint `json:"paslon"`
	SuaraSah       *int `json:"suaraSah"`
	JumlahSuaraSah *int `json:"jumlahSuaraSah"`
}

func (v voteBody) toModel() model.SuaraPaslon {
	sp := model.SuaraPaslon{PaslonID: v.PaslonID}
	if sp.PaslonID == 0 {
		sp.PaslonID = v.Paslon
	}
	if v.SuaraSah != nil {
		sp.SuaraSah = *v.SuaraSah
	} else if v.JumlahSuaraSah != nil {
		sp.SuaraSah = *v.JumlahSuaraSah
	}
	return sp
}

type submitBody struct {
	TPS                uint       `json:"tps"`
	SuaraPaslon        []voteBody `json:"suaraPaslon"`
	SuaraSah           *int       `json:"suaraSah"`
	SuaraTidakSah      *int       `json:"suaraTidakSah"`
	SuaraTidakTerpakai *int       `json:"suaraTidakTerpakai"`
	KertasSuara        *int       `json:"kertasSuara"`
}

// Submit menerima JSON atau multipart (dengan field image untuk foto C1).
// Status 201 jika rekap baru dibuat, 200 jika rekap lama diperbarui.
func (h *SuaraHandler) Submit(c *fiber.Ctx) error {
	body, err := parseSubmitBody(c)
	if err != nil {
		return Respond(c, err)
	}
	if body.TPS == 0 {
		return Respond(c, apperror.Validation("TPS wajib diisi"))
	}

	image, closeImage, err := FormImage(c, "image")
	if err != nil {
		return Respond(c, err)
	}
	defer closeImage()

	in := usecase.SubmitInput{
		Actor:              middleware.ActorFrom(c),
		Jenis:              c.Params("jenis"),
		TPSID:              body.TPS,
		SuaraSah:           body.SuaraSah,
		SuaraTidakSah:      body.SuaraTidakSah,
		SuaraTidakTerpakai: body.SuaraTidakTerpakai,
		KertasSuara:        body.KertasSuara,
		Image:              image,
	}
	for _, v := range body.SuaraPaslon {
		in.SuaraPaslon = append(in.SuaraPaslon, v.toModel())
	}

	result, err := h.suara.Submit(c.UserContext(), in)
	if err != nil {
		return Respond(c, err)
	}

	if result.Created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rekap suara berhasil disimpan", "data": result.Suara})
	}
	return c.JSON(fiber.Map{"message": "Rekap suara berhasil diperbarui", "data": result.Suara})
}

func parseSubmitBody(c *fiber.Ctx) (submitBody, error) {
	var body submitBody
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&body); err != nil {
			return body, apperror.Validation("Input tidak valid")
		}
		return body, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return body, apperror.Validation("Form tidak valid")
	}

	if raw := first(form.Value["tps"]); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return body, apperror.Validation("TPS harus berupa angka")
		}
		body.TPS = uint(id)
	}

	// suaraPaslon boleh satu field berisi array JSON, atau field berulang
	// yang masing-masing berisi satu objek JSON.
	for _, raw := range form.Value["suaraPaslon"] {
		raw = strings.TrimSpace(raw)
		if strings.HasPrefix(raw, "[") {
			var list []voteBody
			if err := json.Unmarshal([]byte(raw), &list); err != nil {
				return body, apperror.Validation("Format suaraPaslon tidak valid")
			}
			body.SuaraPaslon = append(body.SuaraPaslon, list...)
			continue
		}
		var v voteBody
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return body, apperror.Validation("Format suaraPaslon tidak valid")
		}
		body.SuaraPaslon = append(body.SuaraPaslon, v)
	}

	counters := []struct {
		field string
		dest  **int
	}{
		{"suaraSah", &body.SuaraSah},
		{"suaraTidakSah", &body.SuaraTidakSah},
		{"suaraTidakTerpakai", &body.SuaraTidakTerpakai},
		{"kertasSuara", &body.KertasSuara},
	}
	for _, ct := range counters {
		raw := first(form.Value[ct.field])
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return body, apperror.Validation("Field " + ct.field + " harus berupa angka")
		}
		*ct.dest = &n
	}
	return body, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func (h *SuaraHandler) GetByTPS(c *fiber.Ctx) error {
	tpsID, err := paramID(c, "tpsId")
	if err != nil {
		return Respond(c, err)
	}

	suara, err := h.suara.GetByTPS(middleware.ActorFrom(c), c.Params("jenis"), tpsID)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": suara})
}

func (h *SuaraHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return Respond(c, err)
	}

	suara, err := h.suara.GetByUser(middleware.ActorFrom(c), c.Params("jenis"), userID)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": suara})
}

// PerPaslon: total suara semua paslon, bisa difilter dapil/kecamatan/desa/kodeTPS.
func (h *SuaraHandler) PerPaslon(c *fiber.Ctx) error {
	region, err := filter.ParseRegion(query(c))
	if err != nil {
		return Respond(c, err)
	}

	rows, err := h.rekap.PerPaslon(c.Params("jenis"), region)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *SuaraHandler) Paslon(c *fiber.Ctx) error {
	paslonID, err := paramID(c, "paslonId")
	if err != nil {
		return Respond(c, err)
	}
	region, err := filter.ParseRegion(query(c))
	if err != nil {
		return Respond(c, err)
	}

	row, err := h.rekap.Paslon(c.Params("jenis"), paslonID, region)
	if err != nil {
		return Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": row})
}
