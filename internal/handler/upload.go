package handler

import (
	"errors"
	"strings"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const maxImageSize = 5 << 20

// FormImage membaca file dari field multipart. Mengembalikan nil jika
// field tidak dikirim. Caller wajib memanggil close.
func FormImage(c *fiber.Ctx, field string) (*usecase.FileInput, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, noop, nil
	}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, apperror.Validation("Form tidak valid")
	}
	if fh.Size > maxImageSize {
		return nil, noop, apperror.Validation("Ukuran foto maksimal 5 MB")
	}
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, noop, apperror.Validation("File harus berupa gambar")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperror.Validation("Gagal membaca file upload")
	}
	return &usecase.FileInput{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Reader:      f,
	}, func() { f.Close() }, nil
}
