package handler

import (
	"errors"
	"strconv"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Respond menulis error sebagai {message, error} dengan status sesuai jenisnya.
func Respond(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	entry := logging.Log.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"status": status,
	})
	if status >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request gagal")
	} else {
		entry.WithError(err).Debug("Request ditolak")
	}

	return c.Status(status).JSON(fiber.Map{
		"message": apperror.Message(err),
		"error":   err.Error(),
	})
}

// ErrorHandler dipasang di fiber.Config untuk error yang lolos dari handler
// (route tidak ada, body terlalu besar, panic yang di-recover).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			logging.Log.WithError(err).WithField("path", c.Path()).Error("Request gagal")
		}
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message, "error": fe.Error()})
	}
	return Respond(c, err)
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Parameter " + name + " tidak valid")
	}
	return uint(id), nil
}

func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("Parameter " + name + " harus berupa angka")
	}
	return n, nil
}

// query membungkus c.Query untuk dipakai filter.Schema.Parse.
func query(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}
