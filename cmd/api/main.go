package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rekap-suara-backend/config"
	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/logging"
	"rekap-suara-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Log.Fatalf("Konfigurasi tidak valid: %v", err)
	}
	logging.BootstrapLogger(cfg.LogLevel)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// run mengembalikan error agar defer (tutup DB) tetap jalan sebelum exit
	if err := run(cfg, quit); err != nil {
		logging.Log.Fatal(err)
	}
}

func run(cfg *config.Config, quit <-chan os.Signal) error {
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrasi gagal: %w", err)
	}

	store, err := config.NewStore(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage gagal disiapkan: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handler.ErrorHandler,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	// Middleware Global
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	// Foto C1 dan logo partai bisa dibuka via http://localhost:3000/uploads/...
	if cfg.Storage.Driver == "local" {
		app.Static(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	}

	routes.Setup(app, routes.Dependencies{DB: db, Config: cfg, Store: store})

	return serve(app, fmt.Sprintf(":%d", cfg.AppPort), quit)
}

// serve berhenti saat sinyal diterima (shutdown normal) atau saat Listen
// gagal, misalnya port sudah dipakai.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server siap di %s", addr)
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server berhenti: %w", err)
	case <-quit:
	}

	logging.Log.Info("Mematikan server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown gagal: %w", err)
	}
	return nil
}
