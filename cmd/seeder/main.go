package main

import (
	"rekap-suara-backend/config"
	"rekap-suara-backend/internal/database"
	"rekap-suara-backend/internal/logging"

	"github.com/spf13/viper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Log.Fatalf("Konfigurasi tidak valid: %v", err)
	}
	logging.BootstrapLogger(cfg.LogLevel)
	logging.Log.Info("Memulai database seeding...")

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logging.Log.Fatal(err)
	}
	defer config.CloseDB(db)

	if err := config.Migrate(db); err != nil {
		logging.Log.Fatalf("Migrasi gagal: %v", err)
	}

	// config.Load sudah memuat .env, viper cukup membaca env
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")
	v.SetDefault("SEED_SAKSI_PASSWORD", "saksi123")

	opts := database.SeedOptions{
		AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		SaksiPassword: v.GetString("SEED_SAKSI_PASSWORD"),
	}
	if err := database.SeedAll(db, opts); err != nil {
		logging.Log.Fatalf("Seeding gagal: %v", err)
	}
	logging.Log.Info("Seeding selesai")
}
