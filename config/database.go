package config

import (
	"fmt"
	"rekap-suara-backend/internal/logging"
	"rekap-suara-backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
		dialector = mysql.Open(cfg.DBDSN)
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsLocal() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // duplicate key -> gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// SQLite hanya mengizinkan satu writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logging.Log.Infof("Koneksi database %s berhasil", cfg.DBDriver)
	return db, nil
}

// Migrate membuat tabel otomatis berdasarkan struct di package model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.TPS{},
		&model.Partai{},
		&model.Paslon{},
		&model.User{},
		&model.Suara{},
		&model.SuaraPaslon{},
	)
}

func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logging.Log.Errorf("gagal mengambil koneksi database: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logging.Log.Errorf("gagal menutup koneksi database: %v", err)
	}
}
