// Package testutil berisi helper untuk test yang butuh database.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"rekap-suara-backend/config"
	"rekap-suara-backend/internal/model"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestJWTSecret = "rahasia-test"

// SetupTestDB membuat database SQLite baru di folder sementara milik test
// lengkap dengan skema hasil migrasi.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

// TestConfig adalah konfigurasi minimal untuk test handler/usecase.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:      "test",
		LogLevel:    "error",
		BodyLimitMB: 10,
		DBDriver:    "sqlite",
		JWTSecret:   TestJWTSecret,
		JWTTTL:      config.DefaultJWTTTL,
		Storage: config.StorageConfig{
			Driver:    "local",
			UploadDir: t.TempDir(),
			BaseURL:   "/uploads",
		},
	}
}

func CreateTPS(t *testing.T, db *gorm.DB, dapil, kecamatan, desa string, kode int) *model.TPS {
	t.Helper()
	tps := &model.TPS{Dapil: dapil, Kecamatan: kecamatan, Desa: desa, KodeTPS: kode}
	if err := db.Create(tps).Error; err != nil {
		t.Fatalf("Failed to create tps: %v", err)
	}
	return tps
}

func CreatePaslon(t *testing.T, db *gorm.DB, jenis model.JenisPemilihan, noUrut int, panggilan string, partai ...model.Partai) *model.Paslon {
	t.Helper()
	p := &model.Paslon{
		JenisPemilihan: jenis,
		Ketua:          "Ketua " + panggilan,
		WakilKetua:     "Wakil " + panggilan,
		Panggilan:      panggilan,
		NoUrut:         noUrut,
		Partai:         partai,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to create paslon: %v", err)
	}
	return p
}

func CreatePartai(t *testing.T, db *gorm.DB, nama string) model.Partai {
	t.Helper()
	p := model.Partai{Nama: nama}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create partai: %v", err)
	}
	return p
}

// CreateUser membuat user dengan password "password".
func CreateUser(t *testing.T, db *gorm.DB, username string, role model.Role, tpsID *uint) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	u := &model.User{
		Name:     fmt.Sprintf("User %s", username),
		Username: username,
		Password: string(hash),
		Role:     role,
		TPSID:    tpsID,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}

// CreateSuara menyimpan rekap langsung tanpa lewat usecase.
func CreateSuara(t *testing.T, db *gorm.DB, tpsID, userID uint, jenis model.JenisPemilihan, votes map[uint]int) *model.Suara {
	t.Helper()
	s := &model.Suara{TPSID: tpsID, JenisPemilihan: jenis, UserID: userID}
	for paslonID, n := range votes {
		s.SuaraPaslon = append(s.SuaraPaslon, model.SuaraPaslon{PaslonID: paslonID, SuaraSah: n})
	}
	s.TotalSuaraSah = model.HitungTotal(s.SuaraPaslon)
	if err := db.Omit("TPS", "User", "SuaraPaslon.Paslon").Create(s).Error; err != nil {
		t.Fatalf("Failed to create suara: %v", err)
	}
	return s
}

func UintPtr(v uint) *uint { return &v }

func IntPtr(v int) *int { return &v }
