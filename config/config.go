package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultJWTTTL = 7 * 24 * time.Hour

type Config struct {
	AppPort     int
	AppEnv      string
	LogLevel    string
	BodyLimitMB int

	DBDriver string // mysql, postgres, sqlite
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	Storage StorageConfig

	// StrictRekap menolak suara yang jumlahnya tidak sama dengan suaraSah
	// atau yang tidak memuat semua paslon.
	StrictRekap bool
}

type StorageConfig struct {
	Driver    string // local, s3
	UploadDir string
	BaseURL   string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PublicURL string
	S3AccessKey string
	S3SecretKey string
}

// Load membaca .env (jika ada) lalu environment variables.
func Load() (*Config, error) {
	// .env opsional, di production biasanya env diset langsung
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 3000)
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BODY_LIMIT_MB", 10)
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_DSN", "root:@tcp(127.0.0.1:3306)/rekap_suara?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("JWT_TTL", DefaultJWTTTL.String())
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_BASE_URL", "/uploads")
	v.SetDefault("S3_REGION", "ap-southeast-1")
	v.SetDefault("STRICT_REKAP", false)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:     v.GetInt("APP_PORT"),
		AppEnv:      v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		BodyLimitMB: v.GetInt("BODY_LIMIT_MB"),
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:       v.GetString("DB_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		StrictRekap: v.GetBool("STRICT_REKAP"),
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			UploadDir:   v.GetString("UPLOAD_DIR"),
			BaseURL:     v.GetString("UPLOAD_BASE_URL"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3Region:    v.GetString("S3_REGION"),
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3PublicURL: v.GetString("S3_PUBLIC_URL"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY_ID"),
			S3SecretKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET wajib diisi")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL harus lebih dari 0")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return errors.New("DB_DRIVER tidak dikenal: " + c.DBDriver)
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("S3_BUCKET wajib diisi untuk STORAGE_DRIVER=s3")
		}
	default:
		return errors.New("STORAGE_DRIVER tidak dikenal: " + c.Storage.Driver)
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}
