package config

import (
	"context"

	"rekap-suara-backend/internal/logging"
	"rekap-suara-backend/internal/storage"
)

// NewStore memilih penyimpanan file sesuai STORAGE_DRIVER.
func NewStore(ctx context.Context, cfg StorageConfig) (storage.Store, error) {
	if cfg.Driver == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.S3PublicURL,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		logging.Log.Infof("Storage S3 bucket %s", cfg.S3Bucket)
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	logging.Log.Infof("Storage lokal di %s", cfg.UploadDir)
	return store, nil
}
