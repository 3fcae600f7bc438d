package di

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"lifetrail/internal/config"
	"lifetrail/internal/platform/storage"
)

// NewMediaStorage creates the media Storage selected by MEDIA_BACKEND.
func NewMediaStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.MediaBackend {
	case "minio":
		s, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{"endpoint": cfg.MinioEndpoint, "bucket": cfg.MinioBucket}).Info("media stored in minio")
		return s, nil
	case "local", "":
		s, err := storage.NewLocalStorage(cfg.MediaRoot)
		if err != nil {
			return nil, err
		}
		logrus.WithField("root", cfg.MediaRoot).Info("media stored on local disk")
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported MEDIA_BACKEND %q", cfg.MediaBackend)
	}
}
