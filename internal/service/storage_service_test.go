package service

import (
	"testing"

	"tamanedu_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewStorageServiceLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	svc := NewStorageService(cfg)
	assert.IsType(t, &LocalStorageProvider{}, svc.Provider)
}

func TestNewStorageServiceFallsBackWhenMinioInitFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "minio"
	cfg.Storage.MinioEndpoint = "not a valid endpoint"
	cfg.Storage.LocalPath = t.TempDir()

	svc := NewStorageService(cfg)
	assert.IsType(t, &LocalStorageProvider{}, svc.Provider)
}
