package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"document-service/internal/config"
)

func TestLoad_Success(t *testing.T) {
	td := t.TempDir()

	envContent := `HTTP_PORT=8090
AUTH_API_URL=http://auth:3001
JWT_TOKEN=very_very_secret_key
TREE_CACHE_TTL_SECONDS=120

POSTGRES_HOST=localhost
POSTGRES_PORT=5433
POSTGRES_USER=documents
POSTGRES_PASSWORD=2529
POSTGRES_DB=documents

REDIS_HOST=localhost
REDIS_PORT=6380
REDIS_PASSWORD=
REDIS_DB=0

MINIO_ENDPOINT=minio:9000
MINIO_BUCKET_NAME=program-documents
MINIO_REGION=sa-east-1
MINIO_ACCESS_KEY=admin
MINIO_SECRET_KEY=secret
MINIO_USE_SSL=false
MINIO_PUBLIC_URL_BASE=https://program-documents.s3.sa-east-1.amazonaws.com
`
	if err := os.WriteFile(filepath.Join(td, ".env"), []byte(envContent), 0o644); err != nil {
		t.Fatal(err)
	}

	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(td); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, "8090", cfg.HTTPPort)
	assert.Equal(t, "http://auth:3001", cfg.AuthAPIURL)
	assert.Equal(t, "very_very_secret_key", cfg.JWTSecret)
	assert.Equal(t, 120, cfg.TreeCacheTTL)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, uint16(5433), cfg.Postgres.Port)
	assert.Equal(t, "documents", cfg.Postgres.Username)
	assert.Equal(t, "2529", cfg.Postgres.Password)
	assert.Equal(t, "documents", cfg.Postgres.Database)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.Db)

	assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
	assert.Equal(t, "program-documents", cfg.MinIO.BucketName)
	assert.Equal(t, "sa-east-1", cfg.MinIO.Region)
	assert.Equal(t, "https://program-documents.s3.sa-east-1.amazonaws.com", cfg.MinIO.PublicURLBase)
}

func TestLoad_NoFileFallsBackToEnv(t *testing.T) {
	td := t.TempDir()
	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(td); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "9999")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "9999", cfg.HTTPPort)
}
