package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_USER", "jamaney")
	t.Setenv("DB_NAME", "jamaney_test")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, defaultSessionVerifyURL, cfg.SessionVerifyURL)
	assert.True(t, cfg.S3PublicRead)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.RedisConfigured())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET_NAME", "cards-media")
	t.Setenv("S3_PUBLIC_READ", "false")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "cards-media", cfg.S3Bucket)
	assert.False(t, cfg.S3PublicRead)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.RedisConfigured())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_USER", "jamaney")
	t.Setenv("DB_NAME", "jamaney_test")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigBadRedisDB(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestValidateConfigStorageDrivers(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret: "s", DBUser: "u", DBName: "d",
			StorageDriver: "local", UploadDir: "./uploads",
		}
	}

	assert.NoError(t, ValidateConfig(base()))

	cfg := base()
	cfg.StorageDriver = "s3"
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")

	cfg = base()
	cfg.StorageDriver = "ftp"
	err = ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}
