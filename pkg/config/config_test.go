package config_test

import (
	"testing"
	"time"

	"github.com/kycflow/kycflow-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("kyc-service")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 80, cfg.Verification.MatchThreshold)
	assert.Equal(t, int64(20<<20), cfg.Verification.MaxUploadBytes)
	assert.Equal(t, "kycflow", cfg.Storage.Bucket)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KYC_SERVER_PORT", "9999")
	t.Setenv("KYC_VERIFICATION_MATCH_THRESHOLD", "90")

	cfg, err := config.Load("kyc-service")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 90, cfg.Verification.MatchThreshold)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "kyc",
		Password: "secret",
		Database: "kyc_users",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=kyc password=secret dbname=kyc_users sslmode=require",
		cfg.DSN(),
	)
}

func TestLoadWithValidation_RejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("KYC_SERVER_ENVIRONMENT", "production")
	t.Setenv("KYC_DATABASE_HOST", "db.internal")

	_, err := config.LoadWithValidation("kyc-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KYC_JWT_SECRET")
}

func TestLoadWithValidation_RejectsLocalhostDBInProduction(t *testing.T) {
	t.Setenv("KYC_SERVER_ENVIRONMENT", "production")
	t.Setenv("KYC_JWT_SECRET", "a-real-secret-value")

	_, err := config.LoadWithValidation("kyc-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KYC_DATABASE_HOST")
}
