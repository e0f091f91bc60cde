package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("starts without explicit credentials, falling back to ADC", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "test-project")
		t.Setenv("COUNCIL_API_BASE_URL", "https://city.example")
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
		t.Setenv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.GoogleApplicationCredentials)
		assert.Empty(t, cfg.FirebaseServiceAccountJSONBase64)
		assert.Equal(t, "test-project", cfg.FirebaseProjectID)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 3600, cfg.CouncilCacheTTLSeconds)
	})

	t.Run("project ID is required", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "")
		t.Setenv("COUNCIL_API_BASE_URL", "https://city.example")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("council endpoint is required", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "test-project")
		t.Setenv("COUNCIL_API_BASE_URL", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
