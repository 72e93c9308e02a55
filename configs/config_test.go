package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"simple_cart/configs"
	"simple_cart/configs/loader"
	"simple_cart/configs/loader/dotEnvLoader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := configs.Load(loader.MapLoader{})

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, configs.StorageSession, cfg.Cart.Storage)
	assert.Equal(t, "_cart", cfg.Cart.Key)
	assert.Equal(t, "cart:", cfg.RD.Prefix)
	assert.False(t, cfg.RD.Enabled)
	assert.False(t, cfg.DB.Enabled)
	assert.False(t, cfg.KF.Enabled)
	assert.Equal(t, "cart-events", cfg.KF.Topic)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := configs.Load(loader.MapLoader{
		"APP_ENV":               "prod",
		"CART_STORAGE":          "cookie",
		"CART_COOKIE_BLOCK_KEY": "0123456789abcdef",
		"REDIS_ENABLED":         "true",
		"REDIS_HOST":            "redis:6379",
		"REDIS_TTL":             "1h",
		"HTTP_READ_TIMEOUT":     "not-a-duration",
	})

	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, configs.StorageCookie, cfg.Cart.Storage)
	assert.True(t, cfg.RD.Enabled)
	assert.Equal(t, time.Hour, cfg.RD.TTL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout, "invalid values fall back to the default")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		envs loader.MapLoader
	}{
		{"unknown storage", loader.MapLoader{"CART_STORAGE": "database"}},
		{"unknown env", loader.MapLoader{"APP_ENV": "staging"}},
		{"redis without host", loader.MapLoader{"REDIS_ENABLED": "true"}},
		{"postgres without credentials", loader.MapLoader{"POSTGRES_ENABLED": "true"}},
		{"kafka without brokers", loader.MapLoader{"KAFKA_ENABLED": "true"}},
		{"short block key", loader.MapLoader{"CART_COOKIE_BLOCK_KEY": "short"}},
		{"cart key is not a cookie name", loader.MapLoader{"CART_KEY": "my cart"}},
		{"session cookie shadows the cart cookie", loader.MapLoader{"CART_SESSION_COOKIE": "_cart"}},
		{"no consumers", loader.MapLoader{"KAFKA_CONSUMERS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := configs.Load(tt.envs)

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestDotEnvLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CART_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("CART_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("CART_TEST_KEY"))

	envs, err := dotEnvLoader.DotEnvLoader{Files: []string{path}}.Load()

	require.NoError(t, err)
	assert.Equal(t, "from-file", envs["CART_TEST_KEY"])
}
