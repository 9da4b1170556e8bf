package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(env map[string]string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range env {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "owner", cfg.Owner.Username)
	assert.True(t, cfg.AutoMigrate)
	assert.NotEmpty(t, cfg.SigningSecret())
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]string{
		"DB_DRIVER":        "SQLite",
		"TOKEN_TTL":        "90m",
		"DEFAULT_TIMEZONE": "Europe/Madrid",
		"JWT_SECRET":       "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "Europe/Madrid", cfg.Location().String())
	assert.Equal(t, []byte("s3cret"), cfg.SigningSecret())
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"production without secret", map[string]string{"APP_ENV": "production"}},
		{"bad timezone", map[string]string{"DEFAULT_TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.env))
			assert.Error(t, err)
		})
	}
}
