package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const minimalConfig = `
smtp:
  host: smtp.example.com
  user: portal@example.com
  password: secret
`

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "data/beneficios.db", cfg.Database.Path)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 30, cfg.Voucher.ValidityDays)
	assert.False(t, cfg.Voucher.EnforceValidity)
	assert.Equal(t, 30*time.Minute, cfg.Voucher.SessionTTL)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
server:
  port: 8080
voucher:
  validity_days: 60
  company_name: "ACME Benefícios"
logger:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Voucher.ValidityDays)
	assert.Equal(t, "ACME Benefícios", cfg.Voucher.CompanyName)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_EnvCredentials(t *testing.T) {
	t.Setenv("EMAIL_API_HOST", "smtp.env.example.com")
	t.Setenv("EMAIL_API_USER", "env-user@example.com")
	t.Setenv("EMAIL_API_SENHA", "env-secret")

	path := writeConfig(t, `
voucher:
  validity_days: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "smtp.env.example.com", cfg.SMTP.Host)
	assert.Equal(t, "env-user@example.com", cfg.SMTP.User)
	assert.Equal(t, "env-secret", cfg.SMTP.Password)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing smtp host",
			mutate: func(c *Config) {
				c.SMTP.Host = ""
			},
			wantErr: true,
		},
		{
			name: "missing smtp password",
			mutate: func(c *Config) {
				c.SMTP.Password = ""
			},
			wantErr: true,
		},
		{
			name: "non-positive validity",
			mutate: func(c *Config) {
				c.Voucher.ValidityDays = 0
			},
			wantErr: true,
		},
		{
			name: "missing company name",
			mutate: func(c *Config) {
				c.Voucher.CompanyName = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				SMTP: SMTPConfig{
					Host:     "smtp.example.com",
					User:     "portal@example.com",
					Password: "secret",
				},
				Voucher: VoucherConfig{
					CompanyName:  "Farmace",
					ValidityDays: 30,
				},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
