package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chtmp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := chtmp(t)
	contents := `
server:
  port: 8080
database:
  host: localhost
  port: 5432
  user: booking
  password: secret
  name: booking
jwt:
  secret: test-secret
smtp:
  host: smtp.example.com
  port: 587
  clinic_inbox: frontdesk@clinic.example
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "frontdesk@clinic.example", cfg.SMTP.ClinicInbox)

	// Defaults fill what the file leaves out.
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, 30*time.Second, cfg.Booking.DedupTTL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	chtmp(t)

	_, err := LoadConfig()
	assert.Error(t, err)
}
