package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	require.Equal(t, []string{".pdf", ".png", ".jpg", ".jpeg"}, cfg.AllowedDocumentTypes)
	require.Equal(t, 24*time.Hour, cfg.TokenLifetime)
	require.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("MAX_UPLOAD_SIZE", "1024")
	t.Setenv("ALLOWED_DOCUMENT_TYPES", ".png, .jpg")
	t.Setenv("TOKEN_LIFETIME", "1h")

	cfg := Load()

	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, int64(1024), cfg.MaxUploadSize)
	require.Equal(t, []string{".png", ".jpg"}, cfg.AllowedDocumentTypes)
	require.Equal(t, time.Hour, cfg.TokenLifetime)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "not-a-number")
	t.Setenv("TOKEN_LIFETIME", "soon")

	cfg := Load()

	require.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	require.Equal(t, 24*time.Hour, cfg.TokenLifetime)
}
