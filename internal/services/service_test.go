package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/e-signature-api/internal/config"
	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/repository"
	"github.com/yukikurage/e-signature-api/internal/storage"
)

// testEnv wires every service against an in-memory database and a
// throwaway artifact store.
type testEnv struct {
	db      *gorm.DB
	store   *storage.Store
	cfg     *config.Config
	auth    *AuthService
	docs    *DocumentService
	sigs    *SignatureService
	signing *SigningService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.Signature{},
		&models.SignedDocument{},
	))

	cfg := &config.Config{
		UploadDir:            t.TempDir(),
		MaxUploadSize:        10 * 1024 * 1024,
		AllowedDocumentTypes: []string{".pdf", ".png", ".jpg", ".jpeg"},
		JWTSecret:            "test-secret",
		TokenLifetime:        time.Hour,
	}

	store := storage.NewStore(cfg.UploadDir, zerolog.Nop())

	userRepo := repository.NewUserRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	sigRepo := repository.NewSignatureRepository(db)
	signedRepo := repository.NewSignedDocumentRepository(db)

	return &testEnv{
		db:      db,
		store:   store,
		cfg:     cfg,
		auth:    NewAuthService(userRepo, store, cfg.JWTSecret, cfg.TokenLifetime),
		docs:    NewDocumentService(docRepo, store, cfg),
		sigs:    NewSignatureService(sigRepo, store),
		signing: NewSigningService(docRepo, sigRepo, signedRepo, store, zerolog.Nop()),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.Register(RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

var testWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func testPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testSignatureData(t *testing.T) string {
	t.Helper()
	raw := testPNG(t, 10, 10, color.NRGBA{R: 255, A: 255})
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}
