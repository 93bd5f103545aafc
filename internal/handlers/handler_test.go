package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/e-signature-api/internal/config"
	"github.com/yukikurage/e-signature-api/internal/middleware"
	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/repository"
	"github.com/yukikurage/e-signature-api/internal/services"
	"github.com/yukikurage/e-signature-api/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI is a fully wired router backed by an in-memory database,
// mirroring the production route table.
type testAPI struct {
	router *gin.Engine
	store  *storage.Store
}

func setupAPI(t *testing.T) *testAPI {
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

	authService := services.NewAuthService(userRepo, store, cfg.JWTSecret, cfg.TokenLifetime)
	documentService := services.NewDocumentService(docRepo, store, cfg)
	signatureService := services.NewSignatureService(sigRepo, store)
	signingService := services.NewSigningService(docRepo, sigRepo, signedRepo, store, zerolog.Nop())

	authHandler := NewAuthHandler(authService)
	documentHandler := NewDocumentHandler(documentService)
	signatureHandler := NewSignatureHandler(signatureService)
	signedHandler := NewSignedDocumentHandler(signingService)

	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authed := auth.Group("")
			authed.Use(middleware.RequireAuth(cfg.JWTSecret))
			{
				authed.POST("/logout", authHandler.Logout)
				authed.GET("/me", authHandler.GetCurrentUser)
				authed.DELETE("/me", authHandler.DeleteAccount)
			}
		}

		documents := api.Group("/documents")
		documents.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			documents.POST("/upload", documentHandler.Upload)
			documents.GET("", documentHandler.List)
			documents.GET("/:id", documentHandler.Get)
			documents.GET("/:id/download", documentHandler.Download)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		signatures := api.Group("/signatures")
		signatures.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			signatures.POST("", signatureHandler.Create)
			signatures.GET("", signatureHandler.List)
			signatures.GET("/:id", signatureHandler.Get)
			signatures.DELETE("/:id", signatureHandler.Delete)
		}

		signed := api.Group("/signed")
		signed.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			signed.POST("/apply", signedHandler.Apply)
			signed.GET("/:id", signedHandler.Get)
			signed.GET("/:id/download", signedHandler.Download)
			signed.GET("/document/:id", signedHandler.ListVersions)
		}
	}

	return &testAPI{router: r, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(t, method, path, token, body, "application/json")
}

// registerAndLogin creates an account through the API and returns its
// bearer token.
func (a *testAPI) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	w := a.doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (a *testAPI) uploadFile(t *testing.T, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return a.do(t, http.MethodPost, "/api/documents/upload", token, body.Bytes(), mw.FormDataContentType())
}

func apiTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func apiSignaturePayload(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Code
}
