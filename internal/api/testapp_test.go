package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/db"
	"github.com/plantracker/plantracker/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	return newTestAppWithNotifier(t, nil)
}

func newTestAppWithNotifier(t *testing.T, notifier services.TimerNotifier) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "plantracker-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, testSecretKey, 30*time.Minute, notifier)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, method string, target string, token string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int, out any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (body: %s)", request.Method, request.URL.Path, wantStatus, response.StatusCode, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("decode response body %q: %v", body, err)
		}
	}
}

func registerAndLogin(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"email":    email,
		"password": password,
	}), http.StatusCreated, nil)

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	doJSON(t, app, jsonRequest(t, http.MethodPost, "/auth/token", "", fiber.Map{
		"email":    email,
		"password": password,
	}), http.StatusOK, &tokenResponse)

	if tokenResponse.AccessToken == "" || tokenResponse.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", tokenResponse)
	}
	return tokenResponse.AccessToken
}

func decodeErrorMessage(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) string {
	t.Helper()

	var errorResponse struct {
		Error string `json:"error"`
	}
	doJSON(t, app, request, wantStatus, &errorResponse)
	return errorResponse.Error
}
