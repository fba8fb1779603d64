package dependency

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/tracker-api/config"
	"github.com/personal-finance/tracker-api/internal/infra/db"
	"github.com/personal-finance/tracker-api/internal/integration/persistence/model"
)

func newTestConfig(t *testing.T, name string) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Database = config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + name + "?mode=memory&cache=shared",
	}
	cfg.Redis.Enabled = false
	cfg.Email.Enabled = false
	cfg.Events.Enabled = false
	cfg.Gemini.APIKey = ""
	cfg.JWT.Secret = "injector-test-secret"
	return cfg
}

func newTestDatabase(t *testing.T, cfg *config.Config) *db.Database {
	t.Helper()
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return database
}

func TestNewInjector_WiresRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := newTestConfig(t, "injector_routes")
	cfg.Scheduler.Enabled = false

	injector, err := NewInjector(cfg, newTestDatabase(t, cfg), Externals{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = injector.Close() })

	engine := injector.Router.Setup(cfg.Server.Environment)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var health map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health["cache"] != "disabled" {
		t.Errorf("expected cache disabled, got %s", health["cache"])
	}

	// Register, then use the issued token on a protected route
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email": "ana@example.com", "name": "Ana", "password": "Secret123!"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &auth); err != nil {
		t.Fatalf("failed to decode auth: %v", err)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	if jobs := injector.Scheduler.Jobs(); jobs != 1 {
		t.Errorf("expected 1 scheduled job, got %d", jobs)
	}
}

func TestNewInjector_SchedulesMaintenanceJobs(t *testing.T) {
	cfg := newTestConfig(t, "injector_jobs")
	cfg.Scheduler.Enabled = true

	injector, err := NewInjector(cfg, newTestDatabase(t, cfg), Externals{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = injector.Close() })

	if jobs := injector.Scheduler.Jobs(); jobs != 3 {
		t.Errorf("expected 3 scheduled jobs, got %d", jobs)
	}
}

func TestNewInjector_InvalidScheduleFails(t *testing.T) {
	cfg := newTestConfig(t, "injector_invalid")
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.BudgetReconcileSpec = "not a cron spec"

	if _, err := NewInjector(cfg, newTestDatabase(t, cfg), Externals{}); err == nil {
		t.Error("expected an error for an invalid cron spec")
	}
}
