package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/infrastructure/config"
	"github.com/parkline/parkline/internal/infrastructure/migration"
	"github.com/parkline/parkline/internal/infrastructure/persistence/seeds"
	sharedConfig "github.com/parkline/parkline/internal/shared/config"
	"github.com/parkline/parkline/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestContainer(t *testing.T, redisAddr string) *Container {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	fixture, err := seeds.Default()
	require.NoError(t, err)
	_, err = seeds.Apply(gdb, fixture)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:    sharedConfig.ServerConfig{Mode: gin.TestMode, Timezone: "UTC"},
		Database:  sharedConfig.DatabaseConfig{Driver: sharedConfig.DriverSQLite},
		Billing:   sharedConfig.BillingConfig{ConflictRetries: 1, Currency: "USD", Locale: "en"},
		Scheduler: sharedConfig.SchedulerConfig{Enabled: false},
		Metrics:   sharedConfig.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	if redisAddr != "" {
		host, portStr, err := net.SplitHostPort(redisAddr)
		require.NoError(t, err)
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)
		cfg.Redis = sharedConfig.RedisConfig{Enabled: true, Host: host, Port: port, ExitGuardTTLSeconds: 30}
	}

	c, err := NewContainer(gdb, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	c.SetupRoutes()
	return c
}

func do(t *testing.T, engine http.Handler, method, path string, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestContainer_TicketLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	c := newTestContainer(t, mr.Addr())
	engine := c.Engine()

	w, resp := do(t, engine, http.MethodPost, "/api/v1/tickets", `{"branch_id": 1, "license_plate": "zz 900"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry dto.TicketView
	require.NoError(t, json.Unmarshal(resp.Data, &entry))
	assert.Equal(t, "ZZ900", entry.LicensePlate)
	assert.Equal(t, "open", entry.Status)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, _ = do(t, engine, http.MethodPost, "/api/v1/tickets", `{"branch_id": 1, "license_plate": "ZZ900"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	path := fmt.Sprintf("/api/v1/tickets/%d", entry.ID)
	w, _ = do(t, engine, http.MethodPost, path+"/free-hours", `{"business_id": 9, "hours": "0.5"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = do(t, engine, http.MethodPost, path+"/exit", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var exit dto.TicketView
	require.NoError(t, json.Unmarshal(resp.Data, &exit))
	assert.Equal(t, "completed", exit.Status)
	require.NotNil(t, exit.Charge)
	assert.Equal(t, "rate_base", exit.Charge.RateSource)
	assert.Equal(t, "0.00", exit.Charge.TotalAmount)

	w, resp = do(t, engine, http.MethodPost, path+"/exit", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, resp.Error)

	w, resp = do(t, engine, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.TicketView
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, exit.Charge.TotalAmount, got.Charge.TotalAmount)

	assert.Empty(t, mr.Keys(), "exit guard must be released")
}

func TestContainer_NotFoundAndValidation(t *testing.T) {
	c := newTestContainer(t, "")
	engine := c.Engine()

	w, _ := do(t, engine, http.MethodGet, "/api/v1/tickets/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, engine, http.MethodPost, "/api/v1/tickets", `{"branch_id": 999, "license_plate": "AB12"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, engine, http.MethodPost, "/api/v1/tickets", `{"branch_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContainer_HealthVersionMetrics(t *testing.T) {
	c := newTestContainer(t, "")
	engine := c.Engine()

	w, _ := do(t, engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, engine, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version"`)

	do(t, engine, http.MethodPost, "/api/v1/tickets", `{"branch_id": 1, "license_plate": "MET001"}`)

	w, _ = do(t, engine, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `parkline_entries_total{result="completed"} 1`)
	assert.Contains(t, w.Body.String(), `parkline_http_requests_total`)
}
