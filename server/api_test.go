package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/reactive/cell"
	"github.com/kbukum/reactive/component"
	"github.com/kbukum/reactive/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, api *API) *gin.Engine {
	t.Helper()
	engine := gin.New()
	api.Routes(engine)
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPutAndGetCell(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	query := cell.New("")
	defer query.Dispose()
	if err := api.RegisterCell(ExposeCell("query", query)); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	engine := newTestRouter(t, api)

	w := doRequest(engine, "PUT", "/v1/cells/query", `{"value":"hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if query.Read() != "hello" {
		t.Errorf("expected cell value 'hello', got %q", query.Read())
	}

	w = doRequest(engine, "GET", "/v1/cells/query", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data cellView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Name != "query" || resp.Data.Value != "hello" || !resp.Data.Writable {
		t.Errorf("unexpected cell view: %+v", resp.Data)
	}
}

func TestGetUnknownCell(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	engine := newTestRouter(t, api)

	w := doRequest(engine, "GET", "/v1/cells/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NOT_FOUND") {
		t.Errorf("expected NOT_FOUND code in body, got: %s", w.Body.String())
	}
}

func TestPutCellMissingValue(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	query := cell.New("")
	defer query.Dispose()
	_ = api.RegisterCell(ExposeCell("query", query))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "PUT", "/v1/cells/query", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPutCellWrongValueType(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	count := cell.New(0)
	defer count.Dispose()
	_ = api.RegisterCell(ExposeCell("count", count))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "PUT", "/v1/cells/count", `{"value":"not a number"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if count.Read() != 0 {
		t.Errorf("expected cell untouched after bad write, got %d", count.Read())
	}
}

func TestPutReadOnlyCell(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	src := cell.New("seed")
	defer src.Dispose()
	_ = api.RegisterCell(ExposeSource[string]("derived", src))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "PUT", "/v1/cells/derived", `{"value":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for read-only cell, got %d", w.Code)
	}

	w = doRequest(engine, "GET", "/v1/cells/derived", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 reading read-only cell, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"writable":false`) {
		t.Errorf("expected writable:false in body, got: %s", w.Body.String())
	}
}

func TestListCellsSorted(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	b := cell.New(2)
	a := cell.New(1)
	defer b.Dispose()
	defer a.Dispose()
	_ = api.RegisterCell(ExposeCell("beta", b))
	_ = api.RegisterCell(ExposeCell("alpha", a))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "GET", "/v1/cells", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []cellView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(resp.Data))
	}
	if resp.Data[0].Name != "alpha" || resp.Data[1].Name != "beta" {
		t.Errorf("expected sorted cell names, got %s, %s", resp.Data[0].Name, resp.Data[1].Name)
	}
}

func TestRegisterCellDuplicate(t *testing.T) {
	api := NewAPI("reactived", nil, nil)
	c := cell.New(0)
	defer c.Dispose()

	if err := api.RegisterCell(ExposeCell("dup", c)); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if err := api.RegisterCell(ExposeCell("dup", c)); err == nil {
		t.Fatal("expected error registering duplicate cell name")
	}
}

type stubComponent struct {
	name   string
	status component.HealthStatus
}

func (s *stubComponent) Name() string                  { return s.name }
func (s *stubComponent) Start(_ context.Context) error { return nil }
func (s *stubComponent) Stop(_ context.Context) error  { return nil }
func (s *stubComponent) Health(_ context.Context) component.Health {
	return component.Health{Name: s.name, Status: s.status}
}

func TestHealthEndpoint(t *testing.T) {
	registry := component.NewRegistry()
	_ = registry.Register(&stubComponent{name: "a", status: component.StatusHealthy})

	api := NewAPI("reactived", nil, registry)
	engine := newTestRouter(t, api)

	w := doRequest(engine, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Errorf("expected healthy status, got: %s", w.Body.String())
	}
}

func TestHealthEndpointUnhealthy(t *testing.T) {
	registry := component.NewRegistry()
	_ = registry.Register(&stubComponent{name: "a", status: component.StatusHealthy})
	_ = registry.Register(&stubComponent{name: "b", status: component.StatusUnhealthy})

	api := NewAPI("reactived", nil, registry)
	engine := newTestRouter(t, api)

	w := doRequest(engine, "GET", "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("expected unhealthy status, got: %s", w.Body.String())
	}
}

func TestNotificationEndpoints(t *testing.T) {
	queue := notify.NewQueue(time.Minute)
	defer queue.Close()

	api := NewAPI("reactived", nil, nil, WithNotifications(queue))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "POST", "/v1/notifications", `{"level":"warning","text":"disk almost full"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var posted struct {
		Data notify.Message `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &posted); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if posted.Data.Level != notify.LevelWarning {
		t.Errorf("expected warning level, got %s", posted.Data.Level)
	}

	w = doRequest(engine, "GET", "/v1/notifications", "")
	if !strings.Contains(w.Body.String(), "disk almost full") {
		t.Errorf("expected message in listing, got: %s", w.Body.String())
	}

	w = doRequest(engine, "DELETE", "/v1/notifications/"+posted.Data.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if queue.Len() != 0 {
		t.Errorf("expected empty queue after dismiss, got %d", queue.Len())
	}

	w = doRequest(engine, "DELETE", "/v1/notifications/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown notification, got %d", w.Code)
	}
}

func TestPostNotificationRejectsBadLevel(t *testing.T) {
	queue := notify.NewQueue(time.Minute)
	defer queue.Close()

	api := NewAPI("reactived", nil, nil, WithNotifications(queue))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "POST", "/v1/notifications", `{"level":"loud","text":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPostNotificationDefaultsToInfo(t *testing.T) {
	queue := notify.NewQueue(time.Minute)
	defer queue.Close()

	api := NewAPI("reactived", nil, nil, WithNotifications(queue))
	engine := newTestRouter(t, api)

	w := doRequest(engine, "POST", "/v1/notifications", `{"text":"saved"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"level":"info"`) {
		t.Errorf("expected info level default, got: %s", w.Body.String())
	}
}
