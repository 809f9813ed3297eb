package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

type fakeProvider struct {
	mu         sync.Mutex
	view       *models.MReportView
	refreshErr error
	next       *models.MReportView
}

func (f *fakeProvider) Snapshot() *models.MReportView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakeProvider) Refresh(context.Context) (*models.MReportView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.view = f.next
	return f.view, nil
}

func (f *fakeProvider) Status() models.MServiceStatus {
	return models.MServiceStatus{Status: "ok", Generation: 1}
}

func sampleView(id string) *models.MReportView {
	return &models.MReportView{
		SnapshotID: id,
		Products: models.MProductView{
			TotalSales:        130,
			Rows:              []models.MProductRow{{Product: "A", TotalSales: 30}, {Product: "B", TotalSales: 100}},
			ByPriceDescending: []models.MProductRow{{Product: "B"}, {Product: "A"}},
			BySalesAscending:  []models.MProductRow{{Product: "A"}, {Product: "B"}},
			Subsets:           []models.MSubsetSummary{{Label: models.LabelLowCost, Products: 1}},
		},
		Cities: models.MCityView{
			Markers:          []models.MCityRow{{City: "Dallas", TotalSales: 100}, {City: "Boston", TotalSales: 30}},
			BySalesAscending: []models.MCityRow{{City: "Boston"}, {City: "Dallas"}},
		},
		Monthly: make([]models.MMonthlyRow, 12),
		Hourly:  make([]models.MHourlyRow, 24),
	}
}

func newTestServer(p *fakeProvider) *ReportServer {
	cfg := &models.MConfig{Host: "127.0.0.1", Port: 8050}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("salesreport_refresh_total 1\n")) })
	return NewReportServer(cfg, p, metrics, logger.NewNopLogger())
}

func get(t *testing.T, h http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestUnavailableBeforeFirstSnapshot(t *testing.T) {
	h := newTestServer(&fakeProvider{}).Handler()
	for _, path := range []string{"/api/report", "/api/products", "/api/cities", "/api/temporal/monthly", "/api/temporal/hourly", "/api/subsets", "/api/metrics"} {
		rec, _ := get(t, h, "GET", path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
	rec, body := get(t, h, "GET", "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "service")
}

func TestProductOrders(t *testing.T) {
	h := newTestServer(&fakeProvider{view: sampleView("s1")}).Handler()

	names := func(body map[string]any) []string {
		var out []string
		for _, r := range body["rows"].([]any) {
			out = append(out, r.(map[string]any)["product"].(string))
		}
		return out
	}

	_, body := get(t, h, "GET", "/api/products")
	assert.Equal(t, []string{"A", "B"}, names(body))
	assert.Equal(t, "s1", body["snapshot_id"])
	_, body = get(t, h, "GET", "/api/products?order=price_desc")
	assert.Equal(t, []string{"B", "A"}, names(body))
	_, body = get(t, h, "GET", "/api/products?order=sales_asc")
	assert.Equal(t, []string{"A", "B"}, names(body))

	rec, _ := get(t, h, "GET", "/api/products?order=random")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCityOrdersAndTemporal(t *testing.T) {
	h := newTestServer(&fakeProvider{view: sampleView("s1")}).Handler()

	_, body := get(t, h, "GET", "/api/cities?order=sales_asc")
	rows := body["rows"].([]any)
	assert.Equal(t, "Boston", rows[0].(map[string]any)["city"])

	rec, _ := get(t, h, "GET", "/api/cities?order=alpha")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, body = get(t, h, "GET", "/api/temporal/monthly")
	assert.Len(t, body["rows"], 12)
	_, body = get(t, h, "GET", "/api/temporal/hourly")
	assert.Len(t, body["rows"], 24)
	_, body = get(t, h, "GET", "/api/subsets")
	assert.Len(t, body["rows"], 1)
}

func TestRefreshEndpoint(t *testing.T) {
	p := &fakeProvider{next: sampleView("fresh")}
	h := newTestServer(p).Handler()

	rec, body := get(t, h, "POST", "/api/refresh")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh", body["snapshot_id"])

	p.refreshErr = helpers.NewInconsistentGeoError("Dallas", [][2]float64{{1, 2}, {3, 4}})
	rec, body = get(t, h, "POST", "/api/refresh")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "inconsistent_geo", body["kind"])

	p.refreshErr = errors.New("boom")
	rec, _ = get(t, h, "POST", "/api/refresh")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPrometheusRoute(t *testing.T) {
	h := newTestServer(&fakeProvider{}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "salesreport_refresh_total")
}

func TestWebSocketInitialUpdateAndGet(t *testing.T) {
	p := &fakeProvider{view: sampleView("s1")}
	srv := newTestServer(p)
	go srv.handleWebsockets()
	defer srv.Stop(context.Background())

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg models.MPushMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "INITIAL", msg.Type)
	assert.Equal(t, "s1", msg.SnapshotID)

	require.NoError(t, conn.WriteJSON(models.MClientCommand{Command: "get", View: "cities", Order: "sales_asc"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "VIEW", msg.Type)
	assert.Equal(t, "cities", msg.View)

	require.NoError(t, conn.WriteJSON(models.MClientCommand{Command: "get", View: "nope"}))
	msg = models.MPushMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "ERROR", msg.Type)

	srv.Broadcast(sampleView("s2"))
	msg = models.MPushMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "UPDATE", msg.Type)
	assert.Equal(t, "s2", msg.SnapshotID)
}

func TestWebSocketClosedNormallyOnStop(t *testing.T) {
	p := &fakeProvider{view: sampleView("s1")}
	srv := newTestServer(p)
	go srv.handleWebsockets()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg models.MPushMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "INITIAL", msg.Type)

	require.NoError(t, srv.Stop(context.Background()))

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
