package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite"

	"github.com/groundscan/gpr-backend-go/internal/api"
	"github.com/groundscan/gpr-backend-go/internal/config"
	"github.com/groundscan/gpr-backend-go/internal/database"
	"github.com/groundscan/gpr-backend-go/internal/handler"
	"github.com/groundscan/gpr-backend-go/internal/poi"
	"github.com/groundscan/gpr-backend-go/internal/repository"
	"github.com/groundscan/gpr-backend-go/internal/service"
	"github.com/groundscan/gpr-backend-go/internal/session"
	"github.com/groundscan/gpr-backend-go/internal/synthetic"
)

const testSecret = "test-secret"

func testRouter(t *testing.T) *gin.Engine {
	r, _ := testRouterWithStore(t)
	return r
}

func testRouterWithStore(t *testing.T) (*gin.Engine, *poi.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	offline := synthetic.NewProvider()
	loads := session.NewManager(nil, offline)
	store := poi.NewStore()

	cfg := &config.Config{JWTSecret: testSecret}
	r := api.SetupRouter(cfg,
		handler.NewSurveyHandler(service.NewSurveyService(offline, loads)),
		handler.NewPOIHandler(service.NewPOIService(repository.NewPOIRepository(db), store)),
	)
	return r, store
}

func token(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func do(r *gin.Engine, method, path, body, auth string) *httptest.ResponseRecorder {
	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", "Bearer "+auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSliceLoadValidation(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		name string
		url  string
	}{
		{"missing date", "/api/v1/survey/slice?startLat=1&startLon=2&endLat=3&endLon=4"},
		{"bad coordinate", "/api/v1/survey/slice?date=2026-05-01&startLat=abc&startLon=2&endLat=3&endLon=4"},
		{"missing coordinate", "/api/v1/survey/slice?date=2026-05-01&startLat=1&startLon=2&endLat=3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(r, "GET", tc.url, "", ""); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestSliceLoadReturnsDatasetAndTrack(t *testing.T) {
	r := testRouter(t)

	w := do(r, "GET", "/api/v1/survey/slice?date=2026-05-01&startLat=42.9647&startLon=-81.2897&endLat=43.0556&endLon=-81.0823", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			RequestID string          `json:"requestId"`
			Status    string          `json:"status"`
			Dataset   json.RawMessage `json:"dataset"`
			Track     json.RawMessage `json:"track"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.RequestID == "" || len(resp.Data.Dataset) == 0 || len(resp.Data.Track) == 0 {
		t.Errorf("incomplete load response: %+v", resp.Data)
	}
}

func TestPositionBeforeLoadIsNull(t *testing.T) {
	r := testRouter(t)

	w := do(r, "GET", "/api/v1/survey/position?sliceX=600&sliceY=0", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data != nil {
		t.Errorf("expected null position before any load, got %v", resp.Data)
	}
}

func TestPositionAfterLoad(t *testing.T) {
	r := testRouter(t)

	if w := do(r, "GET", "/api/v1/survey/slice?date=2026-05-01&startLat=42.9647&startLon=-81.2897&endLat=43.0556&endLon=-81.0823", "", ""); w.Code != http.StatusOK {
		t.Fatalf("load failed: %d", w.Code)
	}

	w := do(r, "GET", "/api/v1/survey/position?sliceX=600&sliceY=0", "", "")
	var resp struct {
		Data struct {
			Lat        float64 `json:"lat"`
			Lon        float64 `json:"lon"`
			TrackIndex *int    `json:"trackIndex"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Lat < 42.9 || resp.Data.Lat > 43.1 {
		t.Errorf("lat %v outside survey bounds", resp.Data.Lat)
	}
	if resp.Data.TrackIndex == nil {
		t.Error("expected a resolved track index")
	}
}

func TestPOITypes(t *testing.T) {
	r := testRouter(t)

	w := do(r, "GET", "/api/v1/poi-types", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "culvert") || !strings.Contains(w.Body.String(), "anomaly") {
		t.Errorf("missing types in %s", w.Body.String())
	}
}

func TestPOIMutationRequiresToken(t *testing.T) {
	r := testRouter(t)

	body := `{"id":"poi-101","type":"pipe","label":"main"}`
	if w := do(r, "POST", "/api/v1/pois", body, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create: status = %d, want 401", w.Code)
	}
	if w := do(r, "POST", "/api/v1/pois", body, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}
}

func TestPOICRUDRoundTrip(t *testing.T) {
	r := testRouter(t)
	auth := token(t)

	create := `{"id":"poi-101","type":"pipe","label":"storm main","sliceX":412,"sliceY":88,"lat":43.0102,"lon":-81.186,"mileMarker":3.2}`
	if w := do(r, "POST", "/api/v1/pois", create, auth); w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}

	// Duplicate id rejected.
	if w := do(r, "POST", "/api/v1/pois", create, auth); w.Code != http.StatusBadRequest {
		t.Errorf("duplicate create: status = %d, want 400", w.Code)
	}

	if w := do(r, "GET", "/api/v1/pois/poi-101", "", ""); w.Code != http.StatusOK {
		t.Errorf("get: status = %d", w.Code)
	}

	update := `{"type":"culvert","label":"revised"}`
	if w := do(r, "PUT", "/api/v1/pois/poi-101", update, auth); w.Code != http.StatusOK {
		t.Errorf("update: status = %d, body %s", w.Code, w.Body.String())
	}

	if w := do(r, "DELETE", "/api/v1/pois/poi-101", "", auth); w.Code != http.StatusOK {
		t.Errorf("delete: status = %d", w.Code)
	}
	if w := do(r, "GET", "/api/v1/pois/poi-101", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", w.Code)
	}
}

func TestPOIMutationsMirrorStore(t *testing.T) {
	r, store := testRouterWithStore(t)
	auth := token(t)

	create := `{"id":"poi-101","type":"pipe","label":"storm main"}`
	if w := do(r, "POST", "/api/v1/pois", create, auth); w.Code != http.StatusOK {
		t.Fatalf("create: status = %d", w.Code)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d POIs after create, want 1", store.Len())
	}

	update := `{"type":"culvert","label":"revised"}`
	if w := do(r, "PUT", "/api/v1/pois/poi-101", update, auth); w.Code != http.StatusOK {
		t.Fatalf("update: status = %d", w.Code)
	}
	mirrored := store.List()
	if len(mirrored) != 1 || mirrored[0].Label != "revised" {
		t.Errorf("store not updated: %+v", mirrored)
	}

	if w := do(r, "DELETE", "/api/v1/pois/poi-101", "", auth); w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d POIs after delete, want 0", store.Len())
	}
}

func TestPOIImportReplacesSet(t *testing.T) {
	r, store := testRouterWithStore(t)
	auth := token(t)

	if w := do(r, "POST", "/api/v1/pois", `{"id":"poi-1","type":"pipe"}`, auth); w.Code != http.StatusOK {
		t.Fatalf("create: status = %d", w.Code)
	}

	bundle := `[{"id":"srv-7","type":"anomaly","label":"bundled"},{"id":"srv-8","type":"void"}]`
	if w := do(r, "POST", "/api/v1/pois/import", bundle, auth); w.Code != http.StatusOK {
		t.Fatalf("import: status = %d, body %s", w.Code, w.Body.String())
	}

	// Both the persistence mirror and the store hold only the bundle now.
	w := do(r, "GET", "/api/v1/pois", "", "")
	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Count != 2 {
		t.Errorf("persisted count = %d, want 2", resp.Data.Count)
	}

	mirrored := store.List()
	if len(mirrored) != 2 || mirrored[0].ID != "srv-7" {
		t.Errorf("store not replaced: %+v", mirrored)
	}

	if w := do(r, "POST", "/api/v1/pois/import", `[{"id":"","type":"pipe"}]`, auth); w.Code != http.StatusBadRequest {
		t.Errorf("import with empty id: status = %d, want 400", w.Code)
	}
}

func TestPOIRejectsUnknownType(t *testing.T) {
	r := testRouter(t)

	body := `{"id":"poi-9","type":"treasure"}`
	if w := do(r, "POST", "/api/v1/pois", body, token(t)); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestNearestEndpoint(t *testing.T) {
	r := testRouter(t)

	if w := do(r, "GET", "/api/v1/survey/slice?date=2026-05-01&startLat=42.9647&startLon=-81.2897&endLat=43.0556&endLon=-81.0823", "", ""); w.Code != http.StatusOK {
		t.Fatalf("load failed: %d", w.Code)
	}

	// A point nowhere near the synthetic track.
	w := do(r, "GET", "/api/v1/survey/nearest?lat=10&lon=10", "", "")
	var resp struct {
		Data interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data != nil {
		t.Errorf("expected null for far click, got %v", resp.Data)
	}
}

func TestDatesEndpoint(t *testing.T) {
	r := testRouter(t)

	w := do(r, "GET", "/api/v1/survey/dates", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) == 0 {
		t.Error("expected at least one date")
	}
}
