package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitecast/stopend/config"
	"github.com/sitecast/stopend/core/plan"
	"github.com/sitecast/stopend/pkg/export"
	"github.com/sitecast/stopend/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	srv := NewServer(store, nil, nil, "http://plan.test", config.PlannerConfig{Strategy: "performance"})
	return srv.Router(), store
}

func projectPayload() plan.Project {
	return plan.Project{
		Name:              "quay wall",
		ProjectStart:      plan.NewDate(2026, time.March, 2),
		ProjectEnd:        plan.NewDate(2026, time.March, 14),
		InstallationStart: plan.NewDate(2026, time.March, 4),
		RateWeekday:       2,
		RateSaturday:      1,
		InitialStock:      plan.Pair{Long: 6, Short: 6},
		Target:            plan.Pair{Long: 18, Short: 18},
		Options: []plan.ProductionOption{
			{ID: "std", Name: "Standard", Produces: plan.Pair{Long: 2, Short: 2}},
		},
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProjectCRUD(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", projectPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created storage.ProjectRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Name != "quay wall" {
		t.Fatalf("unexpected record: %+v", created)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects", nil)
	var list []storage.ProjectRecord
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list has %d entries", len(list))
	}

	updated := projectPayload()
	updated.Name = "quay wall north"
	w = doJSON(t, r, http.MethodPut, "/api/projects/"+created.ID, updated)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var afterUpdate storage.ProjectRecord
	if err := json.Unmarshal(w.Body.Bytes(), &afterUpdate); err != nil {
		t.Fatal(err)
	}
	if afterUpdate.Name != "quay wall north" {
		t.Errorf("updated name = %q", afterUpdate.Name)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/projects/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/projects/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", w.Code)
	}
}

func TestCreateProjectRejectsInvalid(t *testing.T) {
	r, _ := newTestRouter(t)

	bad := projectPayload()
	bad.ProjectEnd = plan.NewDate(2026, time.February, 1)
	w := doJSON(t, r, http.MethodPost, "/api/projects", bad)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "before start") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestStatelessPlan(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/plan", projectPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var pl export.Plan
	if err := json.Unmarshal(w.Body.Bytes(), &pl); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(pl.Ledger) == 0 {
		t.Fatal("empty ledger")
	}
	if pl.Strategy != plan.StrategyPerformance {
		t.Errorf("strategy = %q", pl.Strategy)
	}
}

func TestPlanStoredProject(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", projectPayload())
	var created storage.ProjectRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/projects/"+created.ID+"/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var pl export.Plan
	if err := json.Unmarshal(w.Body.Bytes(), &pl); err != nil {
		t.Fatal(err)
	}
	if pl.Project != "quay wall" {
		t.Errorf("plan project = %q", pl.Project)
	}

	w = doJSON(t, r, http.MethodPost, "/api/projects/missing/plan", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing project plan status = %d", w.Code)
	}
}

func TestPlanExports(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", projectPayload())
	var created storage.ProjectRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/"+created.ID+"/plan.csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csv status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("csv content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "day,date,weekday") {
		t.Errorf("csv body starts with %q", w.Body.String()[:min(40, w.Body.Len())])
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/"+created.ID+"/plan.pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("pdf body missing signature")
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/"+created.ID+"/plan.xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("xlsx status = %d", w.Code)
	}
	// XLSX containers are zip archives.
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Error("xlsx body missing zip signature")
	}
}

func TestShares(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", projectPayload())
	var created storage.ProjectRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/projects/"+created.ID+"/share", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("share status = %d, body %s", w.Code, w.Body.String())
	}
	var share struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &share); err != nil {
		t.Fatal(err)
	}
	if share.ID == "" || !strings.HasPrefix(share.URL, "http://plan.test/api/shares/") {
		t.Fatalf("unexpected share: %+v", share)
	}

	w = doJSON(t, r, http.MethodGet, "/api/shares/"+share.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get share status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"plan"`) {
		t.Error("share response missing plan")
	}

	// Shares survive project deletion.
	w = doJSON(t, r, http.MethodDelete, "/api/projects/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatal("delete failed")
	}
	w = doJSON(t, r, http.MethodGet, "/api/shares/"+share.ID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("share after delete status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/shares/"+share.ID+"/qr", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("qr status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("qr content type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("qr body missing png signature")
	}

	w = doJSON(t, r, http.MethodGet, "/api/shares/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing share status = %d", w.Code)
	}
}
