package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/config"
	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/events"
	"jobscreen-engine/internal/flags"
	"jobscreen-engine/internal/model"
	"jobscreen-engine/internal/predict"
	"jobscreen-engine/internal/store"
)

func testBundle(t *testing.T, withForest bool) *model.Bundle {
	t.Helper()

	vec := &model.Vectorizer{
		Vocabulary: map[string]int{"experience": 0, "team": 1},
		IDF:        []float64{1.2, 1.0},
		NgramMax:   2,
	}
	dim := vec.Dim() + model.EngineeredFeatures
	ones := make([]float64, dim)
	for i := range ones {
		ones[i] = 1
	}
	sc := &model.Scaler{Mean: make([]float64, dim), Scale: ones}

	w := make([]float64, dim)
	w[12] = 1.5
	net := &model.Network{Layers: []model.Layer{{
		Weights:    [][]float64{w},
		Bias:       []float64{-2},
		Activation: "sigmoid",
	}}}

	var forest *model.Forest
	if withForest {
		forest = &model.Forest{
			NumFeatures: dim,
			Trees: []model.Tree{{Nodes: []model.TreeNode{
				{Feature: 12, Threshold: 1.5, Left: 1, Right: 2},
				{Feature: -1, Value: 0.1},
				{Feature: -1, Value: 0.9},
			}}},
		}
	}

	b, err := model.New("test-1", "2026-01-15T00:00:00Z", vec, sc, net, forest)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func testServer(t *testing.T, token string) (*httptest.Server, *analyze.Analyzer) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}

	a := analyze.New(testBundle(t, true), flags.NewDetector(nil), predict.DefaultWeights())

	var cfgVal atomic.Value
	var cfg config.Config
	cfg.App.Port = 38471
	cfg.App.ModelDir = "model"
	cfg.Analysis.BatchLimit = 3
	cfgVal.Store(cfg)

	mux := NewMux(Deps{
		Analyzer:    a,
		DB:          db.Pool,
		Hub:         events.NewHub(),
		CfgVal:      &cfgVal,
		UserCfgPath: filepath.Join(t.TempDir(), "config.yml"),
		LoadCfg:     func() (config.Config, error) { return cfg, nil },
		LoadBundle:  func() (*model.Bundle, error) { return testBundle(t, false), nil },
		AdminToken:  token,
	})
	srv := httptest.NewServer(Chain(mux, RequestID, Recover, AccessLog, Cors))
	t.Cleanup(srv.Close)
	return srv, a
}

func postJSON(t *testing.T, url, body string, header map[string]string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv, _ := testServer(t, "")

	body := `{
		"title": "Data Entry - Work From Home",
		"description": "URGENT HIRING! Easy money, guaranteed income. No interview, instant hire. Pay a small registration fee to start. Contact us only on whatsapp.",
		"contact_email": "globalpayfast@gmail.com"
	}`

	resp, raw := postJSON(t, srv.URL+"/api/analyze", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}

	var res domain.AnalysisResult
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatal(err)
	}
	if !res.IsFake {
		t.Fatalf("expected fake verdict, got %+v", res)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}
}

func TestAnalyzeEndpointFreeText(t *testing.T) {
	srv, _ := testServer(t, "")

	body := `{"input": "Job Title: Backend Engineer\nCompany: Acme Corp\nWe build billing infrastructure and you will work with a careful team on real systems, reviewing designs and improving tooling.\nRequirements: 3 years of experience"}`
	resp, raw := postJSON(t, srv.URL+"/api/analyze", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}
	var res domain.AnalysisResult
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatal(err)
	}
	if res.JobTitle != "Backend Engineer" {
		t.Fatalf("parsed title = %q", res.JobTitle)
	}
	if res.IsFake {
		t.Fatalf("clean text marked fake: %+v", res)
	}
}

func TestAnalyzeEndpointRejectsShortInput(t *testing.T) {
	srv, _ := testServer(t, "")
	resp, raw := postJSON(t, srv.URL+"/api/analyze", `{"input": "too short"}`, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}
}

func TestAnalyzeEndpointRejectsURLInput(t *testing.T) {
	srv, _ := testServer(t, "")
	resp, raw := postJSON(t, srv.URL+"/api/analyze", `{"input": "https://example.com/job/123"}`, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}
	var e APIError
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatal(err)
	}
	if e.Error.Code != "url_input" {
		t.Fatalf("code = %q", e.Error.Code)
	}
}

func TestAnalyzeEndpointRejectsEmptyBody(t *testing.T) {
	srv, _ := testServer(t, "")
	resp, _ := postJSON(t, srv.URL+"/api/analyze", `{}`, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestBatchEndpoint(t *testing.T) {
	srv, _ := testServer(t, "")

	body := `{"postings": [
		{"title": "Backend Engineer", "description": "We build billing infrastructure and you will work with a careful team on real systems, reviewing designs and improving tooling over time.", "requirements": "3 years of experience"},
		{"input": "x"}
	]}`
	resp, raw := postJSON(t, srv.URL+"/api/analyze/batch", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		Results []BatchItem `json:"results"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("got %d results", len(out.Results))
	}
	if out.Results[0].Result == nil || out.Results[0].Error != "" {
		t.Fatalf("first item should succeed: %+v", out.Results[0])
	}
	if out.Results[1].Result != nil || out.Results[1].Error == "" {
		t.Fatalf("second item should fail per-item: %+v", out.Results[1])
	}
}

func TestBatchEndpointLimit(t *testing.T) {
	srv, _ := testServer(t, "")

	// Limit is 3 in the test config; send 4.
	item := `{"title": "t", "description": "d"}`
	body := `{"postings": [` + strings.Join([]string{item, item, item, item}, ",") + `]}`
	resp, _ := postJSON(t, srv.URL+"/api/analyze/batch", body, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestModelEndpoint(t *testing.T) {
	srv, _ := testServer(t, "")

	resp, err := http.Get(srv.URL + "/api/model")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var info struct {
		Version  string `json:"version"`
		Dim      int    `json:"dim"`
		Degraded bool   `json:"degraded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "test-1" {
		t.Fatalf("version = %q", info.Version)
	}
	if info.Dim != 2+model.EngineeredFeatures {
		t.Fatalf("dim = %d", info.Dim)
	}
	if info.Degraded {
		t.Fatal("bundle with forest reported degraded")
	}
}

func TestModelReloadRequiresToken(t *testing.T) {
	srv, _ := testServer(t, "sesame")

	resp, _ := postJSON(t, srv.URL+"/api/model/reload", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d without token", resp.StatusCode)
	}

	resp, raw := postJSON(t, srv.URL+"/api/model/reload", "",
		map[string]string{"Authorization": "Bearer sesame"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d with token: %s", resp.StatusCode, raw)
	}
}

func TestModelReloadSwapsBundle(t *testing.T) {
	srv, a := testServer(t, "sesame")

	resp, _ := postJSON(t, srv.URL+"/api/model/reload", "",
		map[string]string{"Authorization": "Bearer sesame"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	// The injected loader returns a forest-less bundle.
	if a.Bundle().HasForest() {
		t.Fatal("bundle did not swap")
	}
}

func TestModelReloadDisabledWithoutToken(t *testing.T) {
	srv, _ := testServer(t, "")
	resp, _ := postJSON(t, srv.URL+"/api/model/reload", "", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestDomainsEndpoints(t *testing.T) {
	srv, _ := testServer(t, "")

	resp, err := http.Get(srv.URL + "/api/domains/acme")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("uncached lookup: status %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/domains/acme",
		strings.NewReader(`{"domain": "acme.com"}`))
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	putResp.Body.Close()
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("put: status %d", putResp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/domains/acme")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Domain != "acme.com" {
		t.Fatalf("domain = %q", out.Domain)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := testServer(t, "")
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out struct {
		OK    bool   `json:"ok"`
		Model string `json:"model"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.OK || out.Model != "test-1" {
		t.Fatalf("got %+v", out)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t, "")
	resp, err := http.Get(srv.URL + "/api/analyze")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
