package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-matcher/internal/matcher"
	"github.com/codyseavey/tcg-matcher/internal/ratelimit"
	"github.com/codyseavey/tcg-matcher/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, limiter *ratelimit.KeyedRateLimiter) *gin.Engine {
	t.Helper()
	matchService := services.NewMatchService(matcher.DefaultOptions(), 2, 4)
	return SetupRouter(matchService, services.NewConsolidationService(matchService), limiter)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type matchResponse struct {
	RunID      string                     `json:"run_id"`
	Game       string                     `json:"game"`
	Threshold  float64                    `json:"threshold"`
	Matches    map[string]json.RawMessage `json:"matches"`
	GroupCount int                        `json:"group_count"`
}

func TestHealth(t *testing.T) {
	w := doJSON(newTestRouter(t, nil), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestMatchEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	body := `{
		"queries": ["Pikachu EX - Holo Rare", null, 42, "Unrelated Widget"],
		"candidates": [null, "Pikachu EX (Holográfica)", "Charizard-GX Arte Completo"],
		"tcg_type": "pokemon",
		"threshold": 0.8
	}`
	w := doJSON(router, http.MethodPost, "/api/match", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp matchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Game != "pokemon" {
		t.Errorf("game = %q, want pokemon", resp.Game)
	}
	if resp.Threshold != 0.8 {
		t.Errorf("threshold = %v, want 0.8", resp.Threshold)
	}
	// null and 42 both collapse to the empty query
	if len(resp.Matches) != 3 {
		t.Errorf("len(matches) = %d, want 3: %v", len(resp.Matches), resp.Matches)
	}
	if string(resp.Matches[""]) != "null" {
		t.Errorf("empty query = %s, want null", resp.Matches[""])
	}
	if string(resp.Matches["Unrelated Widget"]) != "null" {
		t.Errorf("unrelated query = %s, want null", resp.Matches["Unrelated Widget"])
	}

	var hit struct {
		Card         string             `json:"card"`
		Score        float64            `json:"score"`
		ScoresDetail map[string]float64 `json:"scores_detail"`
	}
	if err := json.Unmarshal(resp.Matches["Pikachu EX - Holo Rare"], &hit); err != nil {
		t.Fatalf("decode match: %v", err)
	}
	if hit.Card != "Pikachu EX (Holográfica)" {
		t.Errorf("card = %q", hit.Card)
	}
	if hit.Score < 80 {
		t.Errorf("score = %v, want >= 80", hit.Score)
	}
	if _, ok := hit.ScoresDetail["prefix_bonus"]; !ok {
		t.Errorf("scores_detail missing prefix_bonus: %v", hit.ScoresDetail)
	}

	w = doJSON(router, http.MethodGet, "/api/match/runs/"+resp.RunID+"/groups", "")
	if w.Code != http.StatusOK {
		t.Fatalf("groups status = %d, body = %s", w.Code, w.Body.String())
	}
	var groups struct {
		Keys       []string            `json:"keys"`
		Groups     map[string][]string `json:"groups"`
		Candidates int                 `json:"candidates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode groups: %v", err)
	}
	if groups.Candidates != 3 {
		t.Errorf("candidates = %d, want 3", groups.Candidates)
	}
	if last := groups.Keys[len(groups.Keys)-1]; last != matcher.UngroupedKey {
		t.Errorf("last key = %q, want %q", last, matcher.UngroupedKey)
	}
}

func TestMatchEndpointErrors(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"unsupported game", `{"queries": ["Agumon"], "tcg_type": "digimon"}`, http.StatusBadRequest, "TCG type 'digimon' not supported"},
		{"queries not an array", `{"queries": "Pikachu"}`, http.StatusBadRequest, ""},
		{"threshold out of range", `{"queries": ["Pikachu"], "threshold": 85}`, http.StatusBadRequest, "threshold must be between 0 and 1"},
		{"negative threshold", `{"queries": ["Pikachu"], "threshold": -0.1}`, http.StatusBadRequest, "threshold must be between 0 and 1"},
		{"malformed json", `{"queries": [`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/match", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantErr != "" && !strings.Contains(w.Body.String(), tt.wantErr) {
				t.Errorf("body = %s, want error %q", w.Body.String(), tt.wantErr)
			}
		})
	}
}

func TestMatchEndpointZeroThreshold(t *testing.T) {
	router := newTestRouter(t, nil)

	body := `{
		"queries": ["Pikachu V", "Gengar", "Booster Bundle", "Unrelated Widget"],
		"candidates": ["Pikachu VMAX", "Gengar & Mimikyu GX", "Booster Bundle Sealed", "Pikachu EX"],
		"tcg_type": "pokemon",
		"threshold": 0
	}`
	w := doJSON(router, http.MethodPost, "/api/match", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp matchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Threshold != 0 {
		t.Errorf("threshold = %v, want 0", resp.Threshold)
	}
	for q, m := range resp.Matches {
		if string(m) == "null" {
			t.Errorf("%q unmatched at threshold 0", q)
		}
	}

	// omitting the threshold uses the service default
	w = doJSON(router, http.MethodPost, "/api/match", `{"queries": ["Gengar"], "candidates": ["Gengar"], "tcg_type": "pokemon"}`)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Threshold != matcher.DefaultThreshold {
		t.Errorf("default threshold = %v, want %v", resp.Threshold, matcher.DefaultThreshold)
	}
}

func TestRunGroupsNotFound(t *testing.T) {
	w := doJSON(newTestRouter(t, nil), http.MethodGet, "/api/match/runs/nope/groups", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDetectEndpoint(t *testing.T) {
	w := doJSON(newTestRouter(t, nil), http.MethodPost, "/api/match/detect",
		`{"names": ["Pot of Greed Spell", null, "Mirror Force Trap"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"tcg_detected":"yugioh"`) {
		t.Errorf("body = %s, want yugioh", w.Body.String())
	}
}

func TestConsolidateEndpoint(t *testing.T) {
	body := `{
		"tcg_type": "pokemon",
		"results": {
			"beta": {"singles": [{"name": "Gengar", "price": 3}]},
			"alpha": {"singles": [{"name": "Pikachu EX", "price": 10}], "empty": []},
			"gamma": {}
		}
	}`
	w := doJSON(newTestRouter(t, nil), http.MethodPost, "/api/consolidate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Listings []struct {
			Name     string `json:"name"`
			Store    string `json:"store"`
			Category string `json:"category"`
		} `json:"listings"`
		TotalCount int `json:"total_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalCount != 2 || len(resp.Listings) != 2 {
		t.Fatalf("total_count = %d, listings = %v", resp.TotalCount, resp.Listings)
	}
	if resp.Listings[0].Store != "alpha" || resp.Listings[1].Store != "beta" {
		t.Errorf("listings not in store order: %+v", resp.Listings)
	}
	if resp.Listings[0].Category != "singles" {
		t.Errorf("category = %q, want singles", resp.Listings[0].Category)
	}
}

func TestConsolidateEndpointUnsupportedGame(t *testing.T) {
	w := doJSON(newTestRouter(t, nil), http.MethodPost, "/api/consolidate", `{"tcg_type": "digimon", "results": {}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCompareEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	body := `{
		"tcg_type": "pokemon",
		"base_store": "alpha",
		"other_store": "beta",
		"threshold": 0.8,
		"listings": [
			{"name": "Pikachu EX - Holo Rare", "price": 10, "store": "alpha"},
			{"name": "Gengar", "price": 5, "store": "alpha"},
			{"name": "Pikachu EX (Holográfica)", "price": 8, "store": "beta"}
		]
	}`
	w := doJSON(router, http.MethodPost, "/api/compare", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Matched     int `json:"matched"`
		Unmatched   int `json:"unmatched"`
		Comparisons []struct {
			Match      *struct{ Name string } `json:"match"`
			PriceDelta float64                `json:"price_delta"`
			Cheaper    string                 `json:"cheaper"`
		} `json:"comparisons"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Matched != 1 || resp.Unmatched != 1 {
		t.Errorf("matched/unmatched = %d/%d, want 1/1", resp.Matched, resp.Unmatched)
	}
	if len(resp.Comparisons) != 2 {
		t.Fatalf("len(comparisons) = %d, want 2", len(resp.Comparisons))
	}
	if c := resp.Comparisons[0]; c.Match == nil || c.PriceDelta != -2 || c.Cheaper != "beta" {
		t.Errorf("first comparison = %+v", c)
	}
	if resp.Comparisons[1].Match != nil {
		t.Errorf("Gengar should be unmatched")
	}

	w = doJSON(router, http.MethodPost, "/api/compare", `{"base_store": "alpha", "other_store": "alpha"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("same store status = %d, want 400", w.Code)
	}
	w = doJSON(router, http.MethodPost, "/api/compare", `{"base_store": "alpha"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing other_store status = %d, want 400", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(0.001, 2)
	defer limiter.Stop()
	router := newTestRouter(t, limiter)

	body := `{"names": ["Pikachu"]}`
	for i := 0; i < 2; i++ {
		if w := doJSON(router, http.MethodPost, "/api/match/detect", body); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, w.Code)
		}
	}
	if w := doJSON(router, http.MethodPost, "/api/match/detect", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}

	// health and metrics sit outside the throttled group
	if w := doJSON(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	doJSON(router, http.MethodGet, "/health", "")

	w := doJSON(router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tcg_http_requests_total") {
		t.Error("metrics output missing tcg_http_requests_total")
	}
}
