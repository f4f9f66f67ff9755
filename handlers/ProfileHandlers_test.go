package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"poolcalc/models"

	"github.com/gin-gonic/gin"
)

func newProfileRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/get_profiles", GetProfilesHandler())
	r.GET("/get_profile/:profile_id", GetProfileHandler())
	r.POST("/get_dimensions_correction", GetDimensionsCorrectionHandler())
	r.POST("/get_prices", GetPricesHandler())
	r.POST("/get_costs", GetCostsHandler())
	return r
}

func TestGetProfilesOrder(t *testing.T) {
	r := newProfileRouter()
	req := httptest.NewRequest(http.MethodGet, "/get_profiles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Profiles []models.ProfileRef `json:"profiles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	want := []string{"kp1", "kp2", "kp3"}
	if len(resp.Profiles) != len(want) {
		t.Fatalf("profiles = %d, want %d", len(resp.Profiles), len(want))
	}
	for i, id := range want {
		if resp.Profiles[i].ID != id {
			t.Errorf("profiles[%d] = %q, want %q", i, resp.Profiles[i].ID, id)
		}
	}
}

func TestGetProfileByID(t *testing.T) {
	r := newProfileRouter()

	req := httptest.NewRequest(http.MethodGet, "/get_profile/kp2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Profile models.Profile `json:"profile"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Profile.Name != "КП №2 (8000x3000x1500)" {
		t.Errorf("profile name = %q", resp.Profile.Name)
	}
}

func TestGetProfileUnknownID(t *testing.T) {
	r := newProfileRouter()

	req := httptest.NewRequest(http.MethodGet, "/get_profile/kp9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["error"] != "Неизвестный профиль КП: kp9" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestGetDimensionsCorrection(t *testing.T) {
	r := newProfileRouter()
	w := postJSON(t, r, "/get_dimensions_correction",
		`{"length": 8000, "width": 4000, "depth": 1500, "profile_id": "kp1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		CorrectionFactors models.CorrectionFactors `json:"correction_factors"`
		Profile           string                   `json:"profile"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !almostEqual(resp.CorrectionFactors.WaterSurface, 1.0) {
		t.Errorf("water surface factor = %v, want 1.0", resp.CorrectionFactors.WaterSurface)
	}
	if !almostEqual(resp.CorrectionFactors.WaterVolume, 1.0) {
		t.Errorf("water volume factor = %v, want 1.0", resp.CorrectionFactors.WaterVolume)
	}
	if resp.Profile != "КП №1 (8000x4000x1500)" {
		t.Errorf("profile = %q", resp.Profile)
	}
}

func TestGetDimensionsCorrectionRejectsNonPositive(t *testing.T) {
	r := newProfileRouter()
	w := postJSON(t, r, "/get_dimensions_correction", `{"length": 0, "width": 4000, "depth": 1500}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["error"] != "Все параметры должны быть положительными числами" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestGetPricesDefaultsToKP1(t *testing.T) {
	r := newProfileRouter()
	w := postJSON(t, r, "/get_prices", `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		MaterialsPrices map[string]float64 `json:"materials_prices"`
		WorksPrices     map[string]float64 `json:"works_prices"`
		Profile         string             `json:"profile"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.MaterialsPrices["concrete"] != 5000 {
		t.Errorf("concrete price = %v, want 5000", resp.MaterialsPrices["concrete"])
	}
	if resp.WorksPrices["tile_laying"] != 2500 {
		t.Errorf("tile laying price = %v, want 2500", resp.WorksPrices["tile_laying"])
	}
	if resp.Profile != "КП №1 (8000x4000x1500)" {
		t.Errorf("profile = %q", resp.Profile)
	}
}

func TestGetCosts(t *testing.T) {
	r := newProfileRouter()
	w := postJSON(t, r, "/get_costs", `{"profile_id": "kp3"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Costs models.ProfileCosts `json:"costs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Costs.TotalCost != 1443609 {
		t.Errorf("kp3 total = %v, want 1443609", resp.Costs.TotalCost)
	}
}
