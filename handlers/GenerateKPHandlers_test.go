package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"poolcalc/models"

	"github.com/gin-gonic/gin"
)

func newGenerateKPRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate_kp", GenerateKPHandler(nil))
	return r
}

func validKPRequest() models.GenerateKPRequest {
	return models.GenerateKPRequest{
		CalculateRequest: models.CalculateRequest{
			Length:        floatPtr(8000),
			Width:         floatPtr(4000),
			Depth:         floatPtr(1500),
			WallThickness: floatPtr(200),
			ProfileID:     "kp1",
		},
		Customer: models.Customer{
			Name:    "Иванов Иван Иванович",
			Address: "г. Москва, ул. Садовая, д. 1",
			Phone:   "+7 900 000-00-00",
			Email:   "ivanov@example.com",
		},
	}
}

func TestGenerateKP(t *testing.T) {
	resp, err := GenerateKP(nil, validKPRequest())
	if err != nil {
		t.Fatalf("GenerateKP: %v", err)
	}

	if !strings.HasPrefix(resp.Reference, "KP") {
		t.Errorf("reference = %q, want KP prefix", resp.Reference)
	}
	if resp.GenerationDate != time.Now().Format("02.01.2006") {
		t.Errorf("generation date = %q", resp.GenerationDate)
	}
	if resp.TotalInWords == "" {
		t.Error("total in words is empty")
	}
	if resp.Customer.Name != "Иванов Иван Иванович" {
		t.Errorf("customer name = %q", resp.Customer.Name)
	}
	if resp.Costs.Total <= 0 {
		t.Errorf("total = %v, want positive", resp.Costs.Total)
	}
}

func TestGenerateKPResponseIsFlat(t *testing.T) {
	resp, err := GenerateKP(nil, validKPRequest())
	if err != nil {
		t.Fatalf("GenerateKP: %v", err)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Calculation sections sit next to the proposal fields, not nested.
	for _, key := range []string{"basic_dimensions", "costs", "kp_items",
		"customer", "reference", "generation_date", "total_in_words"} {
		if _, ok := m[key]; !ok {
			t.Errorf("proposal payload missing %q", key)
		}
	}
}

func TestGenerateKPHandlerValidation(t *testing.T) {
	r := newGenerateKPRouter()

	cases := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			"missing dimensions",
			`{"customer": {"name": "A", "address": "B", "phone": "C"}}`,
			"Отсутствует параметр length",
		},
		{
			"unknown profile",
			`{"length": 8000, "width": 4000, "depth": 1500, "wall_thickness": 200,
			  "profile_id": "kp9",
			  "customer": {"name": "A", "address": "B", "phone": "C"}}`,
			"Неизвестный профиль КП: kp9",
		},
		{
			"missing customer fields",
			`{"length": 8000, "width": 4000, "depth": 1500, "wall_thickness": 200,
			  "customer": {"name": "Иванов"}}`,
			"Отсутствуют обязательные данные заказчика: address, phone",
		},
		{
			"malformed body",
			`not json`,
			"Не получены данные",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/generate_kp", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}
			if resp["error"] != tc.wantError {
				t.Errorf("error = %q, want %q", resp["error"], tc.wantError)
			}
		})
	}
}

func TestGenerateKPHandlerSuccess(t *testing.T) {
	r := newGenerateKPRouter()
	w := postJSON(t, r, "/generate_kp",
		`{"length": 8000, "width": 4000, "depth": 1500, "wall_thickness": 200,
		  "pool_type": "tile",
		  "customer": {"name": "Петров", "address": "СПб", "phone": "+7 911 000-00-00"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.GenerateKPResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.PoolData.Profile.ID != "kp2" {
		t.Errorf("profile id = %q, want kp2", resp.PoolData.Profile.ID)
	}
	if resp.Reference == "" {
		t.Error("reference is empty")
	}
}
