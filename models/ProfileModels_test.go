package models

import (
	"math"
	"testing"
)

func TestGetProfileFallsBackToKP1(t *testing.T) {
	cases := []struct {
		id       string
		wantName string
	}{
		{"kp1", KP1.Name},
		{"kp2", KP2.Name},
		{"kp3", KP3.Name},
		{"", KP1.Name},
		{"unknown", KP1.Name},
	}
	for _, tc := range cases {
		if got := GetProfile(tc.id); got.Name != tc.wantName {
			t.Errorf("GetProfile(%q).Name = %q, want %q", tc.id, got.Name, tc.wantName)
		}
	}
}

func TestPoolTypeProfileMapping(t *testing.T) {
	cases := []struct {
		poolType string
		want     string
	}{
		{"liner", "kp1"},
		{"tile", "kp2"},
		{"mosaic", "kp3"},
		{"", "kp1"},
		{"granite", "kp1"},
	}
	for _, tc := range cases {
		if got := ProfileIDForPoolType(tc.poolType); got != tc.want {
			t.Errorf("ProfileIDForPoolType(%q) = %q, want %q", tc.poolType, got, tc.want)
		}
	}

	for _, id := range ProfileOrder {
		poolType := PoolTypeForProfileID(id)
		if got := ProfileIDForPoolType(poolType); got != id {
			t.Errorf("round trip for %q via %q gave %q", id, poolType, got)
		}
	}
}

func TestDimensionsCorrectionFactorReferencePool(t *testing.T) {
	factors := DimensionsCorrectionFactor("kp1", Dimensions{Length: 8000, Width: 4000, Depth: 1500, WallThickness: 200})

	// 8x4 m matches the kp1 reference water surface and volume exactly; the
	// perimeter was priced with a margin over the geometric value.
	if math.Abs(factors.WaterSurface-1.0) > 1e-9 {
		t.Errorf("water surface factor = %v, want 1.0", factors.WaterSurface)
	}
	if math.Abs(factors.WaterVolume-1.0) > 1e-9 {
		t.Errorf("water volume factor = %v, want 1.0", factors.WaterVolume)
	}
	if math.Abs(factors.Perimeter-26.0/24.0) > 1e-9 {
		t.Errorf("perimeter factor = %v, want %v", factors.Perimeter, 26.0/24.0)
	}
	if math.Abs(factors.FinishingArea-71.6/68.0) > 1e-9 {
		t.Errorf("finishing area factor = %v, want %v", factors.FinishingArea, 71.6/68.0)
	}
}

func TestDimensionsCorrectionFactorZeroGuard(t *testing.T) {
	factors := DimensionsCorrectionFactor("kp2", Dimensions{})
	if factors.WaterSurface != 1 || factors.Perimeter != 1 || factors.WallArea != 1 ||
		factors.FinishingArea != 1 || factors.WaterVolume != 1 {
		t.Errorf("zero dimensions must yield neutral factors, got %+v", factors)
	}
}

func TestProfilePrices(t *testing.T) {
	for _, id := range ProfileOrder {
		p := Profiles[id]
		if len(p.MaterialsPrices) == 0 || len(p.WorksPrices) == 0 {
			t.Errorf("%s: price tables must not be empty", id)
		}
		if p.Costs.TotalCost != p.Costs.MaterialsTotal+p.Costs.WorksTotal+p.Costs.EquipmentTotal {
			t.Errorf("%s: total %v != materials+works+equipment", id, p.Costs.TotalCost)
		}
	}
}
