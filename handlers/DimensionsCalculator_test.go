package handlers

import (
	"math"
	"testing"

	"poolcalc/models"
)

var referenceDims = models.Dimensions{Length: 8000, Width: 4000, Depth: 1500, WallThickness: 200}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculateBasicDimensionsReferencePool(t *testing.T) {
	factors := models.DimensionsCorrectionFactor("kp1", referenceDims)
	result, raw := CalculateBasicDimensions(referenceDims, factors)

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"water surface", raw.WaterSurface, 32.0},
		{"perimeter", raw.Perimeter, 26.0},
		{"wall area", raw.WallArea, 39.6},
		{"finishing area", raw.FinishingArea, 71.6},
		{"water volume", raw.WaterVolume, 48.0},
	}
	for _, tc := range cases {
		if !almostEqual(tc.got, tc.want) {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}

	labels := []struct {
		label string
		want  string
	}{
		{"Глубина", "1500 мм"},
		{"Длина внутренняя", "8000 мм"},
		{"Ширина внутренняя", "4000 мм"},
		{"Площадь водного зеркала", "32.0 м²"},
		{"Периметр", "26.0 м/п"},
		{"Площадь отделки", "71.6 м²"},
		{"Общая площадь", "71.6 м²"},
		{"Объем воды", "48.0 м³"},
	}
	for _, tc := range labels {
		got, ok := result[tc.label].(string)
		if !ok {
			t.Errorf("missing label %q", tc.label)
			continue
		}
		if got != tc.want {
			t.Errorf("%s = %q, want %q", tc.label, got, tc.want)
		}
	}

	if _, ok := result["_raw"].(models.RawDimensions); !ok {
		t.Error("expected _raw entry with raw dimensions")
	}
}

func TestCalculateEarthworksReferencePool(t *testing.T) {
	result := CalculateEarthworks(referenceDims)

	cases := []struct {
		label string
		want  string
	}{
		{"Глубина котлована", "1900 мм"},
		{"Длина котлована", "10000 мм"},
		{"Ширина котлована", "6000 мм"},
		{"Площадь котлована", "60.0 м²"},
		{"Объем земляных работ", "114.0 м³"},
		{"Объем вывоза грунта", "114.0 м³"},
		{"Количество КАМАЗов", "17"},
	}
	for _, tc := range cases {
		if got := result[tc.label]; got != tc.want {
			t.Errorf("%s = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestCalculateConcreteWorksReferencePool(t *testing.T) {
	result := CalculateConcreteWorks(referenceDims)

	cases := []struct {
		label string
		want  string
	}{
		{"Объем щебня", "3.7 м³"},
		{"Объем бетона основания", "7.4 м³"},
		{"Объем бетона стен", "7.2 м³"},
		{"Общий объем бетона", "14.6 м³"},
		{"Вес арматуры", "1459 кг"},
	}
	for _, tc := range cases {
		if got := result[tc.label]; got != tc.want {
			t.Errorf("%s = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestCalculateFormworkReferencePool(t *testing.T) {
	result := CalculateFormwork(referenceDims)

	if got := result["Количество листов фанеры"]; got != "43" {
		t.Errorf("plywood sheets = %q, want %q", got, "43")
	}
	if got := result["Вес арматуры"]; got != "340 кг" {
		t.Errorf("rebar weight = %q, want %q", got, "340 кг")
	}
	if got := result["Общая площадь опалубки"]; got != "79.5 м²" {
		t.Errorf("total formwork = %q, want %q", got, "79.5 м²")
	}
}

func TestCorrectionFactorGuardsZeroDimensions(t *testing.T) {
	factors := models.DimensionsCorrectionFactor("kp1", models.Dimensions{})
	if factors.WaterSurface != 1 || factors.Perimeter != 1 || factors.WaterVolume != 1 {
		t.Errorf("zero dimensions must yield neutral factors, got %+v", factors)
	}
}
