package handlers

import (
	"testing"

	"poolcalc/models"
)

func TestCalculateKPItemsReferencePool(t *testing.T) {
	items := CalculateKPItems(referenceDims, "liner", "kp1")

	if len(items.EquipmentItems) != 17 {
		t.Errorf("equipment rows = %d, want 17", len(items.EquipmentItems))
	}
	if len(items.MaterialsItems) != 7 {
		t.Errorf("materials rows = %d, want 7", len(items.MaterialsItems))
	}
	if len(items.WorksItems) != 6 {
		t.Errorf("works rows = %d, want 6", len(items.WorksItems))
	}

	if !almostEqual(items.TotalCost, items.EquipmentTotal+items.MaterialsTotal+items.WorksTotal) {
		t.Errorf("total %v != sum of sections %v", items.TotalCost,
			items.EquipmentTotal+items.MaterialsTotal+items.WorksTotal)
	}

	// The reference pool scales each section close to the profile totals.
	profile := models.GetProfile("kp1")
	sections := []struct {
		name      string
		got       float64
		reference float64
	}{
		{"equipment", items.EquipmentTotal, profile.Costs.EquipmentTotal},
		{"materials", items.MaterialsTotal, profile.Costs.MaterialsTotal},
		{"works", items.WorksTotal, profile.Costs.WorksTotal},
	}
	for _, s := range sections {
		if s.got < 0.9*s.reference || s.got > 1.1*s.reference {
			t.Errorf("%s total = %v, outside 10%% of reference %v", s.name, s.got, s.reference)
		}
	}
}

func TestCalculateKPItemsQuantities(t *testing.T) {
	items := CalculateKPItems(referenceDims, "liner", "kp1")

	byName := func(list []models.KPItem, name string) (models.KPItem, bool) {
		for _, item := range list {
			if item.Name == name {
				return item, true
			}
		}
		return models.KPItem{}, false
	}

	skimmer, ok := byName(items.EquipmentItems, "Скиммер под лайнер Aquaviva Wide EM0020V")
	if !ok {
		t.Fatal("skimmer row missing")
	}
	if skimmer.Qty != 1 {
		t.Errorf("skimmer qty = %v, want 1", skimmer.Qty)
	}

	excavation, ok := byName(items.MaterialsItems, "Выемка грунта под бассейн механизированным способом")
	if !ok {
		t.Fatal("excavation row missing")
	}
	if excavation.Qty != 122 {
		t.Errorf("excavation qty = %v, want 122", excavation.Qty)
	}

	rebarTying, ok := byName(items.WorksItems, "Вязка арматуры для чаши бассейна")
	if !ok {
		t.Fatal("rebar tying row missing")
	}
	if rebarTying.Qty != 68 {
		t.Errorf("rebar tying qty = %v, want 68", rebarTying.Qty)
	}
}

func TestCalculateKPItemsSmallPoolMinimums(t *testing.T) {
	small := models.Dimensions{Length: 3000, Width: 2000, Depth: 1200, WallThickness: 200}
	items := CalculateKPItems(small, "liner", "kp1")

	for _, item := range items.EquipmentItems {
		if item.Qty < 1 {
			t.Errorf("equipment %q qty = %v, want >= 1", item.Name, item.Qty)
		}
	}
	for _, item := range items.MaterialsItems {
		if item.Qty < 0 {
			t.Errorf("material %q qty = %v, negative", item.Name, item.Qty)
		}
	}
}

func TestScaleTotal(t *testing.T) {
	cases := []struct {
		reference float64
		scale     float64
		want      float64
	}{
		{1000, 0.5, 500},
		{817876, 1, 817876},
		{100, 0.333, 33},
	}
	for _, tc := range cases {
		if got := scaleTotal(tc.reference, tc.scale); got != tc.want {
			t.Errorf("scaleTotal(%v, %v) = %v, want %v", tc.reference, tc.scale, got, tc.want)
		}
	}
}
