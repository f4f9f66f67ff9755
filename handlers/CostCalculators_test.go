package handlers

import (
	"testing"

	"poolcalc/models"
)

func TestFinishingCostLinerPool(t *testing.T) {
	fc := CalculateFinishingCost("kp1", models.GetProfile("kp1"), 71.6, 26.0)

	if fc.Lining == nil {
		t.Fatal("liner pool must price the lining")
	}
	if !almostEqual(fc.Lining.Cost, 386640) {
		t.Errorf("lining cost = %v, want 386640", fc.Lining.Cost)
	}
	if !almostEqual(fc.CopingStone.Total, 135200) {
		t.Errorf("coping stone total = %v, want 135200", fc.CopingStone.Total)
	}
	if fc.WorkCost != 0 {
		t.Errorf("liner pool work cost = %v, want 0", fc.WorkCost)
	}
	if !almostEqual(fc.TotalCost, 521840) {
		t.Errorf("total cost = %v, want 521840", fc.TotalCost)
	}
	if fc.TotalCostStr != "521 840 руб." {
		t.Errorf("total cost string = %q, want %q", fc.TotalCostStr, "521 840 руб.")
	}
}

func TestFinishingCostTilePool(t *testing.T) {
	fc := CalculateFinishingCost("kp2", models.GetProfile("kp2"), 57.0, 22.0)

	if fc.Lining != nil {
		t.Error("tile pool must not price a lining")
	}
	if len(fc.Materials) != 4 {
		t.Errorf("tile materials rows = %d, want 4", len(fc.Materials))
	}
	if len(fc.Works) != 2 {
		t.Errorf("tile works rows = %d, want 2", len(fc.Works))
	}
	if fc.CopingStone.Total != 0 {
		t.Errorf("tile pool coping stone total = %v, want 0", fc.CopingStone.Total)
	}
	// tile 2500 + grout 300 + adhesive 400 + waterproofing 800 per m²
	if !almostEqual(fc.MaterialCost, 57*4000) {
		t.Errorf("material cost = %v, want %v", fc.MaterialCost, 57.0*4000)
	}
	// laying 2500 + grouting 300 per m²
	if !almostEqual(fc.WorkCost, 57*2800) {
		t.Errorf("work cost = %v, want %v", fc.WorkCost, 57.0*2800)
	}
	if !almostEqual(fc.TotalCost, fc.MaterialCost+fc.WorkCost) {
		t.Errorf("total cost = %v, want materials+works", fc.TotalCost)
	}
}

func TestFinishingCostSimplifiedPool(t *testing.T) {
	fc := CalculateFinishingCost("kp3", models.GetProfile("kp3"), 57.0, 22.0)

	if !almostEqual(fc.MaterialCost, 57*3000) {
		t.Errorf("material cost = %v, want %v", fc.MaterialCost, 57.0*3000)
	}
	if !almostEqual(fc.WorkCost, 57*2000) {
		t.Errorf("work cost = %v, want %v", fc.WorkCost, 57.0*2000)
	}
	if fc.CopingStone.Total != 0 {
		t.Errorf("coping stone total = %v, want 0", fc.CopingStone.Total)
	}
}

func TestCostCategoryBreakdowns(t *testing.T) {
	cases := []struct {
		profileID      string
		materialsRows  int
		worksRows      int
		materialsTotal float64
		worksTotal     float64
	}{
		{"kp1", 7, 9, 817876, 931860},
		{"kp2", 3, 5, 583398, 615690},
		{"kp3", 3, 4, 320631, 394284},
	}

	for _, tc := range cases {
		profile := models.GetProfile(tc.profileID)

		mc := CalculateMaterialsCost(tc.profileID, profile)
		if len(mc.Materials) != tc.materialsRows {
			t.Errorf("%s: materials rows = %d, want %d", tc.profileID, len(mc.Materials), tc.materialsRows)
		}
		if mc.TotalCost != tc.materialsTotal {
			t.Errorf("%s: materials total = %v, want %v", tc.profileID, mc.TotalCost, tc.materialsTotal)
		}

		wc := CalculateWorksCost(tc.profileID, profile)
		if len(wc.Works) != tc.worksRows {
			t.Errorf("%s: works rows = %d, want %d", tc.profileID, len(wc.Works), tc.worksRows)
		}
		if wc.TotalCost != tc.worksTotal {
			t.Errorf("%s: works total = %v, want %v", tc.profileID, wc.TotalCost, tc.worksTotal)
		}
	}
}
