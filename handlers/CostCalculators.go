package handlers

import (
	"poolcalc/models"
	"poolcalc/utils"

	"github.com/shopspring/decimal"
)

// money multiplies an area or length by a unit price without accumulating
// binary float error, returning whole rubles.
func money(quantity, price float64) float64 {
	v, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price)).Float64()
	return v
}

const (
	linerPricePerM2       = 5400
	copingStonePricePerM  = 5200
	defaultMaterialsPerM2 = 3000
	defaultWorksPerM2     = 2000
)

// CalculateFinishingCost prices the pool finishing for the given profile.
// Liner pools (kp1) price the liner plus coping stone, tile pools (kp2)
// itemize tile materials and laying works, other profiles use flat per-m²
// rates. The coping stone entry is always present; for non-liner profiles
// its total is zero.
func CalculateFinishingCost(profileID string, profile models.Profile, finishingArea, perimeter float64) models.FinishingCost {
	fc := models.FinishingCost{
		Area:      finishingArea,
		Perimeter: perimeter,
	}

	switch profileID {
	case "kp1":
		liningCost := money(finishingArea, linerPricePerM2)
		copingCost := money(perimeter, copingStonePricePerM)

		fc.Lining = &models.CostEntry{Cost: liningCost, CostStr: utils.FormatRub(liningCost)}
		fc.CopingStone = models.CopingStone{
			Cost:    copingCost,
			Total:   copingCost,
			CostStr: utils.FormatRub(copingCost),
		}
		fc.MaterialCost = liningCost
		fc.WorkCost = 0
		fc.TotalCost = liningCost + copingCost

	case "kp2":
		prices := profile.MaterialsPrices
		tileCost := money(finishingArea, prices["tile"])
		groutCost := money(finishingArea, prices["grout"])
		adhesiveCost := money(finishingArea, prices["tile_adhesive"])
		waterproofingCost := money(finishingArea, prices["waterproofing"])

		layingCost := money(finishingArea, profile.WorksPrices["tile_laying"])
		groutingCost := money(finishingArea, profile.WorksPrices["grouting"])

		fc.Materials = map[string]string{
			"Плитка":          utils.FormatRub(tileCost),
			"Затирка":         utils.FormatRub(groutCost),
			"Клей для плитки": utils.FormatRub(adhesiveCost),
			"Гидроизоляция":   utils.FormatRub(waterproofingCost),
		}
		fc.Works = map[string]string{
			"Укладка плитки": utils.FormatRub(layingCost),
			"Затирка швов":   utils.FormatRub(groutingCost),
		}
		fc.CopingStone = models.CopingStone{CostStr: utils.FormatRub(0)}
		fc.MaterialCost = tileCost + groutCost + adhesiveCost + waterproofingCost
		fc.WorkCost = layingCost + groutingCost
		fc.TotalCost = fc.MaterialCost + fc.WorkCost

	default:
		fc.CopingStone = models.CopingStone{CostStr: utils.FormatRub(0)}
		fc.MaterialCost = money(finishingArea, defaultMaterialsPerM2)
		fc.WorkCost = money(finishingArea, defaultWorksPerM2)
		fc.TotalCost = fc.MaterialCost + fc.WorkCost
	}

	fc.MaterialCostStr = utils.FormatRub(fc.MaterialCost)
	fc.WorkCostStr = utils.FormatRub(fc.WorkCost)
	fc.TotalCostStr = utils.FormatRub(fc.TotalCost)
	return fc
}

// Display category splits per profile. The figures come from the priced
// proposals, not from the geometry.
var materialsCategories = map[string]map[string]float64{
	"kp1": {
		"Земляные работы":           48800,
		"Транспорт":                 97500,
		"Песок и щебень":            17300,
		"Материалы опалубки":        144500,
		"Арматура и сопутствующие":  177000,
		"Бетон с доставкой":         169750,
		"Вспомогательные материалы": 162026,
	},
	"kp2": {
		"Строительные материалы":    275000,
		"Отделочные материалы":      180000,
		"Вспомогательные материалы": 128398,
	},
	"kp3": {
		"Строительные материалы":    180000,
		"Отделочные материалы":      90000,
		"Вспомогательные материалы": 50631,
	},
}

var worksCategories = map[string]map[string]float64{
	"kp1": {
		"Подготовительные работы": 73000,
		"Земляные работы":         29000,
		"Бетонирование":           177600,
		"Опалубка и армирование":  204260,
		"Монтаж закладных":        40500,
		"Обратная засыпка":        50400,
		"Отделочные работы":       252100,
		"Монтаж бортового камня":  65000,
		"Разгрузка материалов":    30000,
	},
	"kp2": {
		"Подготовительные и земляные работы": 120000,
		"Бетонные работы":                    180000,
		"Опалубка и армирование":             105000,
		"Отделочные работы":                  170690,
		"Монтаж бортового камня":             40000,
	},
	"kp3": {
		"Подготовительные и земляные работы": 90000,
		"Бетонные работы":                    104284,
		"Опалубка и армирование":             90000,
		"Отделочные работы":                  110000,
	},
}

func formatCategories(categories map[string]float64) map[string]string {
	out := make(map[string]string, len(categories))
	for name, cost := range categories {
		out[name] = utils.FormatRub(cost)
	}
	return out
}

// CalculateMaterialsCost returns the profile's materials total with its
// display category breakdown.
func CalculateMaterialsCost(profileID string, profile models.Profile) models.MaterialsCost {
	return models.MaterialsCost{
		Materials:    formatCategories(materialsCategories[profileID]),
		TotalCost:    profile.Costs.MaterialsTotal,
		TotalCostStr: utils.FormatRub(profile.Costs.MaterialsTotal),
	}
}

// CalculateWorksCost returns the profile's works total with its display
// category breakdown.
func CalculateWorksCost(profileID string, profile models.Profile) models.WorksCost {
	return models.WorksCost{
		Works:        formatCategories(worksCategories[profileID]),
		TotalCost:    profile.Costs.WorksTotal,
		TotalCostStr: utils.FormatRub(profile.Costs.WorksTotal),
	}
}
