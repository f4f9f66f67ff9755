package models

// Dimensions holds pool dimensions in millimeters.
type Dimensions struct {
	Length        float64 `json:"length" example:"8000"`
	Width         float64 `json:"width" example:"4000"`
	Depth         float64 `json:"depth" example:"1500"`
	WallThickness float64 `json:"wall_thickness" example:"200"`
}

// ReferenceDimensions are the commercial-proposal dimensions a profile was
// priced against. All values are in meters except WaterVolume (cubic meters).
type ReferenceDimensions struct {
	WaterSurface  float64 `json:"water_surface"`
	Perimeter     float64 `json:"perimeter"`
	WallArea      float64 `json:"wall_area"`
	FinishingArea float64 `json:"finishing_area"`
	WaterVolume   float64 `json:"water_volume"`
}

// ProfileCosts are the reference totals of a commercial proposal, in rubles.
type ProfileCosts struct {
	MaterialsTotal float64 `json:"materials_total"`
	WorksTotal     float64 `json:"works_total"`
	EquipmentTotal float64 `json:"equipment_total"`
	TotalCost      float64 `json:"total_cost"`
}

// Profile is a commercial proposal profile: reference dimensions, reference
// totals and unit prices used to scale a new estimate.
type Profile struct {
	Name            string              `json:"name"`
	Dimensions      Dimensions          `json:"dimensions"`
	BasicDimensions ReferenceDimensions `json:"basic_dimensions"`
	Costs           ProfileCosts        `json:"costs"`
	MaterialsPrices map[string]float64  `json:"materials_prices"`
	WorksPrices     map[string]float64  `json:"works_prices"`
}

var standardMaterialsPrices = map[string]float64{
	"concrete":      5000,
	"rebar":         80000,
	"pvc_film":      1200,
	"tile":          2500,
	"grout":         300,
	"waterproofing": 800,
	"tile_adhesive": 400,
}

var standardWorksPrices = map[string]float64{
	"earthworks":             1500,
	"concrete_works":         3500,
	"reinforcement":          2500,
	"waterproofing":          800,
	"tile_laying":            2500,
	"grouting":               300,
	"equipment_installation": 15000,
	"commissioning":          20000,
}

// KP1 is the liner pool proposal, 8000x4000x1500 mm.
var KP1 = Profile{
	Name:       "КП №1 (8000x4000x1500)",
	Dimensions: Dimensions{Length: 8000, Width: 4000, Depth: 1500, WallThickness: 200},
	BasicDimensions: ReferenceDimensions{
		WaterSurface:  32.0,
		Perimeter:     26.0,
		WallArea:      39.6,
		FinishingArea: 71.6,
		WaterVolume:   48.0,
	},
	Costs: ProfileCosts{
		MaterialsTotal: 817876,
		WorksTotal:     931860,
		EquipmentTotal: 1149928,
		TotalCost:      2899664,
	},
	MaterialsPrices: standardMaterialsPrices,
	WorksPrices:     standardWorksPrices,
}

// KP2 is the tile pool proposal, 8000x3000x1500 mm.
var KP2 = Profile{
	Name:       "КП №2 (8000x3000x1500)",
	Dimensions: Dimensions{Length: 8000, Width: 3000, Depth: 1500, WallThickness: 200},
	BasicDimensions: ReferenceDimensions{
		WaterSurface:  23.0,
		Perimeter:     22.0,
		WallArea:      33.0,
		FinishingArea: 57.0,
		WaterVolume:   34.5,
	},
	Costs: ProfileCosts{
		MaterialsTotal: 583398,
		WorksTotal:     615690,
		EquipmentTotal: 929369,
		TotalCost:      2128457,
	},
	MaterialsPrices: standardMaterialsPrices,
	WorksPrices:     standardWorksPrices,
}

// KP3 is the simplified mosaic pool proposal, 8000x3000x1500 mm.
var KP3 = Profile{
	Name:       "КП №3 (8000x3000x1500) - Упрощенный",
	Dimensions: Dimensions{Length: 8000, Width: 3000, Depth: 1500, WallThickness: 200},
	BasicDimensions: ReferenceDimensions{
		WaterSurface:  23.0,
		Perimeter:     22.0,
		WallArea:      33.0,
		FinishingArea: 57.0,
		WaterVolume:   34.5,
	},
	Costs: ProfileCosts{
		MaterialsTotal: 320631,
		WorksTotal:     394284,
		EquipmentTotal: 728694,
		TotalCost:      1443609,
	},
	MaterialsPrices: map[string]float64{
		"concrete":      4800,
		"rebar":         75000,
		"pvc_film":      1100,
		"tile":          2300,
		"grout":         280,
		"waterproofing": 750,
		"tile_adhesive": 380,
	},
	WorksPrices: map[string]float64{
		"earthworks":             1400,
		"concrete_works":         3300,
		"reinforcement":          2300,
		"waterproofing":          750,
		"tile_laying":            2300,
		"grouting":               280,
		"equipment_installation": 14000,
		"commissioning":          18000,
	},
}

// Profiles maps profile id to its data.
var Profiles = map[string]Profile{
	"kp1": KP1,
	"kp2": KP2,
	"kp3": KP3,
}

// ProfileOrder is the display order of the known profiles.
var ProfileOrder = []string{"kp1", "kp2", "kp3"}

// GetProfile returns the profile for the given id, falling back to kp1 when
// the id is unknown or empty.
func GetProfile(profileID string) Profile {
	if p, ok := Profiles[profileID]; ok {
		return p
	}
	return KP1
}

// ProfileIDForPoolType maps a finishing type to the proposal profile that
// prices it.
func ProfileIDForPoolType(poolType string) string {
	switch poolType {
	case "tile":
		return "kp2"
	case "mosaic":
		return "kp3"
	default:
		return "kp1"
	}
}

// PoolTypeForProfileID is the inverse mapping used when scaling equipment.
func PoolTypeForProfileID(profileID string) string {
	switch profileID {
	case "kp2":
		return "tile"
	case "kp3":
		return "mosaic"
	default:
		return "liner"
	}
}

// CorrectionFactors scale theoretical dimensions to the values the profile
// was actually priced against.
type CorrectionFactors struct {
	WaterSurface  float64 `json:"water_surface"`
	Perimeter     float64 `json:"perimeter"`
	WallArea      float64 `json:"wall_area"`
	FinishingArea float64 `json:"finishing_area"`
	WaterVolume   float64 `json:"water_volume"`
}

func safeRatio(reference, theoretical float64) float64 {
	if theoretical == 0 {
		return 1
	}
	return reference / theoretical
}

// DimensionsCorrectionFactor computes per-dimension correction factors for a
// profile given pool dimensions in millimeters.
func DimensionsCorrectionFactor(profileID string, dims Dimensions) CorrectionFactors {
	profile := GetProfile(profileID)

	length := dims.Length / 1000
	width := dims.Width / 1000
	depth := dims.Depth / 1000

	waterSurface := length * width
	perimeter := 2 * (length + width)
	wallArea := perimeter * depth
	finishingArea := waterSurface + wallArea
	waterVolume := waterSurface * depth

	ref := profile.BasicDimensions
	return CorrectionFactors{
		WaterSurface:  safeRatio(ref.WaterSurface, waterSurface),
		Perimeter:     safeRatio(ref.Perimeter, perimeter),
		WallArea:      safeRatio(ref.WallArea, wallArea),
		FinishingArea: safeRatio(ref.FinishingArea, finishingArea),
		WaterVolume:   safeRatio(ref.WaterVolume, waterVolume),
	}
}
