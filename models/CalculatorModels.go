package models

// CalculateRequest is the input of the estimate calculation. Dimensions are
// in millimeters. Pointer fields distinguish missing parameters from zeros.
type CalculateRequest struct {
	Length        *float64 `json:"length" example:"8000"`
	Width         *float64 `json:"width" example:"4000"`
	Depth         *float64 `json:"depth" example:"1500"`
	WallThickness *float64 `json:"wall_thickness" example:"200"`
	PoolType      string   `json:"pool_type" example:"liner"`
	ProfileID     string   `json:"profile_id" example:"kp1"`
	Profile       string   `json:"profile" example:"kp1"`
}

// RawDimensions carries the unformatted geometry values alongside the
// human-readable breakdown.
type RawDimensions struct {
	WaterSurface   float64 `json:"water_surface"`
	Perimeter      float64 `json:"perimeter"`
	WallArea       float64 `json:"wall_area"`
	FinishingArea  float64 `json:"finishing_area"`
	WaterVolume    float64 `json:"water_volume"`
	ConcreteVolume float64 `json:"concrete_volume"`
	EarthVolume    float64 `json:"earth_volume"`
	OuterLength    float64 `json:"outer_length"`
	OuterWidth     float64 `json:"outer_width"`
	OuterPerimeter float64 `json:"outer_perimeter"`
	PitArea        float64 `json:"pit_area"`
	PitLength      float64 `json:"pit_length"`
	PitWidth       float64 `json:"pit_width"`
	PitDepth       float64 `json:"pit_depth"`
}

// CostEntry is a priced line of the finishing breakdown.
type CostEntry struct {
	Cost    float64 `json:"cost"`
	CostStr string  `json:"cost_str"`
}

// CopingStone prices the border stone around the pool perimeter.
type CopingStone struct {
	Cost    float64 `json:"cost"`
	Total   float64 `json:"total"`
	CostStr string  `json:"cost_str"`
}

// FinishingCost is the finishing section of an estimate. Materials and Works
// are populated for tile pools only; CopingStone is always present.
type FinishingCost struct {
	Area            float64           `json:"area"`
	Perimeter       float64           `json:"perimeter"`
	Lining          *CostEntry        `json:"lining,omitempty"`
	CopingStone     CopingStone       `json:"coping_stone"`
	Materials       map[string]string `json:"materials,omitempty"`
	Works           map[string]string `json:"works,omitempty"`
	MaterialCost    float64           `json:"material_cost"`
	MaterialCostStr string            `json:"material_cost_str"`
	WorkCost        float64           `json:"work_cost"`
	WorkCostStr     string            `json:"work_cost_str"`
	TotalCost       float64           `json:"total_cost"`
	TotalCostStr    string            `json:"total_cost_str"`
}

// MaterialsCost breaks the profile's material total into display categories.
type MaterialsCost struct {
	Materials    map[string]string `json:"materials"`
	TotalCost    float64           `json:"total_cost"`
	TotalCostStr string            `json:"total_cost_str"`
}

// WorksCost breaks the profile's works total into display categories.
type WorksCost struct {
	Works        map[string]string `json:"works"`
	TotalCost    float64           `json:"total_cost"`
	TotalCostStr string            `json:"total_cost_str"`
}

// KPItem is a single line of a commercial proposal.
type KPItem struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// KPItems is the itemized commercial proposal: equipment, materials and
// works sections with per-section totals.
type KPItems struct {
	EquipmentItems []KPItem `json:"equipment_items"`
	EquipmentTotal float64  `json:"equipment_total"`
	MaterialsItems []KPItem `json:"materials_items"`
	MaterialsTotal float64  `json:"materials_total"`
	WorksItems     []KPItem `json:"works_items"`
	WorksTotal     float64  `json:"works_total"`
	TotalCost      float64  `json:"total_cost"`
}

// Costs aggregates the estimate totals, in rubles.
type Costs struct {
	MaterialsTotal float64 `json:"materials_total"`
	WorksTotal     float64 `json:"works_total"`
	EquipmentTotal float64 `json:"equipment_total"`
	FinishingTotal float64 `json:"finishing_total"`
	Total          float64 `json:"total"`
}

// ProfileRef identifies the proposal profile an estimate was built from.
type ProfileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PoolData echoes the input parameters of an estimate.
type PoolData struct {
	Profile    ProfileRef `json:"profile"`
	Dimensions Dimensions `json:"dimensions"`
}

// CalculationResult is the full response of the estimate calculation.
// BasicDimensions maps human-readable labels to formatted values plus a
// "_raw" entry with the numeric geometry.
type CalculationResult struct {
	BasicDimensions map[string]interface{} `json:"basic_dimensions"`
	Earthworks      map[string]string      `json:"earthworks"`
	ConcreteWorks   map[string]string      `json:"concrete_works"`
	Formwork        map[string]string      `json:"formwork"`
	Finishing       FinishingCost          `json:"finishing"`
	MaterialsCost   MaterialsCost          `json:"materials_cost"`
	WorksCost       WorksCost              `json:"works_cost"`
	KPItems         KPItems                `json:"kp_items"`
	Costs           Costs                  `json:"costs"`
	PoolData        PoolData               `json:"pool_data"`
}

// Customer holds the customer details of a generated proposal.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// GenerateKPRequest is the input of proposal generation: dimensions plus
// customer details.
type GenerateKPRequest struct {
	CalculateRequest
	Customer Customer `json:"customer"`
}

// GenerateKPResponse is the generated proposal: the full calculation plus
// customer details, the saved reference number and the total in words.
type GenerateKPResponse struct {
	CalculationResult
	Customer       Customer `json:"customer"`
	GenerationDate string   `json:"generation_date"`
	Reference      string   `json:"reference"`
	TotalInWords   string   `json:"total_in_words"`
}

// EstimateValues are externally supplied figures to compare a calculation
// against.
type EstimateValues struct {
	WaterSurface  float64 `json:"water_surface"`
	Perimeter     float64 `json:"perimeter"`
	WallArea      float64 `json:"wall_area"`
	FinishingArea float64 `json:"finishing_area"`
	WaterVolume   float64 `json:"water_volume"`
	MaterialsCost float64 `json:"materials_cost"`
	WorkCost      float64 `json:"work_cost"`
	EquipmentCost float64 `json:"equipment_cost"`
	TotalCost     float64 `json:"total_cost"`
}

// CompareEstimateRequest is the input of the estimate comparison.
type CompareEstimateRequest struct {
	CalculateRequest
	Estimate EstimateValues `json:"estimate"`
}

// ComparisonEntry compares a calculated value against an estimate value.
type ComparisonEntry struct {
	Calc     float64 `json:"calc"`
	Estimate float64 `json:"estimate"`
	Diff     float64 `json:"diff"`
}
