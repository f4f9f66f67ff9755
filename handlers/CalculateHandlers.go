package handlers

import (
	"errors"
	"net/http"

	"poolcalc/models"

	"github.com/gin-gonic/gin"
)

// ErrInvalidDimensions is returned when any pool dimension is zero or
// negative.
var ErrInvalidDimensions = errors.New("Все размеры должны быть положительными числами")

// ResolveProfileID picks the proposal profile for a request: explicit
// profile_id wins, then the legacy profile field, then the pool type
// mapping, then kp1.
func ResolveProfileID(req models.CalculateRequest) string {
	if req.ProfileID != "" {
		return req.ProfileID
	}
	if req.Profile != "" {
		return req.Profile
	}
	if req.PoolType != "" {
		return models.ProfileIDForPoolType(req.PoolType)
	}
	return "kp1"
}

// Calculate runs the full estimate for a pool: geometry, earthworks,
// concrete, formwork, finishing, cost breakdowns and the itemized proposal.
func Calculate(req models.CalculateRequest) (models.CalculationResult, error) {
	dims := models.Dimensions{
		Length:        *req.Length,
		Width:         *req.Width,
		Depth:         *req.Depth,
		WallThickness: *req.WallThickness,
	}
	if dims.Length <= 0 || dims.Width <= 0 || dims.Depth <= 0 || dims.WallThickness <= 0 {
		return models.CalculationResult{}, ErrInvalidDimensions
	}

	profileID := ResolveProfileID(req)
	profile := models.GetProfile(profileID)

	factors := models.DimensionsCorrectionFactor(profileID, dims)
	basicDims, raw := CalculateBasicDimensions(dims, factors)

	finishing := CalculateFinishingCost(profileID, profile, raw.FinishingArea, raw.Perimeter)
	kpItems := CalculateKPItems(dims, models.PoolTypeForProfileID(profileID), profileID)

	costs := models.Costs{
		MaterialsTotal: kpItems.MaterialsTotal,
		WorksTotal:     kpItems.WorksTotal,
		EquipmentTotal: kpItems.EquipmentTotal,
		FinishingTotal: finishing.TotalCost,
		Total:          kpItems.MaterialsTotal + kpItems.WorksTotal + kpItems.EquipmentTotal,
	}

	return models.CalculationResult{
		BasicDimensions: basicDims,
		Earthworks:      CalculateEarthworks(dims),
		ConcreteWorks:   CalculateConcreteWorks(dims),
		Formwork:        CalculateFormwork(dims),
		Finishing:       finishing,
		MaterialsCost:   CalculateMaterialsCost(profileID, profile),
		WorksCost:       CalculateWorksCost(profileID, profile),
		KPItems:         kpItems,
		Costs:           costs,
		PoolData: models.PoolData{
			Profile:    models.ProfileRef{ID: profileID, Name: profile.Name},
			Dimensions: dims,
		},
	}, nil
}

// MissingParam returns the name of the first absent dimension, or "" when
// all four are present.
func MissingParam(req models.CalculateRequest) string {
	switch {
	case req.Length == nil:
		return "length"
	case req.Width == nil:
		return "width"
	case req.Depth == nil:
		return "depth"
	case req.WallThickness == nil:
		return "wall_thickness"
	}
	return ""
}

// CalculateHandler runs the pool estimate
// @Summary Calculate pool estimate
// @Description Compute the full cost estimate for the given pool dimensions and profile
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body models.CalculateRequest true "Pool dimensions in millimeters"
// @Success 200 {object} models.CalculationResult
// @Failure 400 {object} map[string]string
// @Router /calculate [post]
func CalculateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CalculateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат запроса"})
			return
		}

		if name := MissingParam(req); name != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует параметр " + name})
			return
		}

		result, err := Calculate(req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
