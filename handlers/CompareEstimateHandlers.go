package handlers

import (
	"math"
	"net/http"

	"poolcalc/models"

	"github.com/gin-gonic/gin"
)

func compareDimension(calc, estimate float64) models.ComparisonEntry {
	return models.ComparisonEntry{
		Calc:     calc,
		Estimate: estimate,
		Diff:     round2(calc - estimate),
	}
}

func compareCost(calc, estimate float64) models.ComparisonEntry {
	return models.ComparisonEntry{
		Calc:     calc,
		Estimate: estimate,
		Diff:     math.Round(calc - estimate),
	}
}

// CompareEstimateHandler compares a calculation against proposal figures
// @Summary Compare calculation with an external estimate
// @Description Run the estimate for the given dimensions and report per-value differences against supplied proposal figures
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body models.CompareEstimateRequest true "Dimensions plus estimate values"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /compare_estimate [post]
func CompareEstimateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CompareEstimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Не получены данные"})
			return
		}
		if name := MissingParam(req.CalculateRequest); name != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Отсутствует параметр " + name})
			return
		}

		result, err := Calculate(req.CalculateRequest)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		raw, _ := result.BasicDimensions["_raw"].(models.RawDimensions)
		est := req.Estimate

		// Dimension values are rounded the same way they are displayed, so
		// the comparison matches what the customer sees.
		dimensions := map[string]models.ComparisonEntry{
			"water_surface":  compareDimension(round1(raw.WaterSurface), est.WaterSurface),
			"perimeter":      compareDimension(round1(raw.Perimeter), est.Perimeter),
			"wall_area":      compareDimension(round1(raw.WallArea), est.WallArea),
			"finishing_area": compareDimension(round1(raw.FinishingArea), est.FinishingArea),
			"water_volume":   compareDimension(round1(raw.WaterVolume), est.WaterVolume),
		}

		costs := map[string]models.ComparisonEntry{
			"materials": compareCost(result.Costs.MaterialsTotal, est.MaterialsCost),
			"work":      compareCost(result.Costs.WorksTotal, est.WorkCost),
			"equipment": compareCost(result.Costs.EquipmentTotal, est.EquipmentCost),
			"total":     compareCost(result.Costs.Total, est.TotalCost),
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"comparison": gin.H{
				"dimensions": dimensions,
				"costs":      costs,
			},
		})
	}
}
