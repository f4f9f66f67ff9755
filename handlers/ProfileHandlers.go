package handlers

import (
	"net/http"

	"poolcalc/models"
	"poolcalc/storage"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	ProfileID string `json:"profile_id"`
}

func requestedProfileID(c *gin.Context) (string, bool) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не получены данные"})
		return "", false
	}
	if req.ProfileID == "" {
		req.ProfileID = "kp1"
	}
	if _, ok := models.Profiles[req.ProfileID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный профиль КП: " + req.ProfileID})
		return "", false
	}
	return req.ProfileID, true
}

// GetProfilesHandler lists available proposal profiles
// @Summary List proposal profiles
// @Tags Profiles
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /get_profiles [get]
func GetProfilesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles := make([]models.ProfileRef, 0, len(models.ProfileOrder))
		for _, id := range models.ProfileOrder {
			profiles = append(profiles, models.ProfileRef{ID: id, Name: models.Profiles[id].Name})
		}
		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	}
}

// GetProfileHandler returns a single proposal profile
// @Summary Get proposal profile
// @Tags Profiles
// @Produce json
// @Param profile_id path string true "Profile id (kp1, kp2, kp3)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /get_profile/{profile_id} [get]
func GetProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.Param("profile_id")
		profile, ok := models.Profiles[profileID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный профиль КП: " + profileID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// GetDimensionsCorrectionHandler returns the correction factors a profile
// applies to theoretical pool dimensions
// @Summary Get dimension correction factors
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body models.CalculateRequest true "Pool dimensions in millimeters"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /get_dimensions_correction [post]
func GetDimensionsCorrectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Length    float64 `json:"length"`
			Width     float64 `json:"width"`
			Depth     float64 `json:"depth"`
			ProfileID string  `json:"profile_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не получены данные"})
			return
		}
		if req.Length <= 0 || req.Width <= 0 || req.Depth <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Все параметры должны быть положительными числами"})
			return
		}
		if req.ProfileID == "" {
			req.ProfileID = "kp1"
		}
		profile, ok := models.Profiles[req.ProfileID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный профиль КП: " + req.ProfileID})
			return
		}

		factors := models.DimensionsCorrectionFactor(req.ProfileID, models.Dimensions{
			Length: req.Length,
			Width:  req.Width,
			Depth:  req.Depth,
		})
		c.JSON(http.StatusOK, gin.H{
			"correction_factors": factors,
			"profile":            profile.Name,
		})
	}
}

// GetPricesHandler returns a profile's unit prices with admin overrides
// applied
// @Summary Get profile prices
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body object true "Profile id" SchemaExample({"profile_id": "kp1"})
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /get_prices [post]
func GetPricesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := requestedProfileID(c)
		if !ok {
			return
		}
		profile := models.Profiles[profileID]

		materials := storage.ApplyPriceOverrides(profileID, "materials", profile.MaterialsPrices)
		works := storage.ApplyPriceOverrides(profileID, "works", profile.WorksPrices)

		c.JSON(http.StatusOK, gin.H{
			"materials_prices": materials,
			"works_prices":     works,
			"profile":          profile.Name,
		})
	}
}

// GetCostsHandler returns a profile's reference cost totals
// @Summary Get profile cost totals
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body object true "Profile id" SchemaExample({"profile_id": "kp1"})
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /get_costs [post]
func GetCostsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := requestedProfileID(c)
		if !ok {
			return
		}
		profile := models.Profiles[profileID]
		c.JSON(http.StatusOK, gin.H{
			"costs":   profile.Costs,
			"profile": profile.Name,
		})
	}
}
