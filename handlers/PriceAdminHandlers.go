package handlers

import (
	"net/http"

	"poolcalc/models"
	"poolcalc/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type priceOverrideRequest struct {
	ProfileID string   `json:"profile_id" binding:"required"`
	Category  string   `json:"category" binding:"required"`
	Key       string   `json:"key" binding:"required"`
	Price     *float64 `json:"price"`
}

func validOverrideTarget(c *gin.Context, req priceOverrideRequest) bool {
	profile, ok := models.Profiles[req.ProfileID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный профиль КП: " + req.ProfileID})
		return false
	}

	var known bool
	switch req.Category {
	case "materials":
		_, known = profile.MaterialsPrices[req.Key]
	case "works":
		_, known = profile.WorksPrices[req.Key]
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестная категория цен: " + req.Category})
		return false
	}
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестная позиция: " + req.Key})
		return false
	}
	return true
}

// UpsertPriceHandler sets a unit price override for a profile
// @Summary Override a unit price
// @Tags Prices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body object true "Override" SchemaExample({"profile_id": "kp1", "category": "materials", "key": "concrete", "price": 5200})
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/prices [put]
func UpsertPriceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req priceOverrideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не получены данные"})
			return
		}
		if req.Price == nil || *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Цена должна быть положительным числом"})
			return
		}
		if !validOverrideTarget(c, req) {
			return
		}

		override := models.PriceOverride{
			ProfileID: req.ProfileID,
			Category:  req.Category,
			Key:       req.Key,
			Price:     *req.Price,
			UpdatedBy: c.GetString("user_email"),
		}
		if err := storage.UpsertPriceOverride(&override); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить цену", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Цена обновлена", "override": override})
	}
}

// DeletePriceHandler removes a unit price override
// @Summary Remove a unit price override
// @Tags Prices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body object true "Override target" SchemaExample({"profile_id": "kp1", "category": "materials", "key": "concrete"})
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/prices [delete]
func DeletePriceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req priceOverrideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не получены данные"})
			return
		}

		if err := storage.DeletePriceOverride(req.ProfileID, req.Category, req.Key); err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Переопределение цены не найдено"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить цену", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Цена восстановлена"})
	}
}

// ListPriceOverridesHandler lists active overrides for a profile
// @Summary List unit price overrides
// @Tags Prices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param profile_id path string true "Profile id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/prices/{profile_id} [get]
func ListPriceOverridesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.Param("profile_id")
		if _, ok := models.Profiles[profileID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный профиль КП: " + profileID})
			return
		}

		overrides, err := storage.ListPriceOverrides(profileID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить цены", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"profile_id": profileID,
			"overrides":  overrides,
			"count":      len(overrides),
		})
	}
}
