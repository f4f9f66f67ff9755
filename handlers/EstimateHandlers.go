package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"poolcalc/storage"

	"github.com/gin-gonic/gin"
)

// ListEstimatesHandler lists saved proposals
// @Summary List saved proposals
// @Tags Proposals
// @Produce json
// @Param limit query int false "Maximum rows to return"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/estimates [get]
func ListEstimatesHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

		estimates, err := storage.ListEstimates(db, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список КП", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"estimates": estimates,
			"count":     len(estimates),
		})
	}
}

// GetEstimateHandler returns one saved proposal with its full payload
// @Summary Get saved proposal
// @Tags Proposals
// @Produce json
// @Param reference path string true "Proposal reference"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/estimates/{reference} [get]
func GetEstimateHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Param("reference")

		est, err := storage.GetEstimateByReference(db, reference)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "КП не найдено: " + reference})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить КП", "details": err.Error()})
			return
		}

		// The payload column holds the generated proposal as JSON; return
		// it as an object, not a string.
		var payload json.RawMessage
		if est.Payload != "" {
			payload = json.RawMessage(est.Payload)
		}
		est.Payload = ""

		c.JSON(http.StatusOK, gin.H{
			"estimate": est,
			"payload":  payload,
		})
	}
}

// DeleteEstimateHandler removes a saved proposal
// @Summary Delete saved proposal
// @Tags Proposals
// @Produce json
// @Param reference path string true "Proposal reference"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/estimates/{reference} [delete]
func DeleteEstimateHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Param("reference")

		if err := storage.DeleteEstimate(db, reference); err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "КП не найдено: " + reference})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить КП", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "КП удалено", "reference": reference})
	}
}
