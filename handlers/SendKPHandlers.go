package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"poolcalc/models"
	"poolcalc/services"
	"poolcalc/storage"

	"github.com/gin-gonic/gin"
)

type sendKPRequest struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
}

// SendKPHandler emails a previously generated proposal to the customer.
// The recipient defaults to the email stored with the proposal; the request
// may override it.
func SendKPHandler(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendKPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не получены данные"})
			return
		}
		if req.Reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан номер КП"})
			return
		}

		est, err := storage.GetEstimateByReference(db, req.Reference)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "КП не найдено: " + req.Reference})
			return
		}

		var proposal models.GenerateKPResponse
		if err := json.Unmarshal([]byte(est.Payload), &proposal); err != nil {
			log.Printf("Failed to decode proposal %s: %v", req.Reference, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Поврежденные данные КП"})
			return
		}

		to := req.Email
		if to == "" {
			to = est.CustomerEmail
		}
		if to == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан email получателя"})
			return
		}

		if err := emailService.SendProposal(to, proposal, est.Reference); err != nil {
			log.Printf("Failed to send proposal %s to %s: %v", est.Reference, to, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось отправить письмо"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"reference": est.Reference,
			"email":     to,
		})
	}
}
