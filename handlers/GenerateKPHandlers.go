package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"poolcalc/models"
	"poolcalc/repository"
	"poolcalc/storage"
	"poolcalc/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
)

// normalizeCustomer brings customer text to NFC so lookups by name behave
// the same regardless of how the browser composed the input.
func normalizeCustomer(customer models.Customer) models.Customer {
	return models.Customer{
		Name:    norm.NFC.String(strings.TrimSpace(customer.Name)),
		Address: norm.NFC.String(strings.TrimSpace(customer.Address)),
		Phone:   strings.TrimSpace(customer.Phone),
		Email:   strings.TrimSpace(customer.Email),
	}
}

func missingCustomerFields(customer models.Customer) []string {
	var missing []string
	if customer.Name == "" {
		missing = append(missing, "name")
	}
	if customer.Address == "" {
		missing = append(missing, "address")
	}
	if customer.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// GenerateKP runs the estimate, stamps it with the customer details and a
// generation date, and assigns a proposal reference. The proposal is saved
// when the database is available.
func GenerateKP(db *sql.DB, req models.GenerateKPRequest) (models.GenerateKPResponse, error) {
	result, err := Calculate(req.CalculateRequest)
	if err != nil {
		return models.GenerateKPResponse{}, err
	}

	resp := models.GenerateKPResponse{
		CalculationResult: result,
		Customer:          req.Customer,
		GenerationDate:    time.Now().Format("02.01.2006"),
		TotalInWords:      utils.AmountInWords(result.Costs.Total),
	}

	if db == nil {
		resp.Reference = repository.GenerateReference()
		return resp, nil
	}

	reference, err := repository.UniqueReference(db)
	if err != nil {
		log.Printf("failed to allocate proposal reference: %v", err)
		reference = repository.GenerateReference()
	}
	resp.Reference = reference

	payload, err := json.Marshal(resp)
	if err != nil {
		return models.GenerateKPResponse{}, err
	}

	_, err = storage.SaveEstimate(db, &models.SavedEstimate{
		Reference:      reference,
		ProfileID:      result.PoolData.Profile.ID,
		CustomerName:   req.Customer.Name,
		CustomerPhone:  req.Customer.Phone,
		CustomerEmail:  req.Customer.Email,
		Address:        req.Customer.Address,
		TotalCost:      result.Costs.Total,
		Payload:        string(payload),
		GenerationDate: resp.GenerationDate,
	})
	if err != nil {
		// A proposal the customer can see beats a lost request.
		log.Printf("failed to save estimate %s: %v", reference, err)
	}

	return resp, nil
}

// GenerateKPHandler generates a commercial proposal
// @Summary Generate commercial proposal
// @Description Run the estimate and produce a dated proposal with customer details and a reference number
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body models.GenerateKPRequest true "Dimensions, profile and customer details"
// @Success 200 {object} models.GenerateKPResponse
// @Failure 400 {object} map[string]string
// @Router /generate_kp [post]
func GenerateKPHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GenerateKPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не получены данные"})
			return
		}
		if name := MissingParam(req.CalculateRequest); name != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует параметр " + name})
			return
		}

		profileID := ResolveProfileID(req.CalculateRequest)
		if _, ok := models.Profiles[profileID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный профиль КП: " + profileID})
			return
		}

		req.Customer = normalizeCustomer(req.Customer)
		if missing := missingCustomerFields(req.Customer); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Отсутствуют обязательные данные заказчика: " + strings.Join(missing, ", "),
			})
			return
		}

		resp, err := GenerateKP(db, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
