package httpHandler

import (
	"errors"
	"net/http"

	"energy-calculator/entities"
	"energy-calculator/usecases"

	"github.com/gin-gonic/gin"
)

// EstimateHandler serves the stateless endpoints: every request carries the
// whole profile and nothing is remembered.
type EstimateHandler struct{}

func NewEstimateHandler() *EstimateHandler {
	return &EstimateHandler{}
}

// Methodology handles GET /api/v1/methodology
func (h *EstimateHandler) Methodology(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": usecases.GetMethodology()})
}

// Validate handles POST /api/v1/validate
func (h *EstimateHandler) Validate(c *gin.Context) {
	input, ok := bindInput(c)
	if !ok {
		return
	}

	profile, err := input.Apply(entities.NewHouseholdProfile())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"validation": usecases.Summarize(profile),
			"selections": profile.Selections(),
		},
	})
}

// Estimate handles POST /api/v1/estimate
func (h *EstimateHandler) Estimate(c *gin.Context) {
	input, ok := bindInput(c)
	if !ok {
		return
	}

	profile, err := input.Apply(entities.NewHouseholdProfile())
	if err != nil {
		respondError(c, err)
		return
	}

	estimate, err := usecases.RecordedEstimate(usecases.SourceAPI, profile)
	if err != nil {
		if errors.Is(err, entities.ErrIncompleteProfile) {
			summary := usecases.Summarize(profile)
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      "Please fill in all the required fields before calculating",
				"missing":    summary.Missing,
				"validation": summary,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"profile":  profile,
			"estimate": estimate,
		},
	})
}
