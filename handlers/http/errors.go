package httpHandler

import (
	"errors"
	"net/http"

	"energy-calculator/entities"
	"energy-calculator/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain errors onto status codes.
func respondError(c *gin.Context, err error) {
	var inputErrs usecases.InputErrors
	var fieldErr *usecases.FieldError
	var incomplete *entities.IncompleteProfileError

	switch {
	case errors.Is(err, entities.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, entities.ErrSessionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Session was changed by another client, please retry"})
	case errors.As(err, &inputErrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid field values",
			"details": inputErrs.Fields(),
		})
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid field value",
			"details": map[string]string{fieldErr.Field: fieldErr.Err.Error()},
		})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Please fill in all the required fields before calculating",
			"missing": incomplete.Missing,
		})
	case errors.Is(err, entities.ErrInvalidCategory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func bindInput(c *gin.Context) (usecases.ProfileInput, bool) {
	var input usecases.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return input, false
	}
	return input, true
}
