package httpHandler

import (
	"fmt"
	"net/http"
	"time"

	"energy-calculator/entities"
	"energy-calculator/report"
	"energy-calculator/usecases"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	useCase *usecases.SessionUseCase
}

func NewSessionHandler(useCase *usecases.SessionUseCase) *SessionHandler {
	return &SessionHandler{
		useCase: useCase,
	}
}

// sessionView is the response shape shared by the session endpoints.
func sessionView(s *entities.Session) gin.H {
	return gin.H{
		"session":    s,
		"selections": s.Profile.Selections(),
		"validation": usecases.Summarize(s.Profile),
	}
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, err := h.useCase.CreateSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created successfully",
		"data":    sessionView(session),
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.useCase.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sessionView(session),
	})
}

// UpdateSession handles PATCH /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	input, ok := bindInput(c)
	if !ok {
		return
	}

	session, err := h.useCase.UpdateProfile(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session updated successfully",
		"data":    sessionView(session),
	})
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.useCase.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session deleted successfully",
	})
}

// GetValidation handles GET /api/v1/sessions/:id/validation
func (h *SessionHandler) GetValidation(c *gin.Context) {
	summary, err := h.useCase.Validation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// Calculate handles POST /api/v1/sessions/:id/calculate
func (h *SessionHandler) Calculate(c *gin.Context) {
	session, err := h.useCase.Calculate(c.Request.Context(), c.Param("id"), usecases.SourceSession)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"profile":  session.Profile,
			"estimate": session.LastEstimate,
		},
	})
}

// Reset handles POST /api/v1/sessions/:id/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	session, err := h.useCase.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session reset successfully",
		"data":    sessionView(session),
	})
}

// GetReportPDF handles GET /api/v1/sessions/:id/report.pdf
func (h *SessionHandler) GetReportPDF(c *gin.Context) {
	h.serveReport(c, "application/pdf", "pdf", report.BuildEstimatePDF)
}

// GetReportXLSX handles GET /api/v1/sessions/:id/report.xlsx
func (h *SessionHandler) GetReportXLSX(c *gin.Context) {
	h.serveReport(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", report.BuildEstimateXLSX)
}

type reportBuilder func(entities.HouseholdProfile, entities.EnergyEstimate, time.Time) ([]byte, error)

func (h *SessionHandler) serveReport(c *gin.Context, contentType, ext string, build reportBuilder) {
	session, err := h.useCase.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !session.Calculated || session.LastEstimate == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No estimate has been calculated for this session",
		})
		return
	}

	body, err := build(session.Profile, *session.LastEstimate, h.useCase.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="energy-estimate-%s.%s"`, session.ID, ext))
	c.Data(http.StatusOK, contentType, body)
}
