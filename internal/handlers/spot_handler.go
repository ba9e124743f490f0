package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/st-united/AICP-API-sub001/internal/services"
)

type SpotHandler struct {
	log      *zap.Logger
	planning *services.PlanningService
	booking  *services.BookingService
}

func NewSpotHandler(log *zap.Logger, planning *services.PlanningService, booking *services.BookingService) *SpotHandler {
	return &SpotHandler{log: log, planning: planning, booking: booking}
}

type generateScheduleRequest struct {
	Timezone        string             `json:"timezone" binding:"required"`
	DurationMinutes int                `json:"durationMinutes" binding:"required"`
	Days            []services.DayPlan `json:"days" binding:"required"`
	ReplaceExisting bool               `json:"replaceExisting"`
}

func (h *SpotHandler) GenerateSchedule(c *gin.Context) {
	mentorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req generateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spots, err := h.planning.GenerateSpots(services.GenerateSpotsInput{
		MentorID:        mentorID,
		Timezone:        req.Timezone,
		DurationMinutes: req.DurationMinutes,
		Days:            req.Days,
		ReplaceExisting: req.ReplaceExisting,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"spots": spots})
}

func (h *SpotHandler) ListSpots(c *gin.Context) {
	mentorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC3339 timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC3339 timestamp"})
		return
	}
	spots, err := h.planning.ListSpots(mentorID, from, to)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

type bookSpotRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	ExamID uint   `json:"examId" binding:"required"`
	Note   string `json:"note"`
}

func (h *SpotHandler) BookSpot(c *gin.Context) {
	spotID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req bookSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	confirmation, err := h.booking.Book(spotID, req.UserID, req.ExamID, req.Note)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

type cancelSpotRequest struct {
	ExamID uint `json:"examId" binding:"required"`
}

func (h *SpotHandler) CancelSpot(c *gin.Context) {
	spotID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req cancelSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.booking.Cancel(spotID, req.ExamID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
