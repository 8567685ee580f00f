package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"panditseva/models"
	"panditseva/services/booking"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryService is the read side of the pandit directory.
type DirectoryService interface {
	ListAvailablePandits(ctx context.Context, filter models.PanditFilter) ([]models.PanditProfile, error)
	GetPandit(ctx context.Context, id string) (*models.PanditProfile, error)
	Offerings(ctx context.Context, id string) ([]models.RitualOffering, error)
	Slots(ctx context.Context, id, date string) ([]string, error)
	Dates(ctx context.Context, id string, from time.Time, days int) ([]string, error)
}

// PanditHandler serves the public directory endpoints.
type PanditHandler struct {
	Directory DirectoryService
	Now       func() time.Time
}

func NewPanditHandler(dir DirectoryService) *PanditHandler {
	return &PanditHandler{Directory: dir, Now: time.Now}
}

// ListRitualsHandler handles GET /api/rituals.
func (h *PanditHandler) ListRitualsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rituals": booking.ListRituals()})
}

// ListPanditsHandler handles GET /api/pandits.
func (h *PanditHandler) ListPanditsHandler(c *gin.Context) {
	var filter models.PanditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	pandits, err := h.Directory.ListAvailablePandits(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandits": pandits})
}

// GetPanditHandler handles GET /api/pandits/:id.
func (h *PanditHandler) GetPanditHandler(c *gin.Context) {
	p, err := h.Directory.GetPandit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetOfferingsHandler handles GET /api/pandits/:id/offerings.
func (h *PanditHandler) GetOfferingsHandler(c *gin.Context) {
	offerings, err := h.Directory.Offerings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}

// GetSlotsHandler handles GET /api/pandits/:id/slots?date=YYYY-MM-DD.
func (h *PanditHandler) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.Directory.Slots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// GetDatesHandler handles GET /api/pandits/:id/dates?from=&days=.
func (h *PanditHandler) GetDatesHandler(c *gin.Context) {
	from := h.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, ok := models.ParseDate(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "Invalid from date", "expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid days", "expected a non-negative integer")
			return
		}
		days = n
	}

	dates, err := h.Directory.Dates(c.Request.Context(), c.Param("id"), from, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}
