package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"panditseva/middleware"
	"panditseva/models"
	"panditseva/services/booking"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingFormService drives booking drafts.
type BookingFormService interface {
	Start(ctx context.Context, s models.Session, panditID string) (*models.BookingDraft, error)
	Get(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error)
	Update(ctx context.Context, s models.Session, draftID string, ch models.DraftChanges) (*models.BookingDraft, error)
	Slots(ctx context.Context, s models.Session, draftID, date string) ([]string, error)
	Review(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error)
	Back(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error)
	Confirm(ctx context.Context, s models.Session, draftID string, pd models.PaymentDetails) (*booking.Confirmation, error)
	Discard(ctx context.Context, s models.Session, draftID string) error
}

// LifecycleService moves stored bookings between statuses.
type LifecycleService interface {
	ListForUser(ctx context.Context, s models.Session) ([]models.BookingRecord, error)
	ListForPandit(ctx context.Context, s models.Session, status models.BookingStatus) ([]models.BookingRecord, error)
	Accept(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error)
	Decline(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error)
	Complete(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error)
	Cancel(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error)
}

type BookingHandler struct {
	Form      BookingFormService
	Lifecycle LifecycleService
}

func NewBookingHandler(form BookingFormService, lifecycle LifecycleService) *BookingHandler {
	return &BookingHandler{Form: form, Lifecycle: lifecycle}
}

func session(c *gin.Context) (models.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
	}
	return s, ok
}

// StartDraftHandler handles POST /api/booking/drafts.
func (h *BookingHandler) StartDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var input struct {
		PanditID string `json:"panditId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	d, err := h.Form.Start(c.Request.Context(), s, input.PanditID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// GetDraftHandler handles GET /api/booking/drafts/:id.
func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	d, err := h.Form.Get(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateDraftHandler handles PATCH /api/booking/drafts/:id.
func (h *BookingHandler) UpdateDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var changes models.DraftChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	d, err := h.Form.Update(c.Request.Context(), s, c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DiscardDraftHandler handles DELETE /api/booking/drafts/:id.
func (h *BookingHandler) DiscardDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	if err := h.Form.Discard(c.Request.Context(), s, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}

// DraftSlotsHandler handles GET /api/booking/drafts/:id/slots?date=.
func (h *BookingHandler) DraftSlotsHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	slots, err := h.Form.Slots(c.Request.Context(), s, c.Param("id"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ReviewDraftHandler handles POST /api/booking/drafts/:id/review.
func (h *BookingHandler) ReviewDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	d, err := h.Form.Review(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// BackDraftHandler handles POST /api/booking/drafts/:id/back.
func (h *BookingHandler) BackDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	d, err := h.Form.Back(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ConfirmDraftHandler handles POST /api/booking/drafts/:id/confirm.
func (h *BookingHandler) ConfirmDraftHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var details models.PaymentDetails
	if err := c.ShouldBindJSON(&details); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	res, err := h.Form.Confirm(c.Request.Context(), s, c.Param("id"), details)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking confirmed",
		zap.String("draftID", res.Draft.ID),
		zap.String("bookingID", res.Booking.ID),
		zap.String("userID", s.UserID))
	c.JSON(http.StatusCreated, res)
}

// ListMyBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	recs, err := h.Lifecycle.ListForUser(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": recs})
}

// ListPanditBookingsHandler handles GET /api/pandit/bookings?status=.
func (h *BookingHandler) ListPanditBookingsHandler(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	recs, err := h.Lifecycle.ListForPandit(c.Request.Context(), s, models.BookingStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": recs})
}

type lifecycleAction func(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error)

func (h *BookingHandler) transition(action func(LifecycleService) lifecycleAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session(c)
		if !ok {
			return
		}
		rec, err := action(h.Lifecycle)(c.Request.Context(), s, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler() gin.HandlerFunc {
	return h.transition(func(l LifecycleService) lifecycleAction { return l.Cancel })
}

// AcceptBookingHandler handles POST /api/pandit/bookings/:id/accept.
func (h *BookingHandler) AcceptBookingHandler() gin.HandlerFunc {
	return h.transition(func(l LifecycleService) lifecycleAction { return l.Accept })
}

// DeclineBookingHandler handles POST /api/pandit/bookings/:id/decline.
func (h *BookingHandler) DeclineBookingHandler() gin.HandlerFunc {
	return h.transition(func(l LifecycleService) lifecycleAction { return l.Decline })
}

// CompleteBookingHandler handles POST /api/pandit/bookings/:id/complete.
func (h *BookingHandler) CompleteBookingHandler() gin.HandlerFunc {
	return h.transition(func(l LifecycleService) lifecycleAction { return l.Complete })
}
