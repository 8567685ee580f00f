package handlers

import (
	"errors"
	"net/http"

	"panditseva/services/booking"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	logger := getLogger(c)

	var verr *booking.ValidationError
	var perr *booking.PaymentError
	var serr *booking.PersistenceError
	switch {
	case errors.As(err, &verr):
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity, "Please correct the highlighted fields", verr.Fields)
	case errors.As(err, &perr):
		utils.JSONError(c, http.StatusPaymentRequired, "Payment was not completed", perr.Error())
	case errors.As(err, &serr):
		status := "not_queued"
		if serr.Queued {
			status = "queued"
		}
		logger.Error("Paid booking could not be saved", zap.String("reconciliation", status), zap.Error(serr.Err))
		c.JSON(http.StatusBadGateway, utils.ErrorResponse{
			Message:        "Payment received but the booking could not be saved",
			Details:        "Your payment is safe. The booking will be completed automatically or by our support team.",
			Reconciliation: status,
		})
	case errors.Is(err, booking.ErrSubmissionInFlight):
		utils.JSONError(c, http.StatusConflict, "A payment for this booking is already in progress", "")
	case errors.Is(err, booking.ErrInvalidStep),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrPaymentCaptured):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, booking.ErrDraftNotFound),
		errors.Is(err, booking.ErrPanditNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
	}
}
