package routes

import (
	"panditseva/handlers"
	"panditseva/middleware"
	"panditseva/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking wizard and the user's bookings.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	drafts := r.Group("/api/booking/drafts", authenticated(hb, models.RoleUser)...)
	{
		drafts.POST("", hb.Booking.StartDraftHandler)
		drafts.GET("/:id", hb.Booking.GetDraftHandler)
		drafts.PATCH("/:id", hb.Booking.UpdateDraftHandler)
		drafts.DELETE("/:id", hb.Booking.DiscardDraftHandler)
		drafts.GET("/:id/slots", hb.Booking.DraftSlotsHandler)
		drafts.POST("/:id/review", hb.Booking.ReviewDraftHandler)
		drafts.POST("/:id/back", hb.Booking.BackDraftHandler)
		drafts.POST("/:id/confirm", hb.Booking.ConfirmDraftHandler)
	}

	bookings := r.Group("/api/bookings", authenticated(hb, models.RoleUser)...)
	{
		bookings.GET("", hb.Booking.ListMyBookingsHandler)
		bookings.POST("/:id/cancel", hb.Booking.CancelBookingHandler())
	}
}

// RegisterPanditRoutes registers the endpoints a pandit uses to work their
// incoming bookings.
func RegisterPanditRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pandit/bookings", authenticated(hb, models.RolePandit)...)
	{
		api.GET("", hb.Booking.ListPanditBookingsHandler)
		api.POST("/:id/accept", hb.Booking.AcceptBookingHandler())
		api.POST("/:id/decline", hb.Booking.DeclineBookingHandler())
		api.POST("/:id/complete", hb.Booking.CompleteBookingHandler())
	}
}

// RegisterOpsRoutes registers the reconciliation review endpoints. Nothing is
// mounted without an operator key.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Ops == nil || hb.OpsAPIKey == "" {
		return
	}
	ops := r.Group("/api/ops", middleware.OpsKeyMiddleware(hb.OpsAPIKey))
	{
		ops.GET("/reconciliations", hb.Ops.ListReconciliationsHandler)
		ops.POST("/reconciliations/:draftId/resolve", hb.Ops.ResolveReconciliationHandler)
	}
}
