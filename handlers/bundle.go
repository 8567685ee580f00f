package handlers

import (
	"panditseva/middleware"
)

// HandlerBundle groups all endpoint handlers and what the routes need to
// guard them.
type HandlerBundle struct {
	Sessions middleware.SessionVerifier

	Pandits *PanditHandler
	Booking *BookingHandler
	Health  *HealthHandler
	// Ops is nil when no operator key is configured.
	Ops       *OpsHandler
	OpsAPIKey string

	MaxRequestsPerMin int
}
