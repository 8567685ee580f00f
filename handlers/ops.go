package handlers

import (
	"errors"
	"net/http"

	"panditseva/database/repository"
	reconcileRepo "panditseva/database/repository/reconcile"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OpsHandler exposes the manual review queue to operators.
type OpsHandler struct {
	Review reconcileRepo.ReviewQueue
}

func NewOpsHandler(review reconcileRepo.ReviewQueue) *OpsHandler {
	return &OpsHandler{Review: review}
}

// ListReconciliationsHandler handles GET /api/ops/reconciliations.
func (h *OpsHandler) ListReconciliationsHandler(c *gin.Context) {
	cases, err := h.Review.ListOpen(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list reconciliations", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list reconciliations", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": cases})
}

// ResolveReconciliationHandler handles POST /api/ops/reconciliations/:draftId/resolve.
func (h *OpsHandler) ResolveReconciliationHandler(c *gin.Context) {
	draftID := c.Param("draftId")
	err := h.Review.Resolve(c.Request.Context(), draftID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Reconciliation case not found", draftID)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to resolve reconciliation", zap.String("draftID", draftID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve reconciliation", "")
		return
	}
	getLogger(c).Info("Reconciliation resolved", zap.String("draftID", draftID))
	c.JSON(http.StatusOK, gin.H{"message": "Resolved"})
}
