package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"panditseva/models"
	"panditseva/services/booking"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, err)
	return w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &booking.ValidationError{Fields: map[string]string{"date": "Please select a date"}}, http.StatusUnprocessableEntity},
		{"payment cancelled", &booking.PaymentError{Outcome: models.PaymentOutcome{Status: models.OutcomeCancelled}}, http.StatusPaymentRequired},
		{"in flight", booking.ErrSubmissionInFlight, http.StatusConflict},
		{"wrong step", fmt.Errorf("review: %w", booking.ErrInvalidStep), http.StatusConflict},
		{"captured", booking.ErrPaymentCaptured, http.StatusConflict},
		{"transition", booking.ErrInvalidTransition, http.StatusConflict},
		{"draft missing", booking.ErrDraftNotFound, http.StatusNotFound},
		{"pandit missing", booking.ErrPanditNotFound, http.StatusNotFound},
		{"booking missing", booking.ErrBookingNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, respond(tc.err).Code)
		})
	}
}

func TestRespondErrorValidationFields(t *testing.T) {
	w := respond(&booking.ValidationError{Fields: map[string]string{"address": "Address must be at least 5 characters"}})

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Address must be at least 5 characters", body.Fields["address"])
}

func TestRespondErrorPersistenceReportsReconciliation(t *testing.T) {
	for queued, want := range map[bool]string{true: "queued", false: "not_queued"} {
		w := respond(&booking.PersistenceError{Err: errors.New("mongo down"), Queued: queued})
		require.Equal(t, http.StatusBadGateway, w.Code)

		var body utils.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, want, body.Reconciliation)
		assert.NotContains(t, w.Body.String(), "mongo down")
	}
}
