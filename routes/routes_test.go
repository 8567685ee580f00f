package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "panditseva/database/repository/booking"
	draftRepo "panditseva/database/repository/draft"
	panditRepo "panditseva/database/repository/pandit"
	reconcileRepo "panditseva/database/repository/reconcile"
	"panditseva/handlers"
	"panditseva/models"
	"panditseva/services/booking"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slot = "9:00 AM - 12:00 PM"

type noopReconciler struct{}

func (noopReconciler) ScheduleReconcile(context.Context, *models.BookingRecord, error) error {
	return nil
}

type testServer struct {
	router   *gin.Engine
	tokens   *utils.TokenIssuer
	bookings *bookingRepo.MemoryBookingRepo
	review   *reconcileRepo.MemoryReviewQueue
}

func everyDay() models.WeeklyAvailability {
	w := models.WeeklyAvailability{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		w[models.WeekdayKey(d)] = []string{slot}
	}
	return w
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pandits := panditRepo.NewMemoryPanditRepo(models.PanditProfile{
		ID:             "pandit-1",
		FullName:       "Pandit Rajesh Sharma",
		City:           "Delhi",
		Languages:      []string{"Hindi"},
		RitualsOffered: []string{"griha-pravesh"},
		Availability:   everyDay(),
	})
	bookings := bookingRepo.NewMemoryBookingRepo()
	review := reconcileRepo.NewMemoryReviewQueue()

	directory := booking.NewDirectory(pandits, "INR", nil)
	form := booking.NewFormController(directory, draftRepo.NewMemoryDraftStore(), booking.NewMockGateway(0, nil),
		booking.NewSubmitter(bookings, noopReconciler{}, nil, nil), booking.FormConfig{Currency: "INR"}, nil)
	lifecycle := booking.NewLifecycle(bookings, nil)

	tokens := utils.NewTokenIssuer("test-secret")
	hb := &handlers.HandlerBundle{
		Sessions:          tokens,
		Pandits:           handlers.NewPanditHandler(directory),
		Booking:           handlers.NewBookingHandler(form, lifecycle),
		Health:            &handlers.HealthHandler{},
		Ops:               handlers.NewOpsHandler(review),
		OpsAPIKey:         "ops-key",
		MaxRequestsPerMin: 1000,
	}
	r := gin.New()
	RegisterRoutes(r, hb)
	return &testServer{router: r, tokens: tokens, bookings: bookings, review: review}
}

func (s *testServer) token(t *testing.T, sess models.Session) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken(sess, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestPublicDirectory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/pandits?city=delhi", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Pandits []models.PanditProfile `json:"pandits"`
	}](t, w)
	require.Len(t, list.Pandits, 1)

	w = s.do(t, http.MethodGet, "/api/pandits/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/pandits/pandit-1/dates?days=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/rituals", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingRequiresUserRole(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/booking/drafts", "", map[string]string{"panditId": "pandit-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pandit := s.token(t, models.Session{UserID: "pandit-1", Role: models.RolePandit})
	w = s.do(t, http.MethodPost, "/api/booking/drafts", pandit, map[string]string{"panditId": "pandit-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingFlowEndToEnd(t *testing.T) {
	s := newTestServer(t)
	user := s.token(t, models.Session{UserID: "user-1", Role: models.RoleUser, Name: "Rahul"})
	pandit := s.token(t, models.Session{UserID: "pandit-1", Role: models.RolePandit})

	w := s.do(t, http.MethodPost, "/api/booking/drafts", user, map[string]string{"panditId": "pandit-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decode[models.BookingDraft](t, w)
	base := "/api/booking/drafts/" + draft.ID

	// review with empty fields is refused with field errors
	w = s.do(t, http.MethodPost, base+"/review", user, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	verr := decode[utils.ErrorResponse](t, w)
	assert.Contains(t, verr.Fields, "ritualId")

	// confirm from detail is a step conflict
	w = s.do(t, http.MethodPost, base+"/confirm", user, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	w = s.do(t, http.MethodPatch, base, user, map[string]string{
		"ritualId": "griha-pravesh",
		"date":     date,
		"timeSlot": slot,
		"address":  "12 MG Road, Delhi",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, base+"/review", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviewed := decode[models.BookingDraft](t, w)
	assert.Equal(t, models.StepReview, reviewed.Step)
	assert.Equal(t, 5100.0, reviewed.Amount)

	// empty body is accepted at confirm
	req := httptest.NewRequest(http.MethodPost, base+"/confirm", nil)
	req.Header.Set("Authorization", "Bearer "+user)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	conf := decode[booking.Confirmation](t, rec)
	assert.Equal(t, models.StepCompleted, conf.Draft.Step)
	assert.Equal(t, models.StatusPending, conf.Booking.Status)
	assert.Equal(t, 1, s.bookings.Count())

	// another user cannot see the draft
	other := s.token(t, models.Session{UserID: "user-2", Role: models.RoleUser})
	w = s.do(t, http.MethodGet, base, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/pandit/bookings?status=pending", pandit, nil)
	require.Equal(t, http.StatusOK, w.Code)
	incoming := decode[struct {
		Bookings []models.BookingRecord `json:"bookings"`
	}](t, w)
	require.Len(t, incoming.Bookings, 1)

	w = s.do(t, http.MethodGet, "/api/pandit/bookings?status=bogus", pandit, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPost, "/api/pandit/bookings/"+conf.Booking.ID+"/accept", pandit, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusConfirmed, decode[models.BookingRecord](t, w).Status)

	// accepting twice is not a valid transition
	w = s.do(t, http.MethodPost, "/api/pandit/bookings/"+conf.Booking.ID+"/accept", pandit, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/bookings/"+conf.Booking.ID+"/cancel", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCancelled, decode[models.BookingRecord](t, w).Status)

	w = s.do(t, http.MethodGet, "/api/bookings", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestOpsRoutes(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.review.Add(context.Background(), &models.ReconciliationCase{
		DraftID: "draft-1",
		Record:  models.BookingRecord{ID: "b-1", DraftID: "draft-1"},
	}))

	w := s.do(t, http.MethodGet, "/api/ops/reconciliations", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/ops/reconciliations", "ops-key", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "draft-1")

	w = s.do(t, http.MethodPost, "/api/ops/reconciliations/draft-1/resolve", "ops-key", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/ops/reconciliations/missing/resolve", "ops-key", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
