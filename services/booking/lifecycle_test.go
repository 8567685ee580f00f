package booking

import (
	"context"
	"testing"

	bookingRepo "panditseva/database/repository/booking"
	"panditseva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var panditSession = models.Session{UserID: "pandit-1", Role: models.RolePandit, Name: "Pandit Rajesh Sharma"}

func seedBooking(t *testing.T, repo *bookingRepo.MemoryBookingRepo, status models.BookingStatus) string {
	t.Helper()
	rec := &models.BookingRecord{
		ID:            "booking-1",
		DraftID:       "draft-1",
		UserID:        "user-1",
		PanditID:      "pandit-1",
		ScheduledDate: nextMonday,
		Status:        status,
		PaymentStatus: models.PaymentPaid,
	}
	_, _, err := repo.CreateIdempotent(context.Background(), rec)
	require.NoError(t, err)
	return rec.ID
}

func TestLifecycle_Transitions(t *testing.T) {
	type action func(*Lifecycle, context.Context, models.Session, string) (*models.BookingRecord, error)
	accept := (*Lifecycle).Accept
	decline := (*Lifecycle).Decline
	complete := (*Lifecycle).Complete
	cancel := (*Lifecycle).Cancel

	cases := []struct {
		name    string
		from    models.BookingStatus
		act     action
		session models.Session
		want    models.BookingStatus
		err     error
	}{
		{"accept pending", models.StatusPending, accept, panditSession, models.StatusConfirmed, nil},
		{"decline pending", models.StatusPending, decline, panditSession, models.StatusCancelled, nil},
		{"complete confirmed", models.StatusConfirmed, complete, panditSession, models.StatusCompleted, nil},
		{"user cancels pending", models.StatusPending, cancel, userSession, models.StatusCancelled, nil},
		{"user cancels confirmed", models.StatusConfirmed, cancel, userSession, models.StatusCancelled, nil},
		{"complete pending", models.StatusPending, complete, panditSession, "", ErrInvalidTransition},
		{"accept cancelled", models.StatusCancelled, accept, panditSession, "", ErrInvalidTransition},
		{"cancel completed", models.StatusCompleted, cancel, userSession, "", ErrInvalidTransition},
		{"user cannot accept", models.StatusPending, accept, userSession, "", ErrBookingNotFound},
		{"other pandit", models.StatusPending, accept, models.Session{UserID: "pandit-2", Role: models.RolePandit}, "", ErrBookingNotFound},
		{"other user", models.StatusPending, cancel, models.Session{UserID: "user-2", Role: models.RoleUser}, "", ErrBookingNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := bookingRepo.NewMemoryBookingRepo()
			id := seedBooking(t, repo, tc.from)
			lc := NewLifecycle(repo, nil)

			rec, err := tc.act(lc, context.Background(), tc.session, id)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				stored, _ := repo.GetByID(context.Background(), id)
				assert.Equal(t, tc.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.Status)
		})
	}
}

func TestLifecycle_UnknownBooking(t *testing.T) {
	lc := NewLifecycle(bookingRepo.NewMemoryBookingRepo(), nil)
	_, err := lc.Accept(context.Background(), panditSession, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestLifecycle_Listings(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	seedBooking(t, repo, models.StatusPending)
	lc := NewLifecycle(repo, nil)
	ctx := context.Background()

	mine, err := lc.ListForUser(ctx, userSession)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	pending, err := lc.ListForPandit(ctx, panditSession, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	done, err := lc.ListForPandit(ctx, panditSession, models.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, done)

	_, err = lc.ListForPandit(ctx, panditSession, "archived")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
