package booking

import (
	"context"
	"testing"

	panditRepo "panditseva/database/repository/pandit"
	"panditseva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_DropsInvalidProfiles(t *testing.T) {
	bad := rajesh()
	bad.ID = "pandit-bad"
	bad.ExperienceYears = -2
	unknownRitual := rajesh()
	unknownRitual.ID = "pandit-odd"
	unknownRitual.RitualsOffered = []string{"not-a-ritual"}

	dir := NewDirectory(panditRepo.NewMemoryPanditRepo(rajesh(), bad, unknownRitual), "INR", nil)
	ctx := context.Background()

	list, err := dir.ListAvailablePandits(ctx, models.PanditFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pandit-1", list[0].ID)

	_, err = dir.GetPandit(ctx, "pandit-bad")
	assert.ErrorIs(t, err, ErrPanditNotFound)
	_, err = dir.GetPandit(ctx, "missing")
	assert.ErrorIs(t, err, ErrPanditNotFound)
}

func TestDirectory_Filter(t *testing.T) {
	dir := NewDirectory(panditRepo.NewMemoryPanditRepo(rajesh()), "INR", nil)
	ctx := context.Background()

	hits, err := dir.ListAvailablePandits(ctx, models.PanditFilter{City: "delhi", Specialization: "ganesh-puja"})
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	misses, err := dir.ListAvailablePandits(ctx, models.PanditFilter{City: "Mumbai"})
	require.NoError(t, err)
	assert.Empty(t, misses)
}

func TestDirectory_OfferingsUseStablePrices(t *testing.T) {
	dir := NewDirectory(panditRepo.NewMemoryPanditRepo(rajesh()), "INR", nil)
	ctx := context.Background()

	first, err := dir.Offerings(ctx, "pandit-1")
	require.NoError(t, err)
	second, err := dir.Offerings(ctx, "pandit-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first, 2)
	assert.Equal(t, "griha-pravesh", first[0].ID)
	assert.Equal(t, 5500.0, first[0].Price, "pandit price wins")
	assert.Equal(t, "ganesh-puja", first[1].ID)
	assert.Equal(t, 2100.0, first[1].Price, "catalog base price as fallback")
	assert.Equal(t, "INR", first[1].Currency)
}

func TestDirectory_SlotsAndDates(t *testing.T) {
	dir := NewDirectory(panditRepo.NewMemoryPanditRepo(rajesh()), "INR", nil)
	ctx := context.Background()

	slots, err := dir.Slots(ctx, "pandit-1", nextMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{morningSlot}, slots)

	dates, err := dir.Dates(ctx, "pandit-1", fixedNow, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-01-02", "2030-01-07"}, dates)
}

func TestCatalog(t *testing.T) {
	all := ListRituals()
	assert.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}
	_, ok := GetRitual("griha-pravesh")
	assert.True(t, ok)
	assert.False(t, KnownRitual("nope"))

	p := rajesh()
	_, ok = OfferingFor(&p, "kali-puja", "INR")
	assert.False(t, ok, "known ritual the pandit does not offer")
}
