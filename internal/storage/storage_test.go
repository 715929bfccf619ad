package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-site/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "guests.json"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func janeDoe() models.Guest {
	return models.Guest{
		Username:    "jane.doe",
		DisplayName: "Jane Doe",
		Events:      models.Events{Ceremony: true, Reception: true, Celebration: true},
	}
}

func TestNewStorageCreatesEmptyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data", "guests.json")
	s, err := NewStorage(file, zerolog.Nop())
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	guests, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestNewStorageCorruptFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "guests.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, err := NewStorage(file, zerolog.Nop())
	assert.Error(t, err)
}

func TestInsertAndFind(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))

	// Lookup is case-insensitive and ignores surrounding whitespace.
	got, err := s.FindByUsername("  Jane.DOE ")
	require.NoError(t, err)
	assert.Equal(t, janeDoe(), got)

	guests, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, guests, 1)
}

func TestInsertNormalizesUsername(t *testing.T) {
	s := newTestStorage(t)
	guest := janeDoe()
	guest.Username = " Jane.Doe "
	require.NoError(t, s.Insert(guest))

	got, err := s.FindByUsername("jane.doe")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", got.Username)
}

func TestInsertConflict(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))

	dup := janeDoe()
	dup.Username = "JANE.DOE"
	err := s.Insert(dup)
	assert.ErrorIs(t, err, ErrConflict)

	guests, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, guests, 1, "failed insert must leave the store unchanged")
}

func TestFindByUsernameNotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.FindByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))

	_, err := s.Update("nobody", func(g *models.Guest) {
		g.DietaryRequirements = "vegan"
	})
	assert.ErrorIs(t, err, ErrNotFound)

	guests, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Empty(t, guests[0].DietaryRequirements)
}

func TestUpdateMergesFieldGroup(t *testing.T) {
	s := newTestStorage(t)
	guest := janeDoe()
	guest.GiftSelection = "Honeymoon Fund"
	guest.PaymentStatus = models.PaymentClicked
	require.NoError(t, s.Insert(guest))

	updated, err := s.Update("jane.doe", func(g *models.Guest) {
		g.DietaryRequirements = "nut allergy"
	})
	require.NoError(t, err)

	assert.Equal(t, "nut allergy", updated.DietaryRequirements)
	assert.Equal(t, "Honeymoon Fund", updated.GiftSelection, "sibling field groups must survive a merge")
	assert.Equal(t, models.PaymentClicked, updated.PaymentStatus)
	assert.Equal(t, guest.Events, updated.Events)
}

func TestUpdateDoesNotTouchOtherGuests(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))

	other := models.Guest{
		Username:      "john.smith",
		DisplayName:   "John Smith",
		Events:        models.Events{Ceremony: true},
		GiftSelection: "Charity Donation",
		PaymentStatus: models.PaymentClicked,
	}
	require.NoError(t, s.Insert(other))

	_, err := s.Update("jane.doe", func(g *models.Guest) {
		g.DietaryRequirements = "nut allergy"
	})
	require.NoError(t, err)

	got, err := s.FindByUsername("john.smith")
	require.NoError(t, err)
	assert.Equal(t, other, got)
}

func TestRemoveTwice(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))

	require.NoError(t, s.Remove("jane.doe"))
	assert.ErrorIs(t, s.Remove("jane.doe"), ErrNotFound)
}

func TestSaveLoadRoundTripIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))
	other := janeDoe()
	other.Username = "john.smith"
	other.DisplayName = "John Smith"
	require.NoError(t, s.Insert(other))

	before, err := os.ReadFile(s.file)
	require.NoError(t, err)

	guests, err := s.LoadAll()
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(guests))

	after, err := os.ReadFile(s.file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Insert(janeDoe()))

	_, err := os.Stat(s.file + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "jane.doe", NormalizeUsername("  Jane.DOE "))
	assert.Equal(t, "", NormalizeUsername("   "))
}
