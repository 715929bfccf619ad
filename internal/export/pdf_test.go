package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-site/internal/models"
)

var testInfo = DocumentInfo{Footer: "Piers & Rakel Wedding - April 17-18, 2026"}

var testCatalog = EventCatalog{
	Ceremony:    EventSection{Title: "Ceremony", Date: "Friday", Venue: "Church", Description: "The ceremony."},
	Reception:   EventSection{Title: "Family Reception", Date: "Friday", Venue: "Barn", Description: "Family dinner."},
	Celebration: EventSection{Title: "Wedding Celebration", Date: "Saturday", Venue: "Barn", Description: "Party."},
}

func requirePDF(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output is not a PDF")
	require.Greater(t, len(out), 500)
}

func TestWriteDietaryPDFNoSubmissions(t *testing.T) {
	guests := []models.Guest{
		{Username: "jane.doe", DisplayName: "Jane Doe"},
		{Username: "ws.only", DisplayName: "Whitespace Only", DietaryRequirements: "   "},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDietaryPDF(&buf, guests, testInfo))
	requirePDF(t, &buf)
}

func TestWriteDietaryPDFWithSubmissions(t *testing.T) {
	guests := []models.Guest{
		{Username: "jane.doe", DisplayName: "Jane Doe", DietaryRequirements: "nut allergy"},
		{Username: "john.smith", DisplayName: "John Smith", DietaryRequirements: "vegan, no gluten"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDietaryPDF(&buf, guests, testInfo))
	requirePDF(t, &buf)
}

func TestWriteDietaryPDFPaginates(t *testing.T) {
	var guests []models.Guest
	for i := 0; i < 80; i++ {
		guests = append(guests, models.Guest{
			Username:            fmt.Sprintf("guest%d", i),
			DisplayName:         fmt.Sprintf("Guest Number %d", i),
			DietaryRequirements: "a fairly long dietary requirement that wraps onto more than one line when rendered",
		})
	}

	var one, many bytes.Buffer
	require.NoError(t, WriteDietaryPDF(&one, guests[:1], testInfo))
	require.NoError(t, WriteDietaryPDF(&many, guests, testInfo))
	requirePDF(t, &many)
	assert.Greater(t, many.Len(), one.Len())
}

func TestWriteEventDetailsPDFNoEvents(t *testing.T) {
	guest := models.Guest{Username: "jane.doe", DisplayName: "Jane Doe"}

	var buf bytes.Buffer
	require.NoError(t, WriteEventDetailsPDF(&buf, guest, testCatalog, testInfo))
	requirePDF(t, &buf)
}

func TestWriteEventDetailsPDFAllEvents(t *testing.T) {
	guest := models.Guest{
		Username:    "jane.doe",
		DisplayName: "Jane Doe",
		Events:      models.Events{Ceremony: true, Reception: true, Celebration: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEventDetailsPDF(&buf, guest, testCatalog, testInfo))
	requirePDF(t, &buf)
}

func TestExportersDoNotMutateInput(t *testing.T) {
	guests := []models.Guest{
		{Username: "jane.doe", DisplayName: "Jane Doe", DietaryRequirements: "vegan"},
	}
	snapshot := make([]models.Guest, len(guests))
	copy(snapshot, guests)

	var buf bytes.Buffer
	require.NoError(t, WriteGuestCSV(&buf, guests))
	require.NoError(t, WriteDietaryPDF(&buf, guests, testInfo))
	assert.Equal(t, snapshot, guests)
}
