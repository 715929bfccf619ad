package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"wedding-site/internal/models"
)

// guestRow is one line of the Excel-compatible guest export. Column
// headers match the original admin spreadsheet.
type guestRow struct {
	DisplayName string `csv:"Display Name"`
	Username    string `csv:"Username"`
	Ceremony    string `csv:"Ceremony"`
	Reception   string `csv:"Reception"`
	Celebration string `csv:"Celebration"`
	Gift        string `csv:"Gift Selection"`
	Dietary     string `csv:"Dietary Requirements"`
}

// WriteGuestCSV writes the full guest list as CSV in store iteration
// order. An empty list still produces the header row. Quoting of fields
// containing delimiters or quotes follows RFC 4180.
func WriteGuestCSV(w io.Writer, guests []models.Guest) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(guests) == 0 {
		if err := enc.EncodeHeader(guestRow{}); err != nil {
			return fmt.Errorf("failed to encode header: %w", err)
		}
	}
	for _, g := range guests {
		row := guestRow{
			DisplayName: g.DisplayName,
			Username:    g.Username,
			Ceremony:    yesNo(g.Events.Ceremony),
			Reception:   yesNo(g.Events.Reception),
			Celebration: yesNo(g.Events.Celebration),
			Gift:        g.GiftSelection,
			Dietary:     g.DietaryRequirements,
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode guest %q: %w", g.Username, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
