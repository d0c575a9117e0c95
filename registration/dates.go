package registration

import (
	"fmt"
	"strings"
	"time"
)

// DateLayouts are the accepted spellings of a calendar date, tried in order.
// The first matches the HTML date input, the second the masked Brazilian
// form, the last full timestamps sent by API clients.
var DateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	time.RFC3339Nano,
}

// ParseDate parses s as a calendar date and returns it at UTC midnight.
// Timestamps carrying an offset are converted to UTC before the date is
// taken. Impossible dates such as 31/02/2024 are rejected.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
