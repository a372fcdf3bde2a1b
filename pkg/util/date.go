package util

import (
	"fmt"
	"strings"
	"time"
)

// BCBDateLayout is the dd/MM/yyyy layout the provider requires.
const BCBDateLayout = "02/01/2006"

// FormatDateForAPI converts yyyy-MM-dd into dd/MM/yyyy. Input without a "-"
// is assumed to be in provider order already and is returned unchanged.
// Ranges are not validated; the provider rejects malformed dates.
func FormatDateForAPI(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// ParseBCBDate parses a provider date (dd/MM/yyyy) at day precision in UTC.
func ParseBCBDate(s string) (time.Time, error) {
	t, err := time.Parse(BCBDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatBCBDate renders t in provider order.
func FormatBCBDate(t time.Time) string { return t.Format(BCBDateLayout) }
