package weather

import (
	"fmt"
	"strings"
	"time"
)

const outputLayout = "2006-01-02 15:04"

var inputLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 03:04 PM",
	"2006-01-02",
	"03:04 PM",
	"15:04",
}

// FormatDate normalises a provider timestamp to "YYYY-MM-DD HH:MM".
// Time-only inputs are placed on today's date.
func FormatDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			now := time.Now()
			t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
		}
		return t.Format(outputLayout), nil
	}
	return "", fmt.Errorf("invalid date/time input %q", s)
}
