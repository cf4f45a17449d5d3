package analytics

import (
	"strconv"
	"strings"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// ToSeverity maps a heterogeneous severity cell to the 0-3 scale.
// ok=false means unknown. The C-codes are checked most-severe first;
// anything else falls through to a numeric parse (float, truncated).
// Failure always degrades to unknown, never to an error.
func ToSeverity(cell string) (int, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return model.SeverityUnknown, false
	}
	switch {
	case strings.Contains(s, "C3"):
		return 3, true
	case strings.Contains(s, "C2"):
		return 2, true
	case strings.Contains(s, "C1"):
		return 1, true
	case strings.Contains(s, "C0"):
		return 0, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return model.SeverityUnknown, false
}
