package timing

import (
	"strings"
	"time"
)

// DisplayLayout is the layout used for every timestamp shown to students.
const DisplayLayout = "2006-01-02 15:04:05"

// ZoneLabel returns a short human name for loc: the city of an IANA zone
// name ("Asia/Riyadh" becomes "Riyadh"), or the name itself otherwise.
func ZoneLabel(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	name := loc.String()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Format renders t in loc as "2006-01-02 15:04:05 (Riyadh)". A zero time
// renders as the empty string so callers can substitute "N/A".
func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout) + " (" + ZoneLabel(loc) + ")"
}
