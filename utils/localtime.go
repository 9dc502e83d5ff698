package utils

import "time"

// LocalTZ is the wall-clock zone used at display, filter and export boundaries.
// Storage stays in UTC.
var LocalTZ *time.Location

func init() {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		// Bogotá has no DST; a fixed offset is equivalent.
		loc = time.FixedZone("America/Bogota", -5*3600)
	}
	LocalTZ = loc
}

// FormatLocal renders a stored UTC instant as a local display string,
// or a placeholder when the timestamp is absent.
func FormatLocal(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.UTC().In(LocalTZ).Format("2006-01-02 15:04:05")
}
