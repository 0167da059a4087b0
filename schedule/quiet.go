package schedule

import "microjournal/settings"

// InQuietHours reports whether the given minute of day (0..1439) falls inside
// the quiet window. The window is half-open: a minute equal to the start is
// quiet, a minute equal to the end is not.
//
// Start > End means the window spans midnight: [start..1440) U [0..end).
// Start == End is an empty window, so quiet hours are effectively off.
func InQuietHours(minuteOfDay int, w settings.QuietHours) bool {
	if !w.Enabled {
		return false
	}

	start := w.Start.MinuteOfDay()
	end := w.End.MinuteOfDay()

	if start <= end {
		return minuteOfDay >= start && minuteOfDay < end
	}
	return minuteOfDay >= start || minuteOfDay < end
}
