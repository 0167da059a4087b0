package schedule

import "microjournal/notify"

// Fixed check-in texts. Titles follow the coarse period of the day; bodies
// rotate through a fixed list keyed by hour, so the same hour always carries
// the same text across runs.
const (
	titleMorningCheckIn   = "Morning check-in"
	titleAfternoonCheckIn = "Afternoon check-in"
	titleEveningCheckIn   = "Evening check-in"
	titleNightCheckIn     = "Night check-in"

	titleMorningLog   = "Morning pages"
	bodyMorningLog    = "Start the day with a few lines. What's on your mind?"
	titleEveningLog   = "Evening reflection"
	bodyEveningLog    = "Before the day ends, note one thing that mattered."
	titleWeeklyReview = "Weekly review"
	bodyWeeklyReview  = "Look back at the week: wins, misses, and one goal for the next one."
	titleSnoozed      = "Snoozed reminder"
	bodySnoozed       = "You asked me to come back. A quick line about right now?"
)

var checkInBodies = []string{
	"What are you doing right now?",
	"One sentence: how is this hour going?",
	"Quick pulse: mood, energy, focus?",
	"Anything worth writing down from the last hour?",
	"Small moment, big moment - log it.",
	"What would you like to remember about now?",
}

// ContentForHour maps an hour of day (0..23) to the check-in text for that
// hourly slot. Deterministic: same hour, same content, every run.
func ContentForHour(hour int) notify.Content {
	var title string
	switch {
	case hour >= 5 && hour < 12:
		title = titleMorningCheckIn
	case hour >= 12 && hour < 17:
		title = titleAfternoonCheckIn
	case hour >= 17 && hour < 21:
		title = titleEveningCheckIn
	default:
		title = titleNightCheckIn
	}

	return notify.Content{
		Title: title,
		Body:  checkInBodies[hour%len(checkInBodies)],
	}
}

func contentMorningLog() notify.Content {
	return notify.Content{Title: titleMorningLog, Body: bodyMorningLog}
}

func contentEveningLog() notify.Content {
	return notify.Content{Title: titleEveningLog, Body: bodyEveningLog}
}

func contentWeeklyReview() notify.Content {
	return notify.Content{Title: titleWeeklyReview, Body: bodyWeeklyReview}
}

func contentSnoozed() notify.Content {
	return notify.Content{Title: titleSnoozed, Body: bodySnoozed}
}
