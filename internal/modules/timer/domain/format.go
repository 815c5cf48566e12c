package domain

import (
	"fmt"
	"time"
)

type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleTaiwan  Locale = "zh-TW"
)

type units struct {
	hour, minute, second string
	dateLayout           string
}

var localeUnits = map[Locale]units{
	LocaleEnglish: {hour: "h", minute: "m", second: "s", dateLayout: "2006-01-02"},
	LocaleTaiwan:  {hour: "時", minute: "分", second: "秒", dateLayout: "2006/1/2"},
}

func unitsFor(locale Locale) units {
	if u, ok := localeUnits[locale]; ok {
		return u
	}
	return localeUnits[LocaleEnglish]
}

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatClock renders a 24-hour HH:MM wall-clock time, or --:-- when unset.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

func FormatDate(t time.Time, locale Locale) string {
	return t.Local().Format(unitsFor(locale).dateLayout)
}

// FormatDuration renders seconds with the largest non-zero leading unit,
// e.g. "1h 2m 3s", "2m 3s", "3s".
func FormatDuration(seconds int, locale Locale) string {
	u := unitsFor(locale)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%d%s %d%s %d%s", h, u.hour, m, u.minute, s, u.second)
	case m > 0:
		return fmt.Sprintf("%d%s %d%s", m, u.minute, s, u.second)
	default:
		return fmt.Sprintf("%d%s", s, u.second)
	}
}

// CompletionNotice returns the title and body announced when a session ends.
func CompletionNotice(taskName string, locale Locale) (string, string) {
	minutes := SessionSeconds / 60
	if locale == LocaleTaiwan {
		return "時間到！", fmt.Sprintf("任務「%s」的 %d 分鐘時間已到", taskName, minutes)
	}
	return "Time's up!", fmt.Sprintf("The %d-minute session for %q is over", minutes, taskName)
}
