package schedule

import (
	"fmt"
	"strings"
	"time"
)

var monthsGenitiveRU = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatDate renders the numeric date the way ru-RU and en-US browsers do:
// 19.10.2026 or 10/19/2026.
func FormatDate(t time.Time, lang string) string {
	if IsRussian(lang) {
		return t.Format("02.01.2006")
	}
	return t.Format("1/2/2006")
}

// FormatTime renders hours, minutes and seconds: 14:05:09 or 2:05:09 PM.
func FormatTime(t time.Time, lang string) string {
	if IsRussian(lang) {
		return t.Format("15:04:05")
	}
	return t.Format("3:04:05 PM")
}

// FormatShortTime renders two-digit hours and minutes.
func FormatShortTime(t time.Time, lang string) string {
	if IsRussian(lang) {
		return t.Format("15:04")
	}
	return t.Format("03:04 PM")
}

// FormatLongDate renders weekday, day, month and year in words.
func FormatLongDate(t time.Time, lang string) string {
	if IsRussian(lang) {
		weekday := strings.ToLower(DayName(int(t.Weekday()), "ru"))
		return fmt.Sprintf("%s, %d %s %d г.", weekday, t.Day(), monthsGenitiveRU[t.Month()-1], t.Year())
	}
	return t.Format("Monday, January 2, 2006")
}
