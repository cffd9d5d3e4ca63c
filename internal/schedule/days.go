package schedule

// Weekday tables are indexed Sunday first, matching time.Weekday.
var (
	dayNamesRU = [7]string{"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}
	dayNamesEN = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	shortDayNamesRU = [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	shortDayNamesEN = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
)

// DayName returns the full weekday name for index 0..6 (0 is Sunday), or
// "" when out of range.
func DayName(i int, lang string) string {
	if i < 0 || i > 6 {
		return ""
	}
	if IsRussian(lang) {
		return dayNamesRU[i]
	}
	return dayNamesEN[i]
}

// ShortDayName is the two-letter form of DayName.
func ShortDayName(i int, lang string) string {
	if i < 0 || i > 6 {
		return ""
	}
	if IsRussian(lang) {
		return shortDayNamesRU[i]
	}
	return shortDayNamesEN[i]
}
