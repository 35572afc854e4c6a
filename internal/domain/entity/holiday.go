package entity

type HolidayKind string

const (
	HolidayChristmas    HolidayKind = "christmas"
	HolidayNewYear      HolidayKind = "new_year"
	HolidayLunarNewYear HolidayKind = "lunar_new_year"
)

var holidayNames = map[HolidayKind]string{
	HolidayChristmas:    "聖誕節",
	HolidayNewYear:      "新年",
	HolidayLunarNewYear: "農曆新年",
}

// DisplayName returns the greeting name used in card subjects and bodies.
func (k HolidayKind) DisplayName() string {
	if name, ok := holidayNames[k]; ok {
		return name
	}
	return string(k)
}
