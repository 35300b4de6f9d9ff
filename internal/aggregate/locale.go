package aggregate

import (
	"strconv"
	"strings"
	"time"
)

// Locale holds the words used to label buckets.
type Locale struct {
	Name     string
	Weekdays [7]string // indexed by time.Weekday
	Months   [12]string
	Week     string
}

var English = Locale{
	Name:     "en",
	Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	Months:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Week:     "Week",
}

var Indonesian = Locale{
	Name:     "id",
	Weekdays: [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"},
	Months:   [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
	Week:     "Minggu",
}

// LocaleFor maps a language tag such as "id" or "id-ID" to a Locale.
// Anything unrecognised falls back to English.
func LocaleFor(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "id" || strings.HasPrefix(tag, "id-") || strings.HasPrefix(tag, "id_") {
		return Indonesian
	}
	return English
}

func (l Locale) weekday(d time.Weekday) string {
	return l.Weekdays[d]
}

func (l Locale) week(n int) string {
	return l.Week + " " + strconv.Itoa(n)
}

func (l Locale) month(year int, month time.Month, withYear bool) string {
	label := l.Months[month-1]
	if withYear {
		label += " " + strconv.Itoa(year)
	}
	return label
}
