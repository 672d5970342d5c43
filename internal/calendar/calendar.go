// Package calendar classifies calendar dates for time recording.
//
// Classification consults a static, year-keyed holiday table first and only
// falls back to weekday rules when a date is not listed. The tables are
// immutable after startup; supporting a new year means adding its table
// here rather than mutating existing data.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the system.
const DateLayout = "2006-01-02"

// Kind identifies the recording relevant category of a calendar day. The
// German values are stored verbatim in the day_type column and shown in
// exports, so they must not be renamed.
type Kind string

const (
	// KindWerktag is an ordinary working day.
	KindWerktag Kind = "Werktag"
	// KindSamstag is a Saturday outside the holiday table.
	KindSamstag Kind = "Samstag"
	// KindSonntag is a Sunday outside the holiday table.
	KindSonntag Kind = "Sonntag"
	// KindFeiertag is a public holiday. No entries are permitted.
	KindFeiertag Kind = "Feiertag"
	// KindBrueckentag is a recommended bridge day next to a holiday. Entries
	// are permitted, but absence ranges skip it.
	KindBrueckentag Kind = "Brückentag"
)

// Classification is the result of classifying a single date.
type Classification struct {
	Kind Kind
	// Name carries the holiday or bridge day label when the date is listed
	// in the table, e.g. "Neujahr" or "nach Fronleichnam".
	Name string
}

// EntriesPermitted reports whether a worked entry may be recorded on a day
// of this classification.
func (c Classification) EntriesPermitted() bool {
	switch c.Kind {
	case KindWerktag, KindSamstag, KindBrueckentag:
		return true
	default:
		return false
	}
}

// AbsenceEligible reports whether an expanded absence range produces an
// entry for a day of this classification. Bridge days are deliberately not
// eligible: nobody should burn absence hours on a recommended day off.
func (c Classification) AbsenceEligible() bool {
	return c.Kind == KindWerktag || c.Kind == KindSamstag
}

// Entry is one static calendar table row.
type Entry struct {
	Kind Kind
	Name string
}

// yearTables holds the explicit day classifications per year. Dates missing
// from a listed year, and every date of an unlisted year, derive their
// classification from the weekday alone.
var yearTables = map[int]map[string]Entry{
	2025: table2025,
	2026: table2026,
}

var table2025 = map[string]Entry{
	"2025-01-01": {Kind: KindFeiertag, Name: "Neujahr"},
	"2025-04-18": {Kind: KindFeiertag, Name: "Karfreitag"},
	"2025-04-21": {Kind: KindFeiertag, Name: "Ostermontag"},
	"2025-05-01": {Kind: KindFeiertag, Name: "Tag der Arbeit"},
	"2025-05-29": {Kind: KindFeiertag, Name: "Christi Himmelfahrt"},
	"2025-06-09": {Kind: KindFeiertag, Name: "Pfingstmontag"},
	"2025-06-19": {Kind: KindFeiertag, Name: "Fronleichnam"},
	"2025-10-03": {Kind: KindFeiertag, Name: "Tag der Deutschen Einheit"},
	"2025-11-01": {Kind: KindFeiertag, Name: "Allerheiligen"},
	"2025-12-25": {Kind: KindFeiertag, Name: "1. Weihnachtsfeiertag"},
	"2025-12-26": {Kind: KindFeiertag, Name: "2. Weihnachtsfeiertag"},

	"2025-05-02": {Kind: KindBrueckentag, Name: "nach Tag der Arbeit"},
	"2025-05-30": {Kind: KindBrueckentag, Name: "nach Christi Himmelfahrt"},
	"2025-06-20": {Kind: KindBrueckentag, Name: "nach Fronleichnam"},
	"2025-12-22": {Kind: KindBrueckentag, Name: "vor Heiligabend"},
	"2025-12-23": {Kind: KindBrueckentag, Name: "vor Heiligabend"},
	"2025-12-29": {Kind: KindBrueckentag, Name: "nach Weihnachten"},
	"2025-12-30": {Kind: KindBrueckentag, Name: "nach Weihnachten"},
}

var table2026 = map[string]Entry{
	"2026-01-01": {Kind: KindFeiertag, Name: "Neujahr"},
	// Explicit Werktag override: listed so the table, not the weekday rule,
	// decides for a date adjacent to a holiday.
	"2026-01-02": {Kind: KindWerktag, Name: ""},
	"2026-04-03": {Kind: KindFeiertag, Name: "Karfreitag"},
	"2026-04-06": {Kind: KindFeiertag, Name: "Ostermontag"},
	"2026-05-01": {Kind: KindFeiertag, Name: "Tag der Arbeit"},
	"2026-05-14": {Kind: KindFeiertag, Name: "Christi Himmelfahrt"},
	"2026-05-25": {Kind: KindFeiertag, Name: "Pfingstmontag"},
	"2026-06-04": {Kind: KindFeiertag, Name: "Fronleichnam"},
	"2026-10-03": {Kind: KindFeiertag, Name: "Tag der Deutschen Einheit"},
	"2026-11-01": {Kind: KindFeiertag, Name: "Allerheiligen"},
	"2026-12-25": {Kind: KindFeiertag, Name: "1. Weihnachtsfeiertag"},
	"2026-12-26": {Kind: KindFeiertag, Name: "2. Weihnachtsfeiertag"},

	"2026-05-15": {Kind: KindBrueckentag, Name: "nach Christi Himmelfahrt"},
	"2026-06-05": {Kind: KindBrueckentag, Name: "nach Fronleichnam"},
	"2026-12-23": {Kind: KindBrueckentag, Name: "vor Heiligabend"},
	"2026-12-28": {Kind: KindBrueckentag, Name: "nach Weihnachten"},
	"2026-12-29": {Kind: KindBrueckentag, Name: "nach Weihnachten"},
	"2026-12-30": {Kind: KindBrueckentag, Name: "nach Weihnachten"},
}

// Classify returns the classification for the given date. It is total over
// all dates: table hit wins, otherwise the weekday decides.
func Classify(date time.Time) Classification {
	if table, ok := yearTables[date.Year()]; ok {
		if entry, ok := table[date.Format(DateLayout)]; ok {
			return Classification{Kind: entry.Kind, Name: entry.Name}
		}
	}

	switch date.Weekday() {
	case time.Sunday:
		return Classification{Kind: KindSonntag}
	case time.Saturday:
		return Classification{Kind: KindSamstag}
	default:
		return Classification{Kind: KindWerktag}
	}
}

// ClassifyDate parses an ISO yyyy-MM-dd date string and classifies it.
func ClassifyDate(date string) (Classification, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return Classification{}, err
	}
	return Classify(parsed), nil
}

// ParseDate parses an ISO yyyy-MM-dd date string in UTC.
func ParseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid date %q: %w", date, err)
	}
	return parsed, nil
}

// ListedYears returns the years with an explicit calendar table, ascending.
func ListedYears() []int {
	years := make([]int, 0, len(yearTables))
	for year := range yearTables {
		years = append(years, year)
	}
	for i := 1; i < len(years); i++ {
		for j := i; j > 0 && years[j] < years[j-1]; j-- {
			years[j], years[j-1] = years[j-1], years[j]
		}
	}
	return years
}
