package analysis

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// indonesianMonths is scanned in order; the first hit is replaced once.
var indonesianMonths = []struct{ id, en string }{
	{"januari", "january"},
	{"februari", "february"},
	{"maret", "march"},
	{"april", "april"},
	{"mei", "may"},
	{"juni", "june"},
	{"juli", "july"},
	{"agustus", "august"},
	{"september", "september"},
	{"oktober", "october"},
	{"november", "november"},
	{"desember", "december"},
}

var strictLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2 January 2006",
	"02 January 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"02.01.2006",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"Monday, 2 January 2006",
	time.RFC3339,
}

// Numeric day/month/year dates are ambiguous to the lenient parser, which
// reads them month first. With or without a trailing time of day, the date
// part goes straight to the day-first layouts.
var numericDMY = regexp.MustCompile(`^(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4})(?:[\sTt,]+\d{1,2}[:.]\d{2}(?:[:.]\d{2})?)?$`)

// Normalizer turns free-form date strings into YYYY-MM-DD.
type Normalizer struct {
	// Now is the fallback clock. Defaults to time.Now.
	Now func() time.Time
	// Location, when set, is applied to the fallback date.
	Location *time.Location
}

// Normalize never fails; unparseable input yields today's date.
func (n Normalizer) Normalize(input string) string {
	if t, ok := ParseDate(input); ok {
		return t.Format(dateLayout)
	}
	return n.today()
}

// ParseDate reads a free-form date, accepting Indonesian month names.
// Numeric dates are read day first.
func ParseDate(input string) (t time.Time, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()

	s := strings.TrimSpace(cases.Lower(language.Indonesian).String(input))
	if s == "" {
		return time.Time{}, false
	}
	for _, m := range indonesianMonths {
		if strings.Contains(s, m.id) {
			s = strings.Replace(s, m.id, m.en, 1)
			break
		}
	}

	if m := numericDMY.FindStringSubmatch(s); m != nil {
		return parseStrict(m[1])
	}
	if t, ok := parseLenient(s); ok {
		return t, true
	}
	return parseStrict(s)
}

func parseLenient(s string) (time.Time, bool) {
	for _, candidate := range []string{titleCase(s), strings.ToUpper(s)} {
		t, err := dateparse.ParseIn(candidate, time.UTC)
		if err == nil && validYear(t) {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseStrict(s string) (time.Time, bool) {
	candidate := titleCase(s)
	for _, layout := range strictLayouts {
		for _, v := range []string{candidate, s} {
			t, err := time.Parse(layout, v)
			if err == nil && validYear(t) {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Casers keep state, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func validYear(t time.Time) bool {
	return t.Year() >= 1 && t.Year() <= 9999
}

func (n Normalizer) today() string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	t := now()
	if n.Location != nil {
		t = t.In(n.Location)
	}
	return t.Format(dateLayout)
}
