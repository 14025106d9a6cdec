package analysis

import (
	"regexp"
	"strings"
)

type labelRule struct {
	patterns []*regexp.Regexp
	set      func(*ExtractedFields, string)
}

// labelRules lists labels per field in priority order.
var labelRules = []labelRule{
	newLabelRule([]string{"judul", "title", "document title"}, func(f *ExtractedFields, v string) { f.Title = v }),
	newLabelRule([]string{"tanggal", "date", "tanggal perjanjian", "effective date"}, func(f *ExtractedFields, v string) { f.Date = v }),
	newLabelRule([]string{"pihak pertama", "first party", "party one", "partyOne", "pihak1", "pihak"}, func(f *ExtractedFields, v string) { f.PartyOne = v }),
	newLabelRule([]string{"pihak kedua", "second party", "party two", "partyTwo", "pihak2"}, func(f *ExtractedFields, v string) { f.PartyTwo = v }),
	newLabelRule([]string{"jenis perjanjian", "agreement type", "agreementType", "perjanjian", "agreement"}, func(f *ExtractedFields, v string) { f.AgreementType = v }),
	newLabelRule([]string{"deskripsi", "description", "summary", "ringkasan"}, func(f *ExtractedFields, v string) { f.Description = v }),
	newLabelRule([]string{"htmlSummary"}, func(f *ExtractedFields, v string) { f.HTMLSummary = v }),
}

var htmlFragmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<html.*?>.*?</html>`),
	regexp.MustCompile(`(?is)<div.*?>.*?</div>`),
	regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>.*?</p>`),
}

func newLabelRule(labels []string, set func(*ExtractedFields, string)) labelRule {
	rule := labelRule{set: set}
	for _, label := range labels {
		quoted := strings.ReplaceAll(regexp.QuoteMeta(label), " ", `[ \t]+`)
		// Line start, optional bullet or numbering, optional quotes or bold markers.
		pattern := `(?im)^[ \t>*#\-•]*(?:\d+[.)][ \t]*)?["']?\**` + quoted + `\**["']?[ \t]*\**[ \t]*[:：][ \t]*(.+)$`
		rule.patterns = append(rule.patterns, regexp.MustCompile(pattern))
	}
	return rule
}

// fromLabels scans "Label: value" lines. It yields nothing when no label and
// no HTML fragment matched.
func fromLabels(raw string) (ExtractedFields, bool) {
	var fields ExtractedFields
	found := false
	for _, rule := range labelRules {
		if v := firstLabelValue(raw, rule.patterns); v != "" {
			rule.set(&fields, v)
			found = true
		}
	}
	if fields.HTMLSummary == "" {
		for _, re := range htmlFragmentPatterns {
			if frag := re.FindString(raw); frag != "" {
				fields.HTMLSummary = strings.TrimSpace(frag)
				found = true
				break
			}
		}
	}
	return fields, found
}

func firstLabelValue(raw string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			if v := cleanLabelValue(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

func cleanLabelValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, ",")
	v = strings.Trim(v, "*\"' \t")
	return strings.TrimSpace(v)
}
