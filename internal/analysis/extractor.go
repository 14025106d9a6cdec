package analysis

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ExtractedFields is the structured view of a model response. Date is raw.
type ExtractedFields struct {
	Title         string `json:"title"`
	Date          string `json:"date"`
	PartyOne      string `json:"partyOne"`
	PartyTwo      string `json:"partyTwo"`
	AgreementType string `json:"agreementType"`
	Description   string `json:"description"`
	HTMLSummary   string `json:"htmlSummary"`
}

// Stage names the strategy that produced the fields.
type Stage string

const (
	StageFencedJSON Stage = "fenced_json"
	StageBareJSON   Stage = "bare_json"
	StageHeuristic  Stage = "heuristic"
	StageDefault    Stage = "default"
)

// Degraded reports whether the model ignored the requested JSON format.
func (s Stage) Degraded() bool {
	return s == StageHeuristic || s == StageDefault
}

const (
	PlaceholderTitle         = "Unknown Document"
	PlaceholderDate          = "Unknown Date"
	PlaceholderPartyOne      = "Unknown Party 1"
	PlaceholderPartyTwo      = "Unknown Party 2"
	PlaceholderAgreementType = "Unknown Agreement Type"
	PlaceholderDescription   = "Unable to extract description"
	PlaceholderHTMLSummary   = "<p>No summary could be generated for this document.</p>"

	noSummaryHTML = "<p>No summary available</p>"
)

// DefaultFields is the complete placeholder record.
func DefaultFields() ExtractedFields {
	return ExtractedFields{
		Title:         PlaceholderTitle,
		Date:          PlaceholderDate,
		PartyOne:      PlaceholderPartyOne,
		PartyTwo:      PlaceholderPartyTwo,
		AgreementType: PlaceholderAgreementType,
		Description:   PlaceholderDescription,
		HTMLSummary:   PlaceholderHTMLSummary,
	}
}

// Strategy is one extraction attempt. Func reports false when it found nothing.
type Strategy struct {
	Stage Stage
	Func  func(raw string) (ExtractedFields, bool)
}

// Extractor pulls ExtractedFields out of untrusted model output.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor returns an Extractor with the standard strategy order.
func NewExtractor() *Extractor {
	return &Extractor{strategies: []Strategy{
		{Stage: StageFencedJSON, Func: fromFencedJSON},
		{Stage: StageBareJSON, Func: fromBareJSON},
		{Stage: StageHeuristic, Func: fromLabels},
	}}
}

// NewExtractorWith runs the given strategies in order before the default record.
func NewExtractorWith(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Extract never fails: every returned field is non-empty.
func (e *Extractor) Extract(raw string) (ExtractedFields, Stage) {
	raw = strings.ToValidUTF8(raw, "")
	for _, s := range e.strategies {
		fields, ok := s.Func(raw)
		if !ok {
			continue
		}
		return finalize(fields), s.Stage
	}
	return DefaultFields(), StageDefault
}

func finalize(f ExtractedFields) ExtractedFields {
	f.Title = clean(f.Title)
	f.Date = clean(f.Date)
	f.PartyOne = clean(f.PartyOne)
	f.PartyTwo = clean(f.PartyTwo)
	f.AgreementType = clean(f.AgreementType)
	f.Description = clean(f.Description)
	f.HTMLSummary = clean(f.HTMLSummary)

	if f.HTMLSummary == "" {
		if f.Description == "" {
			f.HTMLSummary = noSummaryHTML
		} else {
			f.HTMLSummary = "<p>" + html.EscapeString(f.Description) + "</p>"
		}
	}
	f.Title = orDefault(f.Title, PlaceholderTitle)
	f.Date = orDefault(f.Date, PlaceholderDate)
	f.PartyOne = orDefault(f.PartyOne, PlaceholderPartyOne)
	f.PartyTwo = orDefault(f.PartyTwo, PlaceholderPartyTwo)
	f.AgreementType = orDefault(f.AgreementType, PlaceholderAgreementType)
	f.Description = orDefault(f.Description, PlaceholderDescription)
	return f
}

func clean(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, ""))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var fencePattern = regexp.MustCompile("(?s)```([A-Za-z]*)(.*?)```")

func fromFencedJSON(raw string) (ExtractedFields, bool) {
	for _, m := range fencePattern.FindAllStringSubmatch(raw, -1) {
		if tag := m[1]; tag != "" && !strings.EqualFold(tag, "json") {
			continue
		}
		if fields, ok := fromJSONObject(m[2]); ok {
			return fields, true
		}
	}
	return ExtractedFields{}, false
}

func fromBareJSON(raw string) (ExtractedFields, bool) {
	return fromJSONObject(raw)
}

// jsonAliases maps each field to the keys models have been seen to use for it.
var jsonAliases = []struct {
	keys []string
	set  func(*ExtractedFields, string)
}{
	{[]string{"title", "judul", "documentTitle"}, func(f *ExtractedFields, v string) { f.Title = v }},
	{[]string{"date", "tanggal"}, func(f *ExtractedFields, v string) { f.Date = v }},
	{[]string{"partyOne", "party_one", "pihak", "pihak1", "firstParty"}, func(f *ExtractedFields, v string) { f.PartyOne = v }},
	{[]string{"partyTwo", "party_two", "pihak2", "secondParty"}, func(f *ExtractedFields, v string) { f.PartyTwo = v }},
	{[]string{"agreementType", "agreement_type", "perjanjian", "jenisPerjanjian"}, func(f *ExtractedFields, v string) { f.AgreementType = v }},
	{[]string{"description", "deskripsi", "summary"}, func(f *ExtractedFields, v string) { f.Description = v }},
	{[]string{"htmlSummary", "html_summary"}, func(f *ExtractedFields, v string) { f.HTMLSummary = v }},
}

// fromJSONObject succeeds only for a lone object with at least one
// recognized, non-empty field.
func fromJSONObject(s string) (ExtractedFields, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return ExtractedFields{}, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return ExtractedFields{}, false
	}
	// The object must be the whole input.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ExtractedFields{}, false
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields ExtractedFields
	found := 0
	for _, alias := range jsonAliases {
		v := lookup(obj, keys, alias.keys)
		if v == "" {
			continue
		}
		alias.set(&fields, v)
		found++
	}
	return fields, found > 0
}

func lookup(obj map[string]any, sortedKeys, aliases []string) string {
	for _, a := range aliases {
		if v, ok := obj[a]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	for _, a := range aliases {
		for _, k := range sortedKeys {
			if k != a && strings.EqualFold(k, a) {
				if s := stringify(obj[k]); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
