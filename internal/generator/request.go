package generator

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"legal-backend/internal/analysis"
)

// Request describes the agreement to draft.
type Request struct {
	Title         string `json:"title"`
	AgreementType string `json:"agreementType"`
	PartyOne      string `json:"partyOne"`
	PartyTwo      string `json:"partyTwo"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	DocumentType  string `json:"documentType"`

	PositionOne       string `json:"positionOne"`
	PositionTwo       string `json:"positionTwo"`
	Duration          string `json:"duration"`
	SigningPlace      string `json:"signingPlace"`
	Value             string `json:"value"`
	Address           string `json:"address"`
	DisputeResolution string `json:"disputeResolution"`
	TaxID             string `json:"taxId"`
	GoverningLaw      string `json:"governingLaw"`
}

type fieldRule struct {
	name     string
	value    *string
	required bool
	max      int
}

func (r *Request) rules() []fieldRule {
	return []fieldRule{
		{"title", &r.Title, true, 255},
		{"agreementType", &r.AgreementType, true, 255},
		{"partyOne", &r.PartyOne, true, 255},
		{"partyTwo", &r.PartyTwo, true, 255},
		{"description", &r.Description, true, 0},
		{"date", &r.Date, true, 0},
		{"documentType", &r.DocumentType, false, 100},
		{"positionOne", &r.PositionOne, false, 255},
		{"positionTwo", &r.PositionTwo, false, 255},
		{"duration", &r.Duration, false, 255},
		{"signingPlace", &r.SigningPlace, false, 255},
		{"value", &r.Value, false, 255},
		{"address", &r.Address, false, 1000},
		{"disputeResolution", &r.DisputeResolution, false, 255},
		{"taxId", &r.TaxID, false, 50},
		{"governingLaw", &r.GoverningLaw, false, 255},
	}
}

// Normalize trims every field and checks required fields, lengths and the date.
func (r Request) Normalize() (Request, error) {
	fields := map[string]string{}
	for _, rule := range r.rules() {
		*rule.value = strings.TrimSpace(*rule.value)
		v := *rule.value
		switch {
		case rule.required && v == "":
			fields[rule.name] = "is required"
		case rule.max > 0 && utf8.RuneCountInString(v) > rule.max:
			fields[rule.name] = "must be at most " + strconv.Itoa(rule.max) + " characters"
		}
	}
	if _, bad := fields["date"]; !bad {
		if _, ok := analysis.ParseDate(r.Date); !ok {
			fields["date"] = "is not a valid date"
		}
	}
	if len(fields) > 0 {
		return Request{}, &ValidationError{Fields: fields}
	}
	return r, nil
}

// fieldNames lists invalid fields in a stable order.
func fieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
