package analysis

import "time"

// Record is the persisted outcome of one analysis.
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Date          string    `json:"date"`
	PartyOne      string    `json:"partyOne"`
	PartyTwo      string    `json:"partyTwo"`
	AgreementType string    `json:"agreementType"`
	Description   string    `json:"description"`
	HTMLSummary   string    `json:"htmlSummary"`
	Content       string    `json:"content"`
	FilePath      string    `json:"filePath"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Assemble merges extracted fields with the normalized date, the raw model
// output and the stored file locator. Identity fields are set by the caller.
func Assemble(fields ExtractedFields, normalizedDate, raw, locator string) Record {
	return Record{
		Title:         fields.Title,
		Date:          normalizedDate,
		PartyOne:      fields.PartyOne,
		PartyTwo:      fields.PartyTwo,
		AgreementType: fields.AgreementType,
		Description:   fields.Description,
		HTMLSummary:   fields.HTMLSummary,
		Content:       raw,
		FilePath:      locator,
	}
}
