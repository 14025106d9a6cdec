package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Title         string    `json:"title"`
	AgreementType string    `json:"agreementType"`
	PartyOne      string    `json:"partyOne"`
	PartyTwo      string    `json:"partyTwo"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	HasFile       bool      `json:"hasFile"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DetailResponse adds the stored content.
type DetailResponse struct {
	DocumentResponse
	Content string `json:"content"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:            doc.ID,
		Type:          doc.Type,
		Title:         doc.Title,
		AgreementType: doc.AgreementType,
		PartyOne:      doc.PartyOne,
		PartyTwo:      doc.PartyTwo,
		Description:   doc.Description,
		Date:          doc.Date,
		HasFile:       doc.FilePath != "",
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
