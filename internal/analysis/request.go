package analysis

import "legal-backend/internal/extract"

// MediaKind is the declared kind of the uploaded document.
type MediaKind = extract.Kind

const (
	KindPDF  = extract.KindPDF
	KindDOCX = extract.KindDOCX
	KindText = extract.KindText
)

// AnalysisRequest is one document submitted for analysis.
type AnalysisRequest struct {
	FileName string
	Data     []byte
	Kind     MediaKind
}

// Field describes one key the model is asked to return.
type Field struct {
	Key     string
	Meaning string
	Synonym string
}

// FieldSchema is the ordered set of keys requested from the model.
type FieldSchema []Field

// DefaultSchema lists the fields extracted from every legal document.
var DefaultSchema = FieldSchema{
	{Key: "title", Meaning: "document title", Synonym: "judul"},
	{Key: "date", Meaning: "date of the agreement", Synonym: "tanggal"},
	{Key: "partyOne", Meaning: "first party", Synonym: "pihak pertama"},
	{Key: "partyTwo", Meaning: "second party", Synonym: "pihak kedua"},
	{Key: "agreementType", Meaning: "agreement type", Synonym: "jenis perjanjian"},
	{Key: "description", Meaning: "short description of the document", Synonym: "deskripsi"},
	{Key: "htmlSummary", Meaning: "HTML summary with the key points"},
}

// Keys returns the schema keys in order.
func (s FieldSchema) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, f := range s {
		keys = append(keys, f.Key)
	}
	return keys
}
