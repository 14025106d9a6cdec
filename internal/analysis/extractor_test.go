package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireComplete(t *testing.T, f ExtractedFields) {
	t.Helper()
	for name, v := range map[string]string{
		"title":         f.Title,
		"date":          f.Date,
		"partyOne":      f.PartyOne,
		"partyTwo":      f.PartyTwo,
		"agreementType": f.AgreementType,
		"description":   f.Description,
		"htmlSummary":   f.HTMLSummary,
	} {
		require.NotEmpty(t, v, "field %s is empty", name)
	}
}

func TestExtractNeverReturnsEmptyFields(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\xff\xfe\xfd",
		"```",
		"``````",
		"{}",
		"[]",
		"null",
		`{"title": ""}`,
		"Judul:",
		"Judul: \"\"",
		"<p></p>",
		"the model refused to answer",
		"```json\n{not json}\n```",
	}
	ex := NewExtractor()
	for _, in := range inputs {
		fields, _ := ex.Extract(in)
		requireComplete(t, fields)
	}
}

func TestExtractFencedJSONWinsOverLooseObject(t *testing.T) {
	raw := "Here you go {\"title\": \"Loose\"}\n```json\n{\"title\": \"Fenced\", \"date\": \"2024-03-10\"}\n```"

	fields, stage := NewExtractor().Extract(raw)

	assert.Equal(t, StageFencedJSON, stage)
	assert.Equal(t, "Fenced", fields.Title)
	assert.Equal(t, "2024-03-10", fields.Date)
}

func TestExtractSkipsNonJSONFences(t *testing.T) {
	raw := "```html\n<p>Ringkasan</p>\n```\n```\n{\"judul\": \"Kontrak\"}\n```"

	fields, stage := NewExtractor().Extract(raw)

	assert.Equal(t, StageFencedJSON, stage)
	assert.Equal(t, "Kontrak", fields.Title)
}

func TestExtractBareJSONWithAliases(t *testing.T) {
	raw := `{"Judul": "Perjanjian Sewa", "TANGGAL": 20240310, "pihak": ["Budi", "Ani"], "pihak2": "Siti", "perjanjian": "Sewa", "deskripsi": "Sewa rumah", "signed": true}`

	fields, stage := NewExtractor().Extract(raw)

	assert.Equal(t, StageBareJSON, stage)
	assert.Equal(t, "Perjanjian Sewa", fields.Title)
	assert.Equal(t, "20240310", fields.Date)
	assert.Equal(t, "Budi, Ani", fields.PartyOne)
	assert.Equal(t, "Siti", fields.PartyTwo)
	assert.Equal(t, "Sewa", fields.AgreementType)
	assert.Equal(t, "<p>Sewa rumah</p>", fields.HTMLSummary)
}

func TestExtractExactKeyBeatsCaseInsensitiveMatch(t *testing.T) {
	fields, _ := NewExtractor().Extract(`{"Title": "second", "title": "first"}`)
	assert.Equal(t, "first", fields.Title)
}

func TestExtractBareJSONMustBeTheWholeResponse(t *testing.T) {
	fields, stage := NewExtractor().Extract("{\"title\": \"A\"}\nTitle: B\nnot json")

	assert.Equal(t, StageHeuristic, stage)
	assert.Equal(t, "B", fields.Title)

	fields, stage = NewExtractor().Extract("  {\"title\": \"A\"}\n\n")
	assert.Equal(t, StageBareJSON, stage)
	assert.Equal(t, "A", fields.Title)
}

func TestExtractUnrecognizedObjectFallsThrough(t *testing.T) {
	fields, stage := NewExtractor().Extract(`{"foo": "bar"}`)

	assert.Equal(t, StageDefault, stage)
	assert.Equal(t, DefaultFields(), fields)
}

func TestExtractHeuristicLabels(t *testing.T) {
	raw := `Berikut hasil analisis:
**Judul:** Perjanjian Sewa Rumah
- Tanggal: 10 Maret 2024
1. Pihak Pertama: Budi Santoso
2. Pihak Kedua: Siti Aminah
Jenis Perjanjian: Sewa Menyewa
Deskripsi: Sewa rumah & tanah selama 2 tahun`

	fields, stage := NewExtractor().Extract(raw)

	assert.Equal(t, StageHeuristic, stage)
	assert.Equal(t, "Perjanjian Sewa Rumah", fields.Title)
	assert.Equal(t, "10 Maret 2024", fields.Date)
	assert.Equal(t, "Budi Santoso", fields.PartyOne)
	assert.Equal(t, "Siti Aminah", fields.PartyTwo)
	assert.Equal(t, "Sewa Menyewa", fields.AgreementType)
	assert.Equal(t, "Sewa rumah & tanah selama 2 tahun", fields.Description)
	assert.Equal(t, "<p>Sewa rumah &amp; tanah selama 2 tahun</p>", fields.HTMLSummary)
}

func TestExtractHeuristicRecoversTruncatedJSON(t *testing.T) {
	raw := "{\n  \"title\": \"Perjanjian Kerja\",\n  \"date\": \"1 Mei 2024\",\n  \"description\": \"Kontrak kerja"

	fields, stage := NewExtractor().Extract(raw)

	assert.Equal(t, StageHeuristic, stage)
	assert.Equal(t, "Perjanjian Kerja", fields.Title)
	assert.Equal(t, "1 Mei 2024", fields.Date)
	assert.Equal(t, "Kontrak kerja", fields.Description)
}

func TestExtractHeuristicPrefersLabelPriority(t *testing.T) {
	raw := "Pihak: Umum\nPihak Pertama: PT Maju"

	fields, _ := NewExtractor().Extract(raw)

	assert.Equal(t, "PT Maju", fields.PartyOne)
}

func TestExtractHTMLFragment(t *testing.T) {
	raw := "Ringkasan:\n<div class=\"summary\"><p>Poin utama</p></div>\nselesai"

	fields, stage := NewExtractor().Extract(raw)

	assert.Equal(t, StageHeuristic, stage)
	assert.Equal(t, `<div class="summary"><p>Poin utama</p></div>`, fields.HTMLSummary)
	assert.Equal(t, PlaceholderDescription, fields.Description)
}

func TestExtractMissingDescriptionSummary(t *testing.T) {
	fields, _ := NewExtractor().Extract(`{"title": "Kontrak"}`)

	assert.Equal(t, PlaceholderDescription, fields.Description)
	assert.Equal(t, "<p>No summary available</p>", fields.HTMLSummary)
	assert.Equal(t, PlaceholderDate, fields.Date)
}

func TestExtractDefaultRecord(t *testing.T) {
	fields, stage := NewExtractor().Extract("I cannot help with that.")

	assert.Equal(t, StageDefault, stage)
	assert.True(t, stage.Degraded())
	assert.Equal(t, ExtractedFields{
		Title:         "Unknown Document",
		Date:          "Unknown Date",
		PartyOne:      "Unknown Party 1",
		PartyTwo:      "Unknown Party 2",
		AgreementType: "Unknown Agreement Type",
		Description:   "Unable to extract description",
		HTMLSummary:   "<p>No summary could be generated for this document.</p>",
	}, fields)
}

func TestExtractorWithCustomStrategies(t *testing.T) {
	ex := NewExtractorWith(Strategy{
		Stage: StageHeuristic,
		Func: func(string) (ExtractedFields, bool) {
			return ExtractedFields{Title: "custom"}, true
		},
	})

	fields, stage := ex.Extract("anything")

	assert.Equal(t, StageHeuristic, stage)
	assert.Equal(t, "custom", fields.Title)
	requireComplete(t, fields)
}
