package generator

import (
	"strings"

	"legal-backend/internal/llm"
)

// DefaultModel drafts agreements from text-only prompts.
const DefaultModel = "gemini-1.5-flash"

const (
	TypeCooperation     = "PERJANJIAN_KERJASAMA"
	TypeSale            = "PERJANJIAN_JUAL_BELI"
	TypeLease           = "PERJANJIAN_SEWA"
	TypePowerOfAttorney = "SURAT_KUASA"
	TypeNonDisclosure   = "PERJANJIAN_KERAHASIAAN"
	TypeDefault         = "default"
)

const fullHTML = " Format dengan tag HTML yang sesuai (<h1>, <p>, <div>, dll) dan CSS styling agar dokumen terlihat profesional saat dibuka di browser." +
	" Berikan langsung dalam format dokumen HTML lengkap dengan <html>, <head>, dan <body> tags, TANPA menggunakan markdown code block (jangan gunakan ```html atau ```)."

var typeInstructions = map[string]string{
	TypeCooperation:     "Buat dokumen perjanjian kerjasama formal dalam format HTML lengkap yang mencakup ruang lingkup kerjasama, hak dan kewajiban para pihak, jangka waktu, dan ketentuan penutup.",
	TypeSale:            "Buat dokumen perjanjian jual beli dalam format HTML lengkap yang mencakup objek transaksi, harga dan pembayaran, penyerahan barang, dan jaminan-jaminan yang diberikan.",
	TypeLease:           "Buat dokumen perjanjian sewa dalam format HTML lengkap yang mencakup objek sewa, jangka waktu, biaya sewa, metode pembayaran, dan ketentuan penggunaan.",
	TypePowerOfAttorney: "Buat surat kuasa formal dalam format HTML lengkap yang mencakup identitas pemberi dan penerima kuasa, hal-hal yang dikuasakan, dan jangka waktu pemberian kuasa.",
	TypeNonDisclosure:   "Buat perjanjian kerahasiaan (NDA) dalam format HTML lengkap yang mencakup definisi informasi rahasia, kewajiban menjaga kerahasiaan, pengecualian, dan sanksi pelanggaran.",
}

const defaultInstruction = "Berikan format dokumen resmi dalam bahasa Indonesia yang lengkap dengan format HTML yang baik dan CSS styling agar dokumen terlihat profesional." +
	" Berikan langsung dalam format dokumen HTML lengkap dengan <html>, <head>, dan <body> tags, TANPA menggunakan markdown code block (jangan gunakan ```html atau ```)."

const noFences = "Penting: Jangan berikan output dalam format markdown atau dengan pembatas kode (code blocks). Berikan langsung HTML murni tanpa ``` di awal atau akhir."

// Instructions returns the drafting instructions for a document type.
// Unknown types get the generic instructions.
func Instructions(documentType string) string {
	if base, ok := typeInstructions[strings.ToUpper(documentType)]; ok {
		return base + fullHTML
	}
	return defaultInstruction
}

// BuildPrompt renders the drafting prompt. Optional details are listed only
// when present.
func BuildPrompt(req Request) string {
	docType := req.DocumentType
	if docType == "" {
		docType = TypeDefault
	}

	var b strings.Builder
	b.WriteString("Buat dokumen perjanjian dengan format HTML dengan detail berikut:\n")
	line := func(label, value string) {
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	line("Tipe Dokumen", docType)
	line("Judul", req.Title)
	line("Jenis Perjanjian", req.AgreementType)
	line("Pihak Pertama", req.PartyOne)
	line("Pihak Kedua", req.PartyTwo)
	line("Deskripsi", req.Description)
	line("Tanggal", req.Date)

	for _, opt := range []struct{ label, value string }{
		{"Jabatan Pihak Pertama", req.PositionOne},
		{"Jabatan Pihak Kedua", req.PositionTwo},
		{"Durasi", req.Duration},
		{"Tempat Penandatanganan", req.SigningPlace},
		{"Nilai", req.Value},
		{"Alamat", req.Address},
		{"Penyelesaian Sengketa", req.DisputeResolution},
		{"NPWP", req.TaxID},
		{"Hukum yang Berlaku", req.GoverningLaw},
	} {
		if opt.value != "" {
			line(opt.label, opt.value)
		}
	}

	b.WriteString("\n")
	b.WriteString(Instructions(docType))
	b.WriteString("\n\n")
	b.WriteString(noFences)
	return b.String()
}

// Prompt wraps the drafting prompt for the given model.
func Prompt(model string, req Request) llm.Prompt {
	if model == "" {
		model = DefaultModel
	}
	return llm.Prompt{Model: model, Parts: []llm.Part{llm.TextPart(BuildPrompt(req))}}
}
