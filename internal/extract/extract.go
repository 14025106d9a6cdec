package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Kind is the declared media kind of an uploaded document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain; charset=utf-8"
)

// ErrInvalidDocument marks bytes that do not match their declared kind.
var ErrInvalidDocument = errors.New("invalid document")

// MIMEType returns the canonical MIME type for the kind.
func (k Kind) MIMEType() string {
	switch k {
	case KindPDF:
		return MimePDF
	case KindDOCX:
		return MimeDOCX
	case KindText:
		return MimeText
	default:
		return "application/octet-stream"
	}
}

// Binary reports whether the kind is sent to the model as an attachment.
func (k Kind) Binary() bool {
	return k == KindPDF
}

// KindFromFile resolves the media kind from the declared MIME type, falling
// back to the file extension. Zip payloads are inspected for OOXML parts.
func KindFromFile(fileName, mimeType string, data []byte) (Kind, bool) {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case MimePDF:
		return KindPDF, true
	case MimeDOCX:
		return KindDOCX, true
	case "text/plain", "text/markdown":
		return KindText, true
	case "application/zip":
		if isDOCX(data) {
			return KindDOCX, true
		}
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return KindPDF, true
	case ".docx":
		return KindDOCX, true
	case ".txt", ".md", ".text":
		return KindText, true
	}
	return "", false
}

// Extractor turns document bytes into plain text. It never returns an error:
// failures come back as a marker string so callers always have something to
// send downstream.
type Extractor struct {
	// MaxChars truncates the output when positive.
	MaxChars int
}

// ExtractText implements the text-extraction capability.
func (e Extractor) ExtractText(ctx context.Context, data []byte, kind Kind) string {
	if err := ctx.Err(); err != nil {
		return "Error extracting document text: " + err.Error()
	}
	var text string
	switch kind {
	case KindPDF:
		out, err := extractPDF(data)
		if err != nil {
			return "Error extracting PDF text: " + err.Error()
		}
		text = out
	case KindDOCX:
		out, err := extractDOCX(data)
		if err != nil {
			return "Error extracting Word document text: " + err.Error()
		}
		if strings.TrimSpace(out) == "" {
			return "Unable to extract DOCX content"
		}
		text = out
	default:
		text = string(data)
	}
	text = strings.ToValidUTF8(text, "")
	if e.MaxChars > 0 {
		if runes := []rune(text); len(runes) > e.MaxChars {
			text = string(runes[:e.MaxChars])
		}
	}
	return text
}

var pdfcpuOnce sync.Once

func pdfConfig() *model.Configuration {
	pdfcpuOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Validate checks that data plausibly is a document of the given kind.
func Validate(data []byte, kind Kind) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidDocument)
	}
	switch kind {
	case KindPDF:
		if err := api.Validate(bytes.NewReader(data), pdfConfig()); err != nil {
			return fmt.Errorf("%w: pdf: %v", ErrInvalidDocument, err)
		}
	case KindDOCX:
		if !isDOCX(data) {
			return fmt.Errorf("%w: docx: word/document.xml not found", ErrInvalidDocument)
		}
	case KindText:
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidDocument, kind)
	}
	return nil
}

// PageCount returns the number of pages of a PDF.
func PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), pdfConfig())
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	docFile, err := findDocumentXML(data)
	if err != nil {
		return "", err
	}
	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(string(raw)), nil
}

func findDocumentXML(data []byte) (*zip.File, error) {
	if len(data) == 0 {
		return nil, errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return f, nil
		}
	}
	return nil, errors.New("document.xml file not found")
}

func isDOCX(data []byte) bool {
	_, err := findDocumentXML(data)
	return err == nil
}

// stripDocxXML keeps character data and turns paragraph, break and tab
// elements into whitespace.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(buf.String())
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
