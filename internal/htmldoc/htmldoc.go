// Package htmldoc holds the stateless HTML helpers shared by document
// generation and document download.
package htmldoc

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const shellHead = `<!DOCTYPE html>
<html lang="id">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>`

const shellStyle = `</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            color: #333;
            font-size: 12pt;
        }
        h1 {
            text-align: center;
            font-size: 18pt;
            font-weight: bold;
            margin-bottom: 24pt;
            border-bottom: 1px solid #ccc;
            padding-bottom: 10px;
        }
        h2 {
            font-size: 14pt;
            margin-top: 16pt;
        }
        p {
            margin-bottom: 10pt;
            text-align: justify;
        }
        .signature-section {
            margin-top: 50px;
            display: flex;
            justify-content: space-between;
        }
        .signature-block {
            width: 45%;
            text-align: center;
        }
        .signature-line {
            border-top: 1px solid #333;
            margin-top: 70px;
            margin-bottom: 10px;
        }
        @media print {
            body {
                font-size: 12pt;
            }
            .no-print {
                display: none;
            }
        }
    </style>
</head>
<body>
    `

const shellTail = `
</body>
</html>
`

// Wrap places content inside a printable A4-friendly HTML document.
func Wrap(content, title string) string {
	var b strings.Builder
	b.Grow(len(shellHead) + len(shellStyle) + len(content) + len(title) + len(shellTail))
	b.WriteString(shellHead)
	b.WriteString(html.EscapeString(title))
	b.WriteString(shellStyle)
	b.WriteString(content)
	b.WriteString(shellTail)
	return b.String()
}

var (
	openFence  = regexp.MustCompile("(?m)^```(?:html|HTML)?[ \t]*\r?\n")
	closeFence = regexp.MustCompile("(?m)\r?\n```[ \t]*$")
	anyTag     = regexp.MustCompile(`(?i)<(?:[a-z][a-z0-9]*)(?:\s[^>]*)?/?>`)
)

// Clean strips markdown code fences a model may wrap around HTML output.
func Clean(content string) string {
	content = openFence.ReplaceAllString(content, "")
	content = closeFence.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// IsFullDocument reports whether s already carries its own document shell.
func IsFullDocument(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html")
}

// LooksLikeHTML reports whether s contains at least one HTML element tag.
func LooksLikeHTML(s string) bool {
	return anyTag.MatchString(s)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown converts GitHub-flavored markdown to an HTML fragment.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Normalize turns arbitrary model output into a standalone HTML document:
// fences are stripped, markdown is rendered and a shell is added when missing.
func Normalize(content, title string) (string, error) {
	cleaned := Clean(content)
	if IsFullDocument(cleaned) {
		return cleaned, nil
	}
	if !LooksLikeHTML(cleaned) {
		rendered, err := RenderMarkdown(cleaned)
		if err != nil {
			return "", err
		}
		cleaned = rendered
	}
	return Wrap(cleaned, title), nil
}
