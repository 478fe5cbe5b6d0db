package extract

import (
	"strings"

	"github.com/handiism/paper-renamer/internal/pdftext"
)

const promptHeader = `You are given the opening text of an academic paper.
Identify the paper's first author, publication year and title.

Respond with a single JSON object and nothing else, using exactly these keys:
{"author": "<first author's family name>", "year": "<four-digit year>", "title": "<full title>"}

Rules:
- "author" is the family name (surname) of the first listed author only.
- "year" is the year of publication as four digits.
- "title" is the paper's title as printed, without the authors or venue.
- Do not invent values. Use only what the text states.`

// BuildPrompt renders the extraction prompt for doc. The same document always
// yields the same prompt.
func BuildPrompt(doc pdftext.Document) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n\n")
	if title := strings.TrimSpace(doc.InfoTitle); title != "" {
		sb.WriteString("The PDF metadata lists this title, which may be wrong or incomplete: ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Paper text:\n\"\"\"\n")
	sb.WriteString(doc.Text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}
