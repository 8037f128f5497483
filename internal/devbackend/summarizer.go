package devbackend

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

// summaryWords caps the mock summary length.
const summaryWords = 40

var languageNames = map[string]string{
	"en":  "Inggris",
	"id":  "Indonesia",
	"ban": "Bali",
	"jw":  "Jawa",
	"su":  "Sunda",
	"btx": "Batak Karo",
	"bts": "Batak Simalungun",
	"bbc": "Batak Toba",
	"min": "Minang",
}

// pdfTextRun matches literal strings drawn by the Tj operator of uncompressed content streams.
var pdfTextRun = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj`)

// Summarizer produces deterministic stand-in summaries of PDF documents.
type Summarizer struct{}

// Summarize checks that data is a PDF and returns a title and summary text in targetLang.
func (Summarizer) Summarize(filename string, data []byte, sourceLang, targetLang string) (title, result string, err error) {
	if len(data) == 0 {
		return "", "", apperrors.NewBadRequestError("File tidak boleh kosong.")
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return "", "", apperrors.NewBadRequestError("File harus berformat PDF.")
	}
	target, ok := languageNames[targetLang]
	if !ok {
		return "", "", apperrors.NewBadRequestError("Bahasa tujuan tidak didukung.")
	}
	source, ok := languageNames[sourceLang]
	if !ok {
		source = sourceLang
	}

	title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if title == "" || title == "." {
		title = "Dokumen"
	}

	words := strings.Fields(extractText(data))
	if len(words) > summaryWords {
		words = append(words[:summaryWords], "...")
	}
	body := strings.Join(words, " ")
	if body == "" {
		body = fmt.Sprintf("dokumen berukuran %d KB tanpa teks yang dapat dibaca", (len(data)+1023)/1024)
	}

	result = fmt.Sprintf("Ringkasan %s (bahasa %s, diterjemahkan dari bahasa %s): %s", title, target, source, body)
	return title, result, nil
}

func extractText(data []byte) string {
	var b strings.Builder
	for _, m := range pdfTextRun.FindAllSubmatch(data, -1) {
		text := strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`).Replace(string(m[1]))
		b.WriteString(text)
		b.WriteByte(' ')
	}
	return b.String()
}
