// Package extract pulls plain text out of the document formats the tool
// server lists: .txt and .md are read as-is, .pdf goes through
// github.com/ledongthuc/pdf.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextFromFile returns the text content of the file at path. Non-PDF files
// are treated as UTF-8 text; invalid byte sequences are dropped rather than
// failing the read.
func TextFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return TextFromBytes(data, path)
}

// TextFromBytes extracts text from an in-memory payload, keyed on the file
// extension.
func TextFromBytes(data []byte, fileName string) (string, error) {
	if strings.ToLower(filepath.Ext(fileName)) == ".pdf" {
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf %s: %w", fileName, err)
		}
		return text, nil
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func extractPDF(data []byte) (string, error) {
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
