// Package docx generates OOXML wordprocessing documents from an
// assembled book. The output is a zip archive with hand-built XML
// members; layout follows the fixed pocket-book geometry.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hablemosbien/bookforge/internal/book"
)

// MIMEType is the media type of the generated artifact.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Page geometry in twentieths of a point (1 inch = 1440 twips).
const (
	pageWidthTwips  = 7920  // 5.5 in
	pageHeightTwips = 12240 // 8.5 in
	marginTwips     = 1152  // 0.8 in
)

// Font sizes in half-points.
const (
	titleSize    = 28 // 14 pt
	authorSize   = 24 // 12 pt
	heading1Size = 24 // 12 pt
	heading2Size = 22 // 11 pt
	bodySize     = 22 // 11 pt
)

const bodyFont = "Times New Roman"

// Builder creates .docx files from a completed book.
// It performs no validation of book content; only serialization
// failures surface as errors.
type Builder struct {
	book *book.Book
}

// NewBuilder creates a new docx builder.
func NewBuilder(b *book.Book) *Builder {
	return &Builder{book: b}
}

// Build generates the document and writes it to the specified path.
func (b *Builder) Build(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	return b.WriteTo(f)
}

// WriteTo writes the document to a writer.
func (b *Builder) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	members := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/footer1.xml", footerXML},
		{"word/document.xml", b.generateDocument()},
	}

	for _, m := range members {
		fw, err := zw.Create(m.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", m.name, err)
		}
		if _, err := fw.Write([]byte(m.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", m.name, err)
		}
	}

	return zw.Close()
}

// BuildToBuffer generates the document and returns it as a byte buffer.
func (b *Builder) BuildToBuffer() (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := b.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Filename derives the output file name from the book topic.
func Filename(topic string) string {
	name := strings.TrimSpace(topic)
	if name == "" {
		name = "book"
	}
	// Drop path separators so the topic cannot escape the output dir.
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '-'
		default:
			return r
		}
	}, name)
	return name + ".docx"
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
