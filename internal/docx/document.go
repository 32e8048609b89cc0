package docx

import (
	"fmt"
	"strings"

	"github.com/hablemosbien/bookforge/internal/book"
)

// generateDocument builds word/document.xml: title page, optional author
// block, then each section under its heading with a page break after.
func (b *Builder) generateDocument() string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
`)

	lang := b.book.Language

	// Title: centered, bold, 14pt serif, language-cased.
	title := book.FormatTitle(b.book.Title, lang)
	sb.WriteString(centeredParagraph(title, titleSize, true))

	// Author name, then a forced page break.
	if b.book.AuthorName != "" {
		sb.WriteString(centeredParagraph(b.book.AuthorName, authorSize, false))
		sb.WriteString(pageBreakParagraph)
	}

	// Author bio under its own heading, then a forced page break.
	if b.book.AuthorBio != "" {
		sb.WriteString(headingParagraph("Author Information", "Heading2", heading2Size))
		sb.WriteString(bodyParagraph(b.book.AuthorBio))
		sb.WriteString(pageBreakParagraph)
	}

	// Sections: heading, justified paragraphs, page break after each
	// section including the last.
	for _, sec := range b.book.Sections {
		heading := book.SectionHeading(lang, sec)
		sb.WriteString(headingParagraph(heading, "Heading1", heading1Size))

		for _, para := range sec.Paragraphs() {
			// Inner line breaks become spaces; the paragraph is the unit.
			flat := strings.Join(strings.Fields(para), " ")
			sb.WriteString(bodyParagraph(flat))
		}

		sb.WriteString(pageBreakParagraph)
	}

	// Section properties: pocket page size, uniform margins, and the
	// footer carrying the page-number field on every page.
	fmt.Fprintf(&sb, `<w:sectPr>
<w:footerReference w:type="default" r:id="rId2"/>
<w:pgSz w:w="%d" w:h="%d"/>
<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>
</w:sectPr>
`, pageWidthTwips, pageHeightTwips, marginTwips, marginTwips, marginTwips, marginTwips)

	sb.WriteString("</w:body>\n</w:document>\n")
	return sb.String()
}

// pageBreakParagraph forces a page break.
const pageBreakParagraph = `<w:p><w:r><w:br w:type="page"/></w:r></w:p>
`

// centeredParagraph renders a centered run in the serif body font.
func centeredParagraph(text string, size int, bold bool) string {
	boldTag := ""
	if bold {
		boldTag = "<w:b/>"
	}
	return fmt.Sprintf(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:rFonts w:ascii=%q w:hAnsi=%q/>%s<w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>
`, bodyFont, bodyFont, boldTag, size, escapeXML(text))
}

// headingParagraph renders a styled heading run.
func headingParagraph(text, style string, size int) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:pStyle w:val=%q/></w:pPr><w:r><w:rPr><w:rFonts w:ascii=%q w:hAnsi=%q/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>
`, style, bodyFont, bodyFont, size, escapeXML(text))
}

// bodyParagraph renders a justified body paragraph with no spacing after.
func bodyParagraph(text string) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:spacing w:after="0"/><w:jc w:val="both"/></w:pPr><w:r><w:rPr><w:rFonts w:ascii=%q w:hAnsi=%q/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>
`, bodyFont, bodyFont, bodySize, escapeXML(text))
}
