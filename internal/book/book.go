// Package book defines the data model for a generated book: its sections,
// supported languages, and the language-aware title formatting rules.
package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SectionKind identifies the role of a generated section.
type SectionKind string

const (
	KindIntro      SectionKind = "intro"
	KindChapter    SectionKind = "chapter"
	KindConclusion SectionKind = "conclusion"
)

// Section is one generated unit of book content after normalization.
type Section struct {
	Kind SectionKind `json:"kind"`
	// Number is the 1-based chapter number. Zero for intro and conclusion.
	Number int    `json:"number,omitempty"`
	Text   string `json:"text"`
	// Placeholder is true when generation failed and the fixed error
	// string was substituted for the section's content.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Paragraphs splits the section text on double newlines.
// Empty chunks are dropped; inner single newlines are preserved for the
// document builder to flatten.
func (s Section) Paragraphs() []string {
	parts := strings.Split(s.Text, "\n\n")
	var paras []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paras = append(paras, p)
	}
	return paras
}

// WordCount returns the number of whitespace-delimited tokens in the section.
func (s Section) WordCount() int {
	return len(strings.Fields(s.Text))
}

// Book accumulates generated sections for one run. It is built
// incrementally by the assembler and consumed once by the docx builder.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name,omitempty"`
	AuthorBio  string    `json:"author_bio,omitempty"`
	Language   Language  `json:"language"`
	Sections   []Section `json:"sections"`
	CreatedAt  time.Time `json:"created_at"`
}

// New creates an empty book for the given topic.
func New(title string, lang Language) *Book {
	return &Book{
		ID:        uuid.New().String(),
		Title:     title,
		Language:  lang,
		CreatedAt: time.Now(),
	}
}

// Append adds a section to the book.
func (b *Book) Append(s Section) {
	b.Sections = append(b.Sections, s)
}

// Chapters returns only the numbered chapter sections, in order.
func (b *Book) Chapters() []Section {
	var out []Section
	for _, s := range b.Sections {
		if s.Kind == KindChapter {
			out = append(out, s)
		}
	}
	return out
}

// TotalWords sums word counts across all sections.
func (b *Book) TotalWords() int {
	total := 0
	for _, s := range b.Sections {
		total += s.WordCount()
	}
	return total
}
