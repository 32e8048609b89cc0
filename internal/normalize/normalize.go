// Package normalize converts raw generated text into clean prose
// paragraphs. All transformations are deterministic and ordered; running
// the full pipeline twice produces the same output as running it once.
package normalize

import (
	"regexp"
	"strings"
)

// markdownMarkers matches the literal markdown emphasis, heading, and
// code characters stripped from generated text.
var markdownMarkers = regexp.MustCompile("[#*_`]")

// boilerplate lists meta-commentary phrase patterns removed wherever they
// occur, case-insensitively. Both the English and Spanish sets stay active
// so output is clean regardless of the generation language.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)¡.*!`),
	regexp.MustCompile(`(?i)Aquí está el capítulo \d+`),
	regexp.MustCompile(`(?i)Este capítulo trata sobre`),
	regexp.MustCompile(`(?i)En este capítulo`),
	regexp.MustCompile(`(?i)El objetivo de este capítulo`),
	regexp.MustCompile(`(?i)Vamos a explorar`),
	regexp.MustCompile(`(?i)Here is chapter \d+`),
	regexp.MustCompile(`(?i)This chapter is about`),
	regexp.MustCompile(`(?i)In this chapter`),
	regexp.MustCompile(`(?i)The goal of this chapter`),
	regexp.MustCompile(`(?i)Let's explore`),
}

// parenthetical removes parenthesized asides including the parentheses.
// Non-greedy and non-nesting: an opening paren matches up to the nearest
// close, so a nested aside loses everything through its inner close and
// a stray trailing close survives. Known limitation, kept deliberately;
// the leftover can never pair up again, which keeps cleanup stable.
var parenthetical = regexp.MustCompile(`\(.*?\)`)

// excessBreaks collapses runs of 3+ line breaks to a paragraph boundary.
var excessBreaks = regexp.MustCompile(`\n{3,}`)

// StripMarkdown removes markdown marker characters and trims the result.
func StripMarkdown(text string) string {
	return strings.TrimSpace(markdownMarkers.ReplaceAllString(text, ""))
}

// RemoveBoilerplate strips meta-commentary phrases, parenthetical asides,
// and excess blank lines, then trims the whole text.
func RemoveBoilerplate(text string) string {
	for _, p := range boilerplate {
		text = p.ReplaceAllString(text, "")
	}
	text = parenthetical.ReplaceAllString(text, "")
	text = excessBreaks.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// RestructureLists rewrites hyphen list markers as em-dashes and forces a
// paragraph break after each run of list lines. Every surviving line is
// rejoined with a double line break, so downstream consumers treat each
// line as a paragraph candidate.
func RestructureLists(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	inList := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "-") {
			out = append(out, strings.Replace(stripped, "-", "—", 1))
			inList = true
			continue
		}
		if inList {
			// Paragraph break after the last consecutive list line.
			out = append(out, "")
			inList = false
		}
		out = append(out, stripped)
	}

	return strings.Join(out, "\n\n")
}

// Normalize runs the full cleanup pipeline: markdown stripping, list
// restructuring, then boilerplate removal. Later steps assume the earlier
// cleanup has happened, so the order is fixed.
func Normalize(text string) string {
	text = StripMarkdown(text)
	text = RestructureLists(text)
	return RemoveBoilerplate(text)
}
