// Package prompt composes generation instructions for the content fetcher.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hablemosbien/bookforge/internal/book"
)

// Request holds everything needed to build one section's prompt.
// Constructed once per section and discarded.
type Request struct {
	Topic    string
	Audience string
	Kind     book.SectionKind
	// Number is the 1-based chapter number. Ignored unless Kind is chapter.
	Number int
	// Outline is an optional table of contents the text should follow.
	Outline string
	// Instructions are optional free-form directions appended last.
	Instructions string
	// MinWords, when positive, adds the minimum length target to chapter
	// prompts. This is a hint only; nothing enforces it server-side.
	MinWords int
}

// Build returns the instruction string for the fetcher. Whitespace-only
// optional fields are treated as absent.
func Build(req Request) string {
	var sb strings.Builder

	switch req.Kind {
	case book.KindIntro:
		fmt.Fprintf(&sb, "Write an introduction about %s for %s. Use 500-800 words.", req.Topic, req.Audience)
	case book.KindConclusion:
		fmt.Fprintf(&sb, "Write conclusions about %s for %s. Use 500-800 words.", req.Topic, req.Audience)
	default:
		fmt.Fprintf(&sb, "Write chapter %d about %s for %s.", req.Number, req.Topic, req.Audience)
		if req.MinWords > 0 {
			fmt.Fprintf(&sb, " Use at least %d words.", req.MinWords)
		}
	}

	if outline := strings.TrimSpace(req.Outline); outline != "" {
		fmt.Fprintf(&sb, " Follow this structure: %s", outline)
	}
	if instr := strings.TrimSpace(req.Instructions); instr != "" {
		fmt.Fprintf(&sb, " %s", instr)
	}

	return sb.String()
}
