package prompt

import (
	"strings"
	"testing"

	"github.com/hablemosbien/bookforge/internal/book"
)

func TestBuild_Intro(t *testing.T) {
	got := Build(Request{Topic: "sailing", Audience: "beginners", Kind: book.KindIntro})
	want := "Write an introduction about sailing for beginners. Use 500-800 words."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuild_ChapterWithFloorHint(t *testing.T) {
	got := Build(Request{
		Topic:    "sailing",
		Audience: "beginners",
		Kind:     book.KindChapter,
		Number:   4,
		MinWords: 2500,
	})
	want := "Write chapter 4 about sailing for beginners. Use at least 2500 words."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuild_ChapterWithoutFloor(t *testing.T) {
	got := Build(Request{Topic: "sailing", Audience: "beginners", Kind: book.KindChapter, Number: 1})
	if strings.Contains(got, "at least") {
		t.Fatalf("no length hint expected: %q", got)
	}
}

func TestBuild_AppendsOutlineThenInstructions(t *testing.T) {
	got := Build(Request{
		Topic:        "sailing",
		Audience:     "beginners",
		Kind:         book.KindConclusion,
		Outline:      "1. knots 2. sails",
		Instructions: "Keep it practical.",
	})
	outlineIdx := strings.Index(got, "Follow this structure: 1. knots 2. sails")
	instrIdx := strings.Index(got, "Keep it practical.")
	if outlineIdx < 0 || instrIdx < 0 {
		t.Fatalf("outline or instructions missing: %q", got)
	}
	if outlineIdx > instrIdx {
		t.Fatalf("outline must precede instructions: %q", got)
	}
}

func TestBuild_WhitespaceOnlyOptionalFieldsIgnored(t *testing.T) {
	got := Build(Request{
		Topic:        "sailing",
		Audience:     "beginners",
		Kind:         book.KindIntro,
		Outline:      "   ",
		Instructions: "\n\t",
	})
	if strings.Contains(got, "Follow this structure") {
		t.Fatalf("blank outline should be absent: %q", got)
	}
	if strings.TrimSpace(got) != got {
		t.Fatalf("trailing whitespace leaked: %q", got)
	}
}
