package assemble

import (
	"context"
	"strings"
	"testing"

	"github.com/hablemosbien/bookforge/internal/book"
	"github.com/hablemosbien/bookforge/internal/providers"
)

func testOptions() Options {
	return Options{
		Topic:             "the great war",
		Audience:          "students",
		Language:          book.LangEnglish,
		Chapters:          3,
		IncludeIntro:      true,
		IncludeConclusion: true,
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestRun_SectionOrdering(t *testing.T) {
	gen := providers.NewMockGenerator()
	a := New(gen, nil, nil)

	b, err := a.Run(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(b.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(b.Sections))
	}
	wantKinds := []book.SectionKind{
		book.KindIntro, book.KindChapter, book.KindChapter, book.KindChapter, book.KindConclusion,
	}
	for i, want := range wantKinds {
		if b.Sections[i].Kind != want {
			t.Fatalf("section %d: expected %s, got %s", i, want, b.Sections[i].Kind)
		}
	}
	for i, wantNum := range []int{0, 1, 2, 3, 0} {
		if b.Sections[i].Number != wantNum {
			t.Fatalf("section %d: expected number %d, got %d", i, wantNum, b.Sections[i].Number)
		}
	}
}

func TestRun_ValidatesInput(t *testing.T) {
	a := New(providers.NewMockGenerator(), nil, nil)

	opts := testOptions()
	opts.Topic = "   "
	if _, err := a.Run(context.Background(), opts); err == nil {
		t.Fatal("expected error for blank topic")
	}

	opts = testOptions()
	opts.Audience = ""
	if _, err := a.Run(context.Background(), opts); err == nil {
		t.Fatal("expected error for empty audience")
	}

	opts = testOptions()
	opts.Chapters = 21
	if _, err := a.Run(context.Background(), opts); err == nil {
		t.Fatal("expected error for chapter count over cap")
	}
}

func TestRun_WordCountFloor(t *testing.T) {
	// First fetch is short, the next two cross the floor together.
	gen := &providers.MockGenerator{
		Responses: []string{words(40), words(30), words(50)},
	}
	a := New(gen, nil, nil)

	opts := testOptions()
	opts.Chapters = 1
	opts.IncludeIntro = false
	opts.IncludeConclusion = false
	opts.MinChapterWords = 100

	b, err := a.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sec := b.Sections[0]
	if sec.WordCount() < 100 {
		t.Fatalf("expected at least 100 words, got %d", sec.WordCount())
	}
	if gen.Calls() != 3 {
		t.Fatalf("expected exactly 3 fetches, got %d", gen.Calls())
	}
	// Each additional fetch appends with a blank-line separator.
	if got := len(strings.Split(sec.Text, "\n\n")); got != 3 {
		t.Fatalf("expected 3 blank-line separated parts, got %d", got)
	}
}

func TestRun_FloorCapEmitsWarning(t *testing.T) {
	gen := &providers.MockGenerator{ResponseText: words(5)}
	a := New(gen, nil, nil)

	var warnings []Event
	a.OnEvent = func(ev Event) {
		if ev.Kind == EventFloorWarning {
			warnings = append(warnings, ev)
		}
	}

	opts := testOptions()
	opts.Chapters = 1
	opts.IncludeIntro = false
	opts.IncludeConclusion = false
	opts.MinChapterWords = 1000
	opts.MaxFloorAttempts = 2

	b, err := a.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Initial fetch plus two bounded extra attempts.
	if gen.Calls() != 3 {
		t.Fatalf("expected 3 fetches, got %d", gen.Calls())
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 floor warning, got %d", len(warnings))
	}
	if b.Sections[0].WordCount() >= 1000 {
		t.Fatalf("floor should not have been reached")
	}
}

func TestRun_NoFloorForIntroAndConclusion(t *testing.T) {
	gen := &providers.MockGenerator{ResponseText: words(10)}
	a := New(gen, nil, nil)

	opts := testOptions()
	opts.Chapters = 1
	opts.MinChapterWords = 100
	opts.MaxFloorAttempts = 1

	b, err := a.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Intro and conclusion fetch once each; the chapter fetches twice
	// (initial + one bounded floor attempt).
	if gen.Calls() != 4 {
		t.Fatalf("expected 4 fetches, got %d", gen.Calls())
	}
	if b.Sections[0].WordCount() != 10 || b.Sections[2].WordCount() != 10 {
		t.Fatal("intro and conclusion should not be padded")
	}
}

func TestRun_FetchFailureIsolation(t *testing.T) {
	// Five fetches: intro, ch1, ch2 (fails), ch3, conclusion.
	gen := &providers.MockGenerator{
		ResponseText: "real generated content",
		FailOnCall:   3,
	}
	a := New(gen, nil, nil)

	var errEvents []Event
	a.OnEvent = func(ev Event) {
		if ev.Kind == EventSectionError {
			errEvents = append(errEvents, ev)
		}
	}

	b, err := a.Run(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(b.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(b.Sections))
	}

	ch2 := b.Sections[2]
	if !ch2.Placeholder || ch2.Text != Placeholder {
		t.Fatalf("expected placeholder for chapter 2, got %+v", ch2)
	}
	for _, i := range []int{1, 3} {
		if b.Sections[i].Placeholder || b.Sections[i].Text != "real generated content" {
			t.Fatalf("section %d should have real content, got %+v", i, b.Sections[i])
		}
	}
	if len(errEvents) != 1 || errEvents[0].Number != 2 {
		t.Fatalf("expected one error event for chapter 2, got %+v", errEvents)
	}
}

func TestRun_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &providers.MockGenerator{ShouldFail: true}
	a := New(gen, providers.NewRateLimiter(60), nil)

	if _, err := a.Run(ctx, testOptions()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
