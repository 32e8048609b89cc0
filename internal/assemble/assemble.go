// Package assemble drives the generation pipeline: it builds prompts,
// fetches content section by section, normalizes the text, and
// accumulates the result into a book.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hablemosbien/bookforge/internal/book"
	"github.com/hablemosbien/bookforge/internal/normalize"
	"github.com/hablemosbien/bookforge/internal/prompt"
	"github.com/hablemosbien/bookforge/internal/providers"
)

// Placeholder is the fixed string substituted for a section whose
// generation failed. It becomes the section's permanent content.
const Placeholder = "Error generating the chapter."

const (
	// DefaultMinChapterWords is the word-count floor for chapters.
	DefaultMinChapterWords = 2500

	// DefaultMaxFloorAttempts bounds the re-generation loop for a short
	// chapter. The floor loop must terminate even against a remote that
	// never produces enough text.
	DefaultMaxFloorAttempts = 5

	// DefaultMaxChapters is the default chapter-count cap.
	DefaultMaxChapters = 20

	// HardMaxChapters is the absolute chapter-count cap.
	HardMaxChapters = 50
)

// Options configures one generation run.
type Options struct {
	Topic        string
	Audience     string
	Language     book.Language
	Chapters     int
	Outline      string
	Instructions string

	IncludeIntro      bool
	IncludeConclusion bool

	AuthorName string
	AuthorBio  string

	// MinChapterWords is the word-count floor for chapters. Zero disables
	// the floor entirely. Intro and conclusion are never padded.
	MinChapterWords int

	// MaxFloorAttempts caps additional fetches for a short chapter.
	MaxFloorAttempts int

	// MaxChapters is the configured chapter cap (defaults apply).
	MaxChapters int
}

// Validate checks the options before any generation starts.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if strings.TrimSpace(o.Audience) == "" {
		return fmt.Errorf("audience is required")
	}
	maxCh := o.MaxChapters
	if maxCh <= 0 {
		maxCh = DefaultMaxChapters
	}
	if maxCh > HardMaxChapters {
		maxCh = HardMaxChapters
	}
	if o.Chapters < 1 || o.Chapters > maxCh {
		return fmt.Errorf("chapters must be between 1 and %d", maxCh)
	}
	return nil
}

// EventKind classifies progress events.
type EventKind string

const (
	EventSectionStart EventKind = "section_start"
	EventSectionDone  EventKind = "section_done"
	EventSectionError EventKind = "section_error"
	EventFloorRetry   EventKind = "floor_retry"
	EventFloorWarning EventKind = "floor_warning"
)

// Event is a progress update surfaced to the driving UI.
type Event struct {
	Kind      EventKind        `json:"kind"`
	Section   book.SectionKind `json:"section"`
	Number    int              `json:"number,omitempty"`
	WordCount int              `json:"word_count,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// Assembler runs the pipeline strictly sequentially: each section is
// generated, normalized, and appended before the next prompt is built.
type Assembler struct {
	gen     providers.Generator
	limiter *providers.RateLimiter
	logger  *slog.Logger

	// OnEvent, when set, receives progress updates. Called synchronously
	// from the generation goroutine.
	OnEvent func(Event)
}

// New creates an assembler. The limiter may be nil.
func New(gen providers.Generator, limiter *providers.RateLimiter, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{gen: gen, limiter: limiter, logger: logger}
}

// Run generates every section and returns the assembled book.
// Sections appear in order: intro (if included), chapter 1..N,
// conclusion (if included). A single section's fetch failure does not
// abort the run; the placeholder string becomes that section's content.
func (a *Assembler) Run(ctx context.Context, opts Options) (*book.Book, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b := book.New(opts.Topic, opts.Language)
	b.AuthorName = opts.AuthorName
	b.AuthorBio = opts.AuthorBio

	if opts.IncludeIntro {
		sec, err := a.generateSection(ctx, opts, book.KindIntro, 0)
		if err != nil {
			return nil, err
		}
		b.Append(sec)
	}

	for i := 1; i <= opts.Chapters; i++ {
		sec, err := a.generateChapter(ctx, opts, i)
		if err != nil {
			return nil, err
		}
		b.Append(sec)
	}

	if opts.IncludeConclusion {
		sec, err := a.generateSection(ctx, opts, book.KindConclusion, 0)
		if err != nil {
			return nil, err
		}
		b.Append(sec)
	}

	return b, nil
}

// generateSection fetches and normalizes one intro or conclusion
// section. No word-count floor applies.
func (a *Assembler) generateSection(ctx context.Context, opts Options, kind book.SectionKind, num int) (book.Section, error) {
	a.emit(Event{Kind: EventSectionStart, Section: kind, Number: num})

	text, failed, err := a.fetch(ctx, opts, kind, num)
	if err != nil {
		return book.Section{}, err
	}

	sec := book.Section{Kind: kind, Number: num, Text: text, Placeholder: failed}
	a.emit(Event{Kind: EventSectionDone, Section: kind, Number: num, WordCount: sec.WordCount()})
	return sec, nil
}

// generateChapter fetches a numbered chapter, re-invoking generation
// with the same prompt while the chapter is under the word-count floor.
// Each additional fetch appends with a blank-line separator. The loop is
// bounded by MaxFloorAttempts; hitting the cap leaves the text as-is and
// emits a warning rather than truncating.
func (a *Assembler) generateChapter(ctx context.Context, opts Options, num int) (book.Section, error) {
	a.emit(Event{Kind: EventSectionStart, Section: book.KindChapter, Number: num})

	text, failed, err := a.fetch(ctx, opts, book.KindChapter, num)
	if err != nil {
		return book.Section{}, err
	}

	floor := opts.MinChapterWords
	maxAttempts := opts.MaxFloorAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxFloorAttempts
	}

	wordCount := len(strings.Fields(text))
	attempts := 0
	for floor > 0 && wordCount < floor {
		if attempts >= maxAttempts {
			a.logger.Warn("chapter below word floor after max attempts",
				"chapter", num, "words", wordCount, "floor", floor, "attempts", attempts)
			a.emit(Event{
				Kind:      EventFloorWarning,
				Section:   book.KindChapter,
				Number:    num,
				WordCount: wordCount,
				Message:   fmt.Sprintf("chapter %d stopped at %d words after %d extra fetches", num, wordCount, attempts),
			})
			break
		}
		attempts++
		a.emit(Event{Kind: EventFloorRetry, Section: book.KindChapter, Number: num, WordCount: wordCount})

		more, moreFailed, err := a.fetch(ctx, opts, book.KindChapter, num)
		if err != nil {
			return book.Section{}, err
		}
		failed = failed || moreFailed

		text = text + "\n\n" + more
		wordCount = len(strings.Fields(text))
	}

	sec := book.Section{Kind: book.KindChapter, Number: num, Text: text, Placeholder: failed}
	a.emit(Event{Kind: EventSectionDone, Section: book.KindChapter, Number: num, WordCount: sec.WordCount()})
	return sec, nil
}

// fetch builds the prompt, performs one generation call, and normalizes
// the result. A fetch failure yields the placeholder string and an error
// event; only context cancellation aborts the run.
func (a *Assembler) fetch(ctx context.Context, opts Options, kind book.SectionKind, num int) (text string, failed bool, err error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", false, err
		}
	}

	p := prompt.Build(prompt.Request{
		Topic:        opts.Topic,
		Audience:     opts.Audience,
		Kind:         kind,
		Number:       num,
		Outline:      opts.Outline,
		Instructions: opts.Instructions,
		MinWords:     opts.MinChapterWords,
	})

	raw, genErr := a.gen.Generate(ctx, p)
	if genErr != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		a.logger.Error("generation failed", "section", kind, "number", num, "error", genErr)
		a.emit(Event{
			Kind:    EventSectionError,
			Section: kind,
			Number:  num,
			Message: genErr.Error(),
		})
		return Placeholder, true, nil
	}

	return normalize.Normalize(raw), false, nil
}

func (a *Assembler) emit(ev Event) {
	if a.OnEvent != nil {
		a.OnEvent(ev)
	}
}
