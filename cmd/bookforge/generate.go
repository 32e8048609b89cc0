package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/assemble"
	"github.com/hablemosbien/bookforge/internal/book"
	"github.com/hablemosbien/bookforge/internal/config"
	"github.com/hablemosbien/bookforge/internal/docx"
	"github.com/hablemosbien/bookforge/internal/home"
	"github.com/hablemosbien/bookforge/internal/providers"
)

var (
	genTopic        string
	genAudience     string
	genLanguage     string
	genChapters     int
	genOutline      string
	genInstructions string
	genAuthor       string
	genBio          string
	genNoIntro      bool
	genNoConclusion bool
	genOutPath      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a book and write the .docx locally",
	Long: `Generate a complete book without a running server.

Sections are generated one at a time, cleaned, and assembled into a
.docx written to the exports directory (or --out).

Examples:
  bookforge generate --topic "ancient rome" --audience students --chapters 5
  bookforge generate --topic jardinería --audience principiantes \
      --language spanish --chapters 3 --out jardin.docx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		genCfg := cfg.ResolvedGenerator()
		gen, err := providers.NewGenerator(genCfg)
		if err != nil {
			return err
		}
		limiter := providers.NewRateLimiter(genCfg.RateLimit)

		langStr := genLanguage
		if langStr == "" {
			langStr = cfg.Pipeline.DefaultLanguage
		}
		lang, err := book.ParseLanguage(langStr)
		if err != nil {
			return err
		}

		opts := assemble.Options{
			Topic:             genTopic,
			Audience:          genAudience,
			Language:          lang,
			Chapters:          genChapters,
			Outline:           genOutline,
			Instructions:      genInstructions,
			IncludeIntro:      !genNoIntro,
			IncludeConclusion: !genNoConclusion,
			AuthorName:        genAuthor,
			AuthorBio:         genBio,
			MinChapterWords:   cfg.Pipeline.MinChapterWords,
			MaxFloorAttempts:  cfg.Pipeline.MaxFloorAttempts,
			MaxChapters:       cfg.Pipeline.MaxChapters,
		}

		asm := assemble.New(gen, limiter, logger)
		asm.OnEvent = func(ev assemble.Event) {
			switch ev.Kind {
			case assemble.EventSectionStart:
				fmt.Printf("generating %s...\n", sectionLabel(ev))
			case assemble.EventSectionDone:
				fmt.Printf("  done (%d words)\n", ev.WordCount)
			case assemble.EventSectionError:
				fmt.Printf("  failed: %s\n", ev.Message)
			case assemble.EventFloorRetry:
				fmt.Printf("  short (%d words), extending...\n", ev.WordCount)
			case assemble.EventFloorWarning:
				fmt.Printf("  warning: %s\n", ev.Message)
			}
		}

		b, err := asm.Run(ctx, opts)
		if err != nil {
			return err
		}

		outPath := genOutPath
		if outPath == "" {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			outPath = h.ExportPath(docx.Filename(b.Title))
		}

		if err := docx.NewBuilder(b).Build(outPath); err != nil {
			return err
		}

		fmt.Printf("wrote %s (%d sections, %d words)\n", outPath, len(b.Sections), b.TotalWords())
		return nil
	},
}

func sectionLabel(ev assemble.Event) string {
	switch ev.Section {
	case book.KindChapter:
		return fmt.Sprintf("chapter %d", ev.Number)
	default:
		return string(ev.Section)
	}
}

func init() {
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "Book topic (required)")
	generateCmd.Flags().StringVar(&genAudience, "audience", "", "Target audience (required)")
	generateCmd.Flags().StringVar(&genLanguage, "language", "", "Book language (default from config)")
	generateCmd.Flags().IntVar(&genChapters, "chapters", 1, "Number of chapters")
	generateCmd.Flags().StringVar(&genOutline, "outline", "", "Structure to follow")
	generateCmd.Flags().StringVar(&genInstructions, "instructions", "", "Additional instructions")
	generateCmd.Flags().StringVar(&genAuthor, "author", "", "Author name for the title page")
	generateCmd.Flags().StringVar(&genBio, "bio", "", "Author bio for the title page")
	generateCmd.Flags().BoolVar(&genNoIntro, "no-intro", false, "Skip the introduction section")
	generateCmd.Flags().BoolVar(&genNoConclusion, "no-conclusion", false, "Skip the conclusions section")
	generateCmd.Flags().StringVarP(&genOutPath, "out", "f", "", "Output .docx path (default: exports dir)")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("audience")
	rootCmd.AddCommand(generateCmd)
}
