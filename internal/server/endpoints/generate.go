package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/internal/assemble"
	"github.com/hablemosbien/bookforge/internal/book"
	"github.com/hablemosbien/bookforge/internal/providers"
	"github.com/hablemosbien/bookforge/internal/svcctx"
)

// generateRequestSchema validates the request shape before any field is
// interpreted, so shape errors and semantic errors read differently.
const generateRequestSchema = `{
	"type": "object",
	"required": ["topic", "audience", "chapters"],
	"properties": {
		"topic":              {"type": "string", "minLength": 1},
		"audience":           {"type": "string", "minLength": 1},
		"language":           {"type": "string"},
		"chapters":           {"type": "integer", "minimum": 1},
		"outline":            {"type": "string"},
		"instructions":       {"type": "string"},
		"include_intro":      {"type": "boolean"},
		"include_conclusion": {"type": "boolean"},
		"author_name":        {"type": "string"},
		"author_bio":         {"type": "string"},
		"min_chapter_words":  {"type": "integer", "minimum": 0}
	},
	"additionalProperties": false
}`

var generateSchema = jsonschema.MustCompileString("generate_request.json", generateRequestSchema)

// GenerateRequest is the request body for starting a generation run.
type GenerateRequest struct {
	Topic             string `json:"topic"`
	Audience          string `json:"audience"`
	Language          string `json:"language,omitempty"`
	Chapters          int    `json:"chapters"`
	Outline           string `json:"outline,omitempty"`
	Instructions      string `json:"instructions,omitempty"`
	IncludeIntro      *bool  `json:"include_intro,omitempty"`
	IncludeConclusion *bool  `json:"include_conclusion,omitempty"`
	AuthorName        string `json:"author_name,omitempty"`
	AuthorBio         string `json:"author_bio,omitempty"`
	MinChapterWords   *int   `json:"min_chapter_words,omitempty"`
}

// GenerateResponse is returned when a generation run is accepted.
type GenerateResponse struct {
	BookID string `json:"book_id"`
	Status string `json:"status"`
}

// GenerateBookEndpoint handles POST /api/books/generate.
type GenerateBookEndpoint struct{}

func (e *GenerateBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/books/generate", e.handler
}

func (e *GenerateBookEndpoint) RequiresInit() bool { return true }

func (e *GenerateBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := generateSchema.Validate(raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	ctx := r.Context()
	reg := svcctx.RegistryFrom(ctx)
	var gen providers.Generator
	if reg != nil {
		gen = reg.Generator()
	}
	if gen == nil {
		writeError(w, http.StatusServiceUnavailable,
			"no generator configured: set generator.api_key in config or the GOOGLE_API_KEY environment variable")
		return
	}

	pipeline := assemble.Options{
		Topic:             req.Topic,
		Audience:          req.Audience,
		Chapters:          req.Chapters,
		Outline:           req.Outline,
		Instructions:      req.Instructions,
		IncludeIntro:      true,
		IncludeConclusion: true,
		AuthorName:        req.AuthorName,
		AuthorBio:         req.AuthorBio,
		MinChapterWords:   assemble.DefaultMinChapterWords,
		MaxFloorAttempts:  assemble.DefaultMaxFloorAttempts,
		MaxChapters:       assemble.DefaultMaxChapters,
	}

	langStr := req.Language
	if cm := svcctx.ConfigManagerFrom(ctx); cm != nil {
		cfg := cm.Get()
		pipeline.MinChapterWords = cfg.Pipeline.MinChapterWords
		pipeline.MaxFloorAttempts = cfg.Pipeline.MaxFloorAttempts
		pipeline.MaxChapters = cfg.Pipeline.MaxChapters
		if langStr == "" {
			langStr = cfg.Pipeline.DefaultLanguage
		}
	}
	if req.IncludeIntro != nil {
		pipeline.IncludeIntro = *req.IncludeIntro
	}
	if req.IncludeConclusion != nil {
		pipeline.IncludeConclusion = *req.IncludeConclusion
	}
	if req.MinChapterWords != nil {
		pipeline.MinChapterWords = *req.MinChapterWords
	}

	lang, err := book.ParseLanguage(langStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pipeline.Language = lang

	if err := pipeline.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions := svcctx.SessionsFrom(ctx)
	logger := svcctx.LoggerFrom(ctx)

	id := uuid.New().String()
	sess := sessions.Start(id)

	asm := assemble.New(gen, reg.Limiter(), logger)
	asm.OnEvent = sess.Record

	// The run outlives the request; detach from its cancellation but
	// keep the service values.
	runCtx := context.WithoutCancel(ctx)
	go func() {
		b, err := asm.Run(runCtx, pipeline)
		if err != nil {
			sess.Fail(err)
			return
		}
		b.ID = id
		sess.Complete(b)
	}()

	writeJSON(w, http.StatusAccepted, GenerateResponse{BookID: id, Status: "running"})
}

func (e *GenerateBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req GenerateRequest
	var noIntro, noConclusion bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Start a book generation run on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if noIntro {
				f := false
				req.IncludeIntro = &f
			}
			if noConclusion {
				f := false
				req.IncludeConclusion = &f
			}
			client := api.NewClient(getServerURL())
			var resp GenerateResponse
			if err := client.Post(ctx, "/api/books/generate", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Topic, "topic", "", "Book topic (required)")
	cmd.Flags().StringVar(&req.Audience, "audience", "", "Target audience (required)")
	cmd.Flags().StringVar(&req.Language, "language", "", "Book language (default from server config)")
	cmd.Flags().IntVar(&req.Chapters, "chapters", 1, "Number of chapters")
	cmd.Flags().StringVar(&req.Outline, "outline", "", "Structure to follow")
	cmd.Flags().StringVar(&req.Instructions, "instructions", "", "Additional instructions")
	cmd.Flags().StringVar(&req.AuthorName, "author", "", "Author name for the title page")
	cmd.Flags().StringVar(&req.AuthorBio, "bio", "", "Author bio for the title page")
	cmd.Flags().BoolVar(&noIntro, "no-intro", false, "Skip the introduction section")
	cmd.Flags().BoolVar(&noConclusion, "no-conclusion", false, "Skip the conclusions section")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("audience")
	return cmd
}
