package endpoints

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/internal/assemble"
	"github.com/hablemosbien/bookforge/internal/book"
	"github.com/hablemosbien/bookforge/internal/session"
	"github.com/hablemosbien/bookforge/internal/svcctx"
)

// SectionSummary describes one generated section.
type SectionSummary struct {
	Kind        string `json:"kind"`
	Number      int    `json:"number,omitempty"`
	WordCount   int    `json:"word_count"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// BookResponse describes a generation run and its output so far.
type BookResponse struct {
	BookID     string           `json:"book_id"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	Title      string           `json:"title,omitempty"`
	Language   string           `json:"language,omitempty"`
	TotalWords int              `json:"total_words,omitempty"`
	Sections   []SectionSummary `json:"sections,omitempty"`
	Events     []assemble.Event `json:"events,omitempty"`
}

// GetBookEndpoint handles GET /api/books/{book_id}.
type GetBookEndpoint struct{}

func (e *GetBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/books/{book_id}", e.handler
}

func (e *GetBookEndpoint) RequiresInit() bool { return true }

func (e *GetBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("book_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book_id is required")
		return
	}

	sessions := svcctx.SessionsFrom(r.Context())
	sess, err := sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status, b, events, errMsg := sess.Snapshot()
	resp := BookResponse{
		BookID: id,
		Status: string(status),
		Error:  errMsg,
		Events: events,
	}
	if b != nil {
		resp.Title = book.FormatTitle(b.Title, b.Language)
		resp.Language = string(b.Language)
		resp.TotalWords = b.TotalWords()
		for _, s := range b.Sections {
			resp.Sections = append(resp.Sections, SectionSummary{
				Kind:        string(s.Kind),
				Number:      s.Number,
				WordCount:   s.WordCount(),
				Placeholder: s.Placeholder,
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *GetBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <book_id>",
		Short: "Get a generation run by book ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp BookResponse
			if err := client.Get(ctx, "/api/books/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
