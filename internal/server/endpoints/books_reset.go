package endpoints

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/internal/session"
	"github.com/hablemosbien/bookforge/internal/svcctx"
)

// ResetResponse confirms a session reset.
type ResetResponse struct {
	BookID string `json:"book_id"`
	Status string `json:"status"`
}

// ResetBookEndpoint handles POST /api/books/{book_id}/reset.
// Resetting discards the accumulated book so a fresh run can start
// without restarting the server.
type ResetBookEndpoint struct{}

func (e *ResetBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/books/{book_id}/reset", e.handler
}

func (e *ResetBookEndpoint) RequiresInit() bool { return true }

func (e *ResetBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("book_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book_id is required")
		return
	}

	sessions := svcctx.SessionsFrom(r.Context())
	if err := sessions.Reset(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ResetResponse{BookID: id, Status: string(session.StatusReset)})
}

func (e *ResetBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <book_id>",
		Short: "Discard a run's generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ResetResponse
			if err := client.Post(ctx, "/api/books/"+args[0]+"/reset", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
