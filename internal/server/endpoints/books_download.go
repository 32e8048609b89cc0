package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/internal/docx"
	"github.com/hablemosbien/bookforge/internal/session"
	"github.com/hablemosbien/bookforge/internal/svcctx"
)

// DownloadBookEndpoint handles GET /api/books/{book_id}/download.
// It builds the .docx artifact on demand from the session's book.
type DownloadBookEndpoint struct{}

func (e *DownloadBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/books/{book_id}/download", e.handler
}

func (e *DownloadBookEndpoint) RequiresInit() bool { return true }

func (e *DownloadBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	status, b, _, _ := sess.Snapshot()
	if status != session.StatusComplete || b == nil {
		writeError(w, http.StatusConflict, fmt.Sprintf("book is not ready for download (status: %s)", status))
		return
	}

	buf, err := docx.NewBuilder(b).BuildToBuffer()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build document: %v", err))
		return
	}

	filename := docx.Filename(b.Title)
	w.Header().Set("Content-Type", docx.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (e *DownloadBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <book_id>",
		Short: "Download the generated .docx for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			data, err := client.GetRaw(ctx, "/api/books/"+args[0]+"/download")
			if err != nil {
				return err
			}
			path := outPath
			if path == "" {
				path = args[0] + ".docx"
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "f", "", "Output file path (default: <book_id>.docx)")
	return cmd
}
