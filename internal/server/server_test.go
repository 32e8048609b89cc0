package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hablemosbien/bookforge/internal/config"
	"github.com/hablemosbien/bookforge/internal/server/endpoints"
	"github.com/hablemosbien/bookforge/internal/session"
)

// newTestServer builds a server backed by the mock generator and
// returns it with an httptest wrapper around its handler.
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	// The default config references this variable for the API key.
	t.Setenv("GOOGLE_API_KEY", "")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgYAML := `generator:
  type: mock
pipeline:
  min_chapter_words: 0
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cm, err := config.NewManager(cfgPath)
	if err != nil {
		t.Fatalf("config.NewManager() error = %v", err)
	}

	srv, err := New(Config{ConfigManager: cm})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s error = %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// waitForStatus polls the book endpoint until the wanted status appears.
func waitForStatus(t *testing.T, baseURL, bookID, want string) endpoints.BookResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var last endpoints.BookResponse
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/api/books/" + bookID)
		if err != nil {
			t.Fatalf("GET book error = %v", err)
		}
		decodeJSON(t, resp, &last)
		if last.Status == want {
			return last
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("book %s never reached status %q (last: %q, error: %q)", bookID, want, last.Status, last.Error)
	return last
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health endpoints.HealthResponse
	decodeJSON(t, resp, &health)
	if health.Status != "ok" {
		t.Errorf("Status = %q, want ok", health.Status)
	}
	if health.Generator != "mock" {
		t.Errorf("Generator = %q, want mock", health.Generator)
	}
}

func TestServer_GenerateFlow(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/books/generate", `{
		"topic": "ancient rome",
		"audience": "students",
		"language": "english",
		"chapters": 2
	}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("generate status = %d, want 202", resp.StatusCode)
	}

	var gen endpoints.GenerateResponse
	decodeJSON(t, resp, &gen)
	if gen.BookID == "" {
		t.Fatal("BookID is empty")
	}
	if gen.Status != string(session.StatusRunning) {
		t.Errorf("Status = %q, want running", gen.Status)
	}

	book := waitForStatus(t, ts.URL, gen.BookID, string(session.StatusComplete))

	// intro + 2 chapters + conclusions
	if len(book.Sections) != 4 {
		t.Fatalf("len(Sections) = %d, want 4", len(book.Sections))
	}
	if book.Sections[0].Kind != "intro" {
		t.Errorf("Sections[0].Kind = %q, want intro", book.Sections[0].Kind)
	}
	if book.Sections[1].Number != 1 || book.Sections[2].Number != 2 {
		t.Errorf("chapter numbers = %d, %d, want 1, 2", book.Sections[1].Number, book.Sections[2].Number)
	}
	if book.Sections[3].Kind != "conclusion" {
		t.Errorf("Sections[3].Kind = %q, want conclusion", book.Sections[3].Kind)
	}
	if book.Title != "Ancient Rome" {
		t.Errorf("Title = %q, want Ancient Rome", book.Title)
	}
	if len(book.Events) == 0 {
		t.Error("expected progress events")
	}
}

func TestServer_Download(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/books/generate", `{
		"topic": "gardening",
		"audience": "beginners",
		"chapters": 1,
		"include_intro": false,
		"include_conclusion": false
	}`)
	var gen endpoints.GenerateResponse
	decodeJSON(t, resp, &gen)
	waitForStatus(t, ts.URL, gen.BookID, string(session.StatusComplete))

	dl, err := http.Get(ts.URL + "/api/books/" + gen.BookID + "/download")
	if err != nil {
		t.Fatalf("GET download error = %v", err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d, want 200", dl.StatusCode)
	}
	if ct := dl.Header.Get("Content-Type"); !strings.Contains(ct, "wordprocessingml") {
		t.Errorf("Content-Type = %q, want docx media type", ct)
	}
	if cd := dl.Header.Get("Content-Disposition"); !strings.Contains(cd, ".docx") {
		t.Errorf("Content-Disposition = %q, want .docx filename", cd)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(dl.Body); err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("download is not a zip archive")
	}
}

func TestServer_DownloadBeforeComplete(t *testing.T) {
	srv, ts := newTestServer(t)

	// A session that never completes
	srv.Sessions().Start("pending-run")

	dl, err := http.Get(ts.URL + "/api/books/pending-run/download")
	if err != nil {
		t.Fatalf("GET download error = %v", err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusConflict {
		t.Errorf("download status = %d, want 409", dl.StatusCode)
	}
}

func TestServer_Reset(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/books/generate", `{
		"topic": "chess",
		"audience": "kids",
		"chapters": 1
	}`)
	var gen endpoints.GenerateResponse
	decodeJSON(t, resp, &gen)
	waitForStatus(t, ts.URL, gen.BookID, string(session.StatusComplete))

	rr := postJSON(t, ts.URL+"/api/books/"+gen.BookID+"/reset", "")
	if rr.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rr.StatusCode)
	}
	var reset endpoints.ResetResponse
	decodeJSON(t, rr, &reset)
	if reset.Status != string(session.StatusReset) {
		t.Errorf("reset Status = %q, want reset", reset.Status)
	}

	// Download after reset must refuse
	dl, err := http.Get(ts.URL + "/api/books/" + gen.BookID + "/download")
	if err != nil {
		t.Fatalf("GET download error = %v", err)
	}
	dl.Body.Close()
	if dl.StatusCode != http.StatusConflict {
		t.Errorf("download after reset status = %d, want 409", dl.StatusCode)
	}
}

func TestServer_GenerateValidation(t *testing.T) {
	_, ts := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing topic", `{"audience": "students", "chapters": 1}`},
		{"missing chapters", `{"topic": "rome", "audience": "students"}`},
		{"zero chapters", `{"topic": "rome", "audience": "students", "chapters": 0}`},
		{"unknown field", `{"topic": "rome", "audience": "students", "chapters": 1, "bogus": true}`},
		{"bad language", `{"topic": "rome", "audience": "students", "chapters": 1, "language": "klingon"}`},
		{"not json", `topic=rome`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/books/generate", tc.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestServer_GetUnknownBook(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/books/no-such-id")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_Settings(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/settings")
	if err != nil {
		t.Fatalf("GET /api/settings error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var settings endpoints.SettingsResponse
	decodeJSON(t, resp, &settings)
	if settings.Generator.Type != "mock" {
		t.Errorf("Generator.Type = %q, want mock", settings.Generator.Type)
	}
	if settings.Generator.APIKeySet {
		t.Error("APIKeySet = true, want false")
	}
	if settings.Pipeline.MinChapterWords != 0 {
		t.Errorf("MinChapterWords = %d, want 0", settings.Pipeline.MinChapterWords)
	}
}
