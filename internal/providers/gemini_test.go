package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiTestServer(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(GeneratorConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.baseURL = srv.URL
	return client, srv
}

func TestGeminiGenerate_Success(t *testing.T) {
	var gotBody geminiRequest
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("expected api key in query, got %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "generated text"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	got, err := client.Generate(context.Background(), "write a chapter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "generated text" {
		t.Fatalf("expected %q, got %q", "generated text", got)
	}

	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Role != "user" {
		t.Fatalf("unexpected contents: %+v", gotBody.Contents)
	}
	if gotBody.Contents[0].Parts[0].Text != "write a chapter" {
		t.Fatalf("prompt not forwarded: %+v", gotBody.Contents[0].Parts)
	}

	gc := gotBody.GenerationConfig
	if gc.Temperature != 1 || gc.TopK != 40 || gc.TopP != 0.95 || gc.MaxOutputTokens != 8192 {
		t.Fatalf("unexpected sampling defaults: %+v", gc)
	}
	if gc.ResponseMimeType != "text/plain" {
		t.Fatalf("expected text/plain mime type, got %q", gc.ResponseMimeType)
	}
}

func TestGeminiGenerate_HTTPError(t *testing.T) {
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestGeminiGenerate_MalformedResponse(t *testing.T) {
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGeminiGenerate_SingleAttempt(t *testing.T) {
	calls := 0
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(GeneratorConfig{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
