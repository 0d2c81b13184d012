package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/callcaps/callcaps-server/pkg/config"
)

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(&config.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
}

func TestUploadFile(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/upload/v1beta/files", func(w http.ResponseWriter, r *http.Request) {
		if cmd := r.Header.Get("X-Goog-Upload-Command"); cmd == "start" {
			w.Header().Set("X-Goog-Upload-URL", srv.URL+"/upload-session")
			w.WriteHeader(http.StatusOK)
			return
		}
		t.Errorf("unexpected upload command %q", r.Header.Get("X-Goog-Upload-Command"))
	})
	mux.HandleFunc("/upload-session", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"file": map[string]string{
				"name":     "files/abc123",
				"uri":      "https://example.com/files/abc123",
				"mimeType": "audio/mpeg",
				"state":    FileStateProcessing,
			},
		})
	})

	client := newTestClient(srv.URL)
	fi, err := client.UploadFile(context.Background(), []byte("fake-audio"), "audio/mpeg", "rec.mp3")
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if fi.Name != "files/abc123" {
		t.Errorf("expected file name files/abc123, got %q", fi.Name)
	}
	if fi.State != FileStateProcessing {
		t.Errorf("expected state PROCESSING, got %q", fi.State)
	}
}

func TestGetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/files/abc123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name":  "files/abc123",
			"uri":   "https://example.com/files/abc123",
			"state": FileStateActive,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	fi, err := client.GetFile(context.Background(), "files/abc123")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if fi.State != FileStateActive {
		t.Errorf("expected ACTIVE, got %q", fi.State)
	}
}

func TestGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "hello "}, {"text": "world"}},
				}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	out, err := client.GenerateContent(context.Background(), "gemini-2.5-flash", []Part{
		{FileURI: "https://example.com/files/abc123", MimeType: "audio/mpeg"},
		{Text: "Transcribe this."},
	})
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if out != "hello world" {
		t.Errorf("expected concatenated candidate text, got %q", out)
	}
}

func TestGenerateContentErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GenerateContent(context.Background(), "gemini-2.5-flash", []Part{{Text: "hi"}})
	if err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GenerateContent(context.Background(), "gemini-2.5-flash", []Part{{Text: "hi"}})
	if err == nil {
		t.Fatal("expected error on empty candidates")
	}
}
