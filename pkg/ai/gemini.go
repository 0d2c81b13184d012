package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/callcaps/callcaps-server/pkg/config"
)

// File states reported by the Gemini Files API.
const (
	FileStateProcessing = "PROCESSING"
	FileStateActive     = "ACTIVE"
	FileStateFailed     = "FAILED"
)

// GeminiClient is a minimal client for the Gemini generative-language API.
// Media upload uses the resumable upload protocol collapsed to a single shot;
// generation uses generateContent with file and/or text parts.
type GeminiClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GEMINI_BASE_URL")
		if base == "" {
			base = "https://generativelanguage.googleapis.com"
		}
	}

	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// FileInfo describes an uploaded media file on the provider side.
type FileInfo struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	State    string `json:"state"`
	Error    struct {
		Message string `json:"message"`
	} `json:"error"`
}

type fileEnvelope struct {
	File FileInfo `json:"file"`
}

// UploadFile pushes raw media bytes to the Files API and returns the created
// file record. The returned state is usually PROCESSING; callers poll GetFile
// until the file becomes ACTIVE.
func (g *GeminiClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (*FileInfo, error) {
	meta := map[string]interface{}{
		"file": map[string]string{"display_name": displayName},
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/upload/v1beta/files?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(metaBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", fmt.Sprintf("%d", len(data)))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gemini upload start returned status %d", resp.StatusCode)
	}

	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return nil, fmt.Errorf("gemini upload start returned no upload url")
	}

	upReq, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	upReq.Header.Set("Content-Type", mimeType)
	upReq.Header.Set("X-Goog-Upload-Command", "upload, finalize")
	upReq.Header.Set("X-Goog-Upload-Offset", "0")

	upResp, err := g.client.Do(upReq)
	if err != nil {
		return nil, err
	}
	defer upResp.Body.Close()

	if upResp.StatusCode >= 400 {
		return nil, fmt.Errorf("gemini upload returned status %d", upResp.StatusCode)
	}

	var env fileEnvelope
	if err := json.NewDecoder(upResp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if env.File.Name == "" {
		return nil, fmt.Errorf("gemini upload returned empty file name")
	}
	return &env.File, nil
}

// GetFile fetches the current state of an uploaded file by its resource name
// (e.g. "files/abc123").
func (g *GeminiClient) GetFile(ctx context.Context, name string) (*FileInfo, error) {
	endpoint := fmt.Sprintf("%s/v1beta/%s?key=%s", g.baseURL, name, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gemini get file returned status %d", resp.StatusCode)
	}

	var fi FileInfo
	if err := json.NewDecoder(resp.Body).Decode(&fi); err != nil {
		return nil, err
	}
	return &fi, nil
}

// Part is a single input part for generation: either a file reference or text.
type Part struct {
	FileURI  string
	MimeType string
	Text     string
}

type generatePart struct {
	Text     string `json:"text,omitempty"`
	FileData *struct {
		MimeType string `json:"mime_type"`
		FileURI  string `json:"file_uri"`
	} `json:"file_data,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []generatePart `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent runs a single-turn generation against the given model and
// returns the concatenated text of the first candidate.
func (g *GeminiClient) GenerateContent(ctx context.Context, model string, parts []Part) (string, error) {
	var req generateRequest
	req.Contents = make([]struct {
		Parts []generatePart `json:"parts"`
	}, 1)
	for _, p := range parts {
		gp := generatePart{Text: p.Text}
		if p.FileURI != "" {
			gp.FileData = &struct {
				MimeType string `json:"mime_type"`
				FileURI  string `json:"file_uri"`
			}{MimeType: p.MimeType, FileURI: p.FileURI}
		}
		req.Contents[0].Parts = append(req.Contents[0].Parts, gp)
	}

	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini generate returned status %d: %s", resp.StatusCode, string(body))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var out string
	for _, p := range gr.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out, nil
}
