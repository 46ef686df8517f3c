package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"analyzer-backend/internal/shared/server/respond"
	"analyzer-backend/internal/summaries"
)

// Client calls the tool server's JSON endpoints over HTTP. It implements all
// three collaborator interfaces.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a tool client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("TOOL_SERVER_URL is required")
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("TOOL_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type listDirectoryRequest struct {
	Path string `json:"path"`
}

type listDirectoryResponse struct {
	Path  string           `json:"path"`
	Files []DirectoryEntry `json:"files"`
}

type readChunkRequest struct {
	Path      string `json:"path"`
	Offset    int    `json:"offset"`
	ChunkSize int    `json:"chunk_size"`
}

type saveSummaryResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	Saved      bool   `json:"saved"`
}

// ListDirectory invokes the list_directory tool.
func (c *Client) ListDirectory(ctx context.Context, path string) ([]DirectoryEntry, error) {
	var resp listDirectoryResponse
	if err := c.post(ctx, "/list_directory", listDirectoryRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// ReadChunk invokes the read_document_chunk tool.
func (c *Client) ReadChunk(ctx context.Context, path string, offset, chunkSize int) (Chunk, error) {
	var chunk Chunk
	if err := c.post(ctx, "/read_document_chunk", readChunkRequest{Path: path, Offset: offset, ChunkSize: chunkSize}, &chunk); err != nil {
		return Chunk{}, err
	}
	return chunk, nil
}

// SaveSummary invokes the save_summary_to_db tool.
func (c *Client) SaveSummary(ctx context.Context, record summaries.Record) error {
	var resp saveSummaryResponse
	if err := c.post(ctx, "/save_summary_to_db", record, &resp); err != nil {
		return err
	}
	if !resp.Saved {
		return fmt.Errorf("save_summary_to_db: server did not acknowledge save for %s", record.DocumentID)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tool %s: marshal request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("tool %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tool %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("tool %s: read response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope respond.ErrorResponse
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
			return fmt.Errorf("tool %s: %s (%s)", path, envelope.Error.Message, envelope.Error.Code)
		}
		return fmt.Errorf("tool %s: unexpected status %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("tool %s: decode response: %w", path, err)
	}
	return nil
}

var (
	_ DirectoryLister = (*Client)(nil)
	_ ChunkReader     = (*Client)(nil)
	_ SummarySaver    = (*Client)(nil)
)
