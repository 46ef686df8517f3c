// Package toolserver exposes the three document tools over HTTP:
// list_directory, read_document_chunk, and save_summary_to_db, plus health
// and tool-schema endpoints.
package toolserver

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"analyzer-backend/internal/extract"
	"analyzer-backend/internal/shared/server/respond"
	"analyzer-backend/internal/summaries"
)

const defaultChunkSize = 2000

// listedExtensions are the document formats the listing exposes.
var listedExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
	".pdf": {},
}

// Handler wires the tool endpoints to the summaries store and the filesystem.
type Handler struct {
	Repo summaries.Repo
	// DB is the summaries database, used only by the health check; nil means
	// the server runs on the in-memory store.
	DB *sql.DB
	// Root, when set, confines list and read operations to paths under it.
	Root string
}

// NewHandler constructs a Handler.
func NewHandler(repo summaries.Repo, database *sql.DB, root string) *Handler {
	return &Handler{Repo: repo, DB: database, Root: root}
}

// RegisterRoutes attaches the tool endpoints to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/mcp/tools", h.toolSchemas)
	r.POST("/list_directory", h.listDirectory)
	r.POST("/read_document_chunk", h.readDocumentChunk)
	r.POST("/save_summary_to_db", h.saveSummary)
}

func (h *Handler) health(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"service":  "directory-analyzer tool server",
		"database": "memory",
	}
	if h.DB != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.DB.PingContext(pingCtx); err != nil {
			status["status"] = "unhealthy"
			status["database"] = fmt.Sprintf("error: %v", err)
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "connected"
	}
	respond.OK(c, status)
}

type listDirectoryRequest struct {
	Path string `json:"path" binding:"required"`
}

type directoryEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

func (h *Handler) listDirectory(c *gin.Context) {
	var req listDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "path is required", nil)
		return
	}

	dir, ok := h.resolvePath(req.Path)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "Directory not found", nil)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			respond.Error(c, http.StatusNotFound, "not_found", "Directory not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list directory", nil)
		return
	}

	files := make([]directoryEntry, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, listed := listedExtensions[ext]; !listed {
			continue
		}
		files = append(files, directoryEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(dir, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	respond.OK(c, gin.H{
		"path":  dir,
		"files": files,
	})
}

type readChunkRequest struct {
	Path      string `json:"path" binding:"required"`
	Offset    int    `json:"offset"`
	ChunkSize int    `json:"chunk_size"`
}

func (h *Handler) readDocumentChunk(c *gin.Context) {
	var req readChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "path is required", nil)
		return
	}
	if req.ChunkSize <= 0 {
		req.ChunkSize = defaultChunkSize
	}

	path, ok := h.resolvePath(req.Path)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", fmt.Sprintf("File not found: %s", req.Path), nil)
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		respond.Error(c, http.StatusNotFound, "not_found", fmt.Sprintf("File not found: %s", req.Path), nil)
		return
	}

	text, err := extract.TextFromFile(path)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", fmt.Sprintf("Error reading file: %v", err), nil)
		return
	}

	// Window in runes so a chunk boundary never splits a UTF-8 sequence.
	runes := []rune(text)
	total := len(runes)
	start := req.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + req.ChunkSize
	if end > total {
		end = total
	}
	chunk := string(runes[start:end])
	eof := end >= total

	resp := gin.H{
		"path":         path,
		"filename":     filepath.Base(path),
		"offset":       start,
		"next_offset":  nil,
		"chunk_size":   end - start,
		"total_length": total,
		"progress":     progressLabel(end, total),
		"eof":          eof,
		"content":      chunk,
	}
	if !eof {
		resp["next_offset"] = end
	}
	respond.OK(c, resp)
}

func (h *Handler) saveSummary(c *gin.Context) {
	var record summaries.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid summary payload", nil)
		return
	}
	c.Set("documentId", record.DocumentID)

	if violations := summaries.Validate(record); len(violations) > 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "schema_violation", "summary record violates schema", violations)
		return
	}

	if err := h.Repo.Upsert(c.Request.Context(), record); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save summary", nil)
		return
	}

	respond.OK(c, gin.H{
		"document_id": record.DocumentID,
		"filename":    record.Filename,
		"status":      record.Status,
		"saved":       true,
	})
}

// resolvePath cleans the requested path and, when a root is configured,
// rejects anything that escapes it.
func (h *Handler) resolvePath(raw string) (string, bool) {
	path := filepath.Clean(strings.TrimSpace(raw))
	if path == "" || path == "." {
		return "", false
	}
	if h.Root == "" {
		return path, true
	}
	root := filepath.Clean(h.Root)
	if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
		return path, true
	}
	return "", false
}

func progressLabel(end, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(end)/float64(total)*100)
}
