package toolserver

import (
	"github.com/gin-gonic/gin"

	"analyzer-backend/internal/shared/server/respond"
)

// toolSchemas advertises the tool contracts so an agent can discover inputs
// without out-of-band documentation.
func (h *Handler) toolSchemas(c *gin.Context) {
	respond.OK(c, gin.H{
		"tools": []gin.H{
			{
				"name":        "list_directory",
				"description": "List documents in a directory",
				"input_schema": gin.H{
					"type": "object",
					"properties": gin.H{
						"path": gin.H{"type": "string"},
					},
					"required": []string{"path"},
				},
			},
			{
				"name":        "read_document_chunk",
				"description": "Read a document in chunks",
				"input_schema": gin.H{
					"type": "object",
					"properties": gin.H{
						"path":       gin.H{"type": "string"},
						"offset":     gin.H{"type": "integer", "default": 0},
						"chunk_size": gin.H{"type": "integer", "default": defaultChunkSize},
					},
					"required": []string{"path"},
				},
			},
			{
				"name":        "save_summary_to_db",
				"description": "Save document summary to database",
				"input_schema": gin.H{
					"type": "object",
					"properties": gin.H{
						"document_id":       gin.H{"type": "string"},
						"filename":          gin.H{"type": "string"},
						"status":            gin.H{"type": "string", "enum": []string{"completed", "failed"}},
						"executive_summary": gin.H{"type": "string"},
						"domain":            gin.H{"type": "string"},
						"key_arguments":     gin.H{"type": "array", "items": gin.H{"type": "string"}},
						"key_models_or_frameworks": gin.H{
							"type": "array",
							"items": gin.H{
								"type": "object",
								"properties": gin.H{
									"name":        gin.H{"type": "string"},
									"description": gin.H{"type": "string"},
								},
							},
						},
						"key_variables_or_concepts": gin.H{
							"type": "array",
							"items": gin.H{
								"type": "object",
								"properties": gin.H{
									"term":        gin.H{"type": "string"},
									"explanation": gin.H{"type": "string"},
								},
							},
						},
						"failure_reason": gin.H{"type": "string"},
					},
					"required": []string{"document_id", "filename", "status", "executive_summary"},
				},
			},
		},
	})
}
