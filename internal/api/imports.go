package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/importer"
	"gorm.io/gorm"
)

// handleImport accepts a multipart upload ("file" field, optional "format"
// field) and creates a new project from it.
func handleImport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
			return
		}
		format := c.PostForm("format")
		if format == "" {
			format = importer.FormatForFile(fileHeader.Filename)
		}
		if format == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot determine format; pass a format field"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		staged, err := importer.Parse(format, data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		project, skipped, err := importer.Import(db, staged)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"project_id":            project.ID,
			"title":                 project.Title,
			"tasks":                 len(staged.Tasks),
			"skipped_relationships": skipped,
		})
	}
}
