package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/analytics"
	"github.com/zulandar/trestle/internal/evm"
	"gorm.io/gorm"
)

func handleProjectEVM(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		metrics, err := evm.ProjectMetrics(db, projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, metrics)
	}
}

func handleProjectAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		summary, err := analytics.ProjectSummary(db, projectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
