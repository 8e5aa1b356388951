package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/baseline"
	"github.com/zulandar/trestle/internal/cpm"
	"gorm.io/gorm"
)

type createBaselineRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func handleCreateBaseline(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req createBaselineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bl, err := baseline.Create(db, projectID, req.Name, req.Description)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, bl)
	}
}

func handleListBaselines(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		baselines, err := baseline.List(db, projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, baselines)
	}
}

func handleCompareBaseline(db *gorm.DB, cal cpm.Calendar) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		baselineID, ok := uintParam(c, "baselineID")
		if !ok {
			return
		}
		variances, err := baseline.Compare(db, cal, projectID, baselineID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "baseline not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, variances)
	}
}
