package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

var validRelationTypes = map[string]bool{"FS": true, "SS": true, "FF": true, "SF": true}

type createRelationshipRequest struct {
	PredecessorID uint    `json:"predecessor_id" binding:"required"`
	SuccessorID   uint    `json:"successor_id" binding:"required"`
	Type          string  `json:"type"`
	LagHours      float64 `json:"lag_hours"`
}

func handleCreateRelationship(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req createRelationshipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PredecessorID == req.SuccessorID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a task cannot depend on itself"})
			return
		}
		relType := req.Type
		if relType == "" {
			relType = "FS"
		}
		if !validRelationTypes[relType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of FS, SS, FF, SF"})
			return
		}
		// Both endpoints must belong to this project; cycles are caught at
		// schedule time, where the whole graph is visible.
		var count int64
		if err := db.Model(&models.Task{}).
			Where("project_id = ? AND id IN ?", projectID, []uint{req.PredecessorID, req.SuccessorID}).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "both tasks must exist in this project"})
			return
		}
		rel := models.TaskRelationship{
			ProjectID:     projectID,
			PredecessorID: req.PredecessorID,
			SuccessorID:   req.SuccessorID,
			Type:          relType,
			LagHours:      req.LagHours,
		}
		if err := db.Create(&rel).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rel)
	}
}

func handleListRelationships(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var rels []models.TaskRelationship
		if err := db.Where("project_id = ?", projectID).Order("id ASC").Find(&rels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rels)
	}
}

func handleDeleteRelationship(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		result := db.Delete(&models.TaskRelationship{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "relationship not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
