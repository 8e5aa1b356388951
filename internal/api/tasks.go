package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

type createTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	WBSCode        string     `json:"wbs_code"`
	Type           string     `json:"type"`
	DurationHours  float64    `json:"duration_hours"`
	ConstraintType string     `json:"constraint_type"`
	ConstraintDate *time.Time `json:"constraint_date"`
	Responsible    string     `json:"responsible"`
}

func handleCreateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req createTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.DurationHours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration_hours must be >= 0"})
			return
		}
		var project models.Project
		if err := db.First(&project, projectID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		taskType := req.Type
		if taskType == "" {
			if req.DurationHours == 0 {
				taskType = models.TypeMilestone
			} else {
				taskType = models.TypeTask
			}
		}
		task := models.Task{
			ProjectID:      projectID,
			Title:          req.Title,
			Description:    req.Description,
			WBSCode:        req.WBSCode,
			Type:           taskType,
			Status:         models.StatusNotStarted,
			DurationHours:  req.DurationHours,
			ConstraintType: req.ConstraintType,
			ConstraintDate: req.ConstraintDate,
			Responsible:    req.Responsible,
		}
		if err := db.Create(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, task)
	}
}

func handleListTasks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var tasks []models.Task
		if err := db.Where("project_id = ?", projectID).Order("id ASC").Find(&tasks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

type updateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	DurationHours  *float64   `json:"duration_hours"`
	ConstraintType *string    `json:"constraint_type"`
	ConstraintDate *time.Time `json:"constraint_date"`
	ActualStart    *time.Time `json:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end"`
	EarnedValue    *float64   `json:"earned_value"`
	ActualCost     *float64   `json:"actual_cost"`
}

func handleUpdateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req updateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.DurationHours != nil && *req.DurationHours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration_hours must be >= 0"})
			return
		}

		var task models.Task
		if err := db.First(&task, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.DurationHours != nil {
			updates["duration_hours"] = *req.DurationHours
		}
		if req.ConstraintType != nil {
			updates["constraint_type"] = *req.ConstraintType
		}
		if req.ConstraintDate != nil {
			updates["constraint_date"] = req.ConstraintDate
		}
		if req.ActualStart != nil {
			updates["actual_start"] = req.ActualStart
		}
		if req.ActualEnd != nil {
			updates["actual_end"] = req.ActualEnd
		}
		if req.EarnedValue != nil {
			updates["earned_value"] = *req.EarnedValue
		}
		if req.ActualCost != nil {
			updates["actual_cost"] = *req.ActualCost
		}
		if len(updates) > 0 {
			if err := db.Model(&task).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, task)
	}
}

func handleDeleteTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			// Edges referencing a deleted task would dangle forever; remove them too.
			if err := tx.Where("predecessor_id = ? OR successor_id = ?", id, id).
				Delete(&models.TaskRelationship{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Task{}, id).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
