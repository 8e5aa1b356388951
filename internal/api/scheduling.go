package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/models"
	"github.com/zulandar/trestle/internal/notify"
	"github.com/zulandar/trestle/internal/schedule"
	"gorm.io/gorm"
)

type runScheduleRequest struct {
	DataDate *time.Time `json:"data_date"`
}

func handleRunSchedule(sched *schedule.Service, slack notify.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req runScheduleRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		dataDate := time.Time{}
		if req.DataDate != nil {
			dataDate = *req.DataDate
		}

		summary, err := sched.Run(projectID, dataDate)
		switch {
		case errors.Is(err, cpm.ErrCycleDetected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "the schedule contains a circular dependency"})
			return
		case errors.Is(err, cpm.ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		notify.ScheduleCompleted(slack, summary)
		c.JSON(http.StatusOK, summary)
	}
}

func handleCriticalPath(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var tasks []models.Task
		err := db.Where("project_id = ? AND early_start IS NOT NULL", projectID).
			Order("early_start ASC, id ASC").Find(&tasks).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		critical := make([]models.Task, 0)
		for _, t := range tasks {
			if t.TotalFloat < cpm.CriticalEpsilon {
				critical = append(critical, t)
			}
		}
		c.JSON(http.StatusOK, critical)
	}
}
