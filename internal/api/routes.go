package api

import (
	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/notify"
	"github.com/zulandar/trestle/internal/schedule"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, sched *schedule.Service, cal cpm.Calendar, slack notify.Config) {
	apiGroup := router.Group("/api")

	apiGroup.GET("/healthz", handleHealth())

	apiGroup.POST("/projects", handleCreateProject(db))
	apiGroup.GET("/projects", handleListProjects(db))
	apiGroup.GET("/projects/:id", handleGetProject(db))

	apiGroup.POST("/projects/:id/tasks", handleCreateTask(db))
	apiGroup.GET("/projects/:id/tasks", handleListTasks(db))
	apiGroup.PATCH("/tasks/:id", handleUpdateTask(db))
	apiGroup.DELETE("/tasks/:id", handleDeleteTask(db))

	apiGroup.POST("/projects/:id/relationships", handleCreateRelationship(db))
	apiGroup.GET("/projects/:id/relationships", handleListRelationships(db))
	apiGroup.DELETE("/relationships/:id", handleDeleteRelationship(db))

	apiGroup.POST("/projects/:id/schedule", handleRunSchedule(sched, slack))
	apiGroup.GET("/projects/:id/critical-path", handleCriticalPath(db))

	apiGroup.POST("/projects/:id/baselines", handleCreateBaseline(db))
	apiGroup.GET("/projects/:id/baselines", handleListBaselines(db))
	apiGroup.GET("/projects/:id/baselines/:baselineID/compare", handleCompareBaseline(db, cal))

	apiGroup.GET("/projects/:id/evm", handleProjectEVM(db))
	apiGroup.GET("/projects/:id/analytics", handleProjectAnalytics(db))

	apiGroup.POST("/import", handleImport(db))
}
