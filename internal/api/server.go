// Package api exposes the scheduling service over HTTP: project and task
// CRUD, schedule runs, baselines, earned value and analytics, as JSON.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trestle/internal/calendar"
	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/notify"
	"github.com/zulandar/trestle/internal/schedule"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB       *gorm.DB
	Port     int
	Out      io.Writer
	Calendar cpm.Calendar
	Slack    notify.Config
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("api: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8600
	}

	router := NewRouter(opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "trestle API listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// NewRouter builds the gin router with all routes registered.
func NewRouter(opts StartOpts) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	if opts.Calendar == nil {
		opts.Calendar = calendar.Default()
	}

	sched := schedule.NewService(opts.DB, opts.Calendar)
	registerRoutes(router, opts.DB, sched, opts.Calendar, opts.Slack)
	return router
}
