package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gyst/internal/engine"
)

// UserHeader carries the authenticated user id. Authentication itself happens
// in front of the API.
const UserHeader = "X-User-Id"

// Server is the gyst JSON API.
type Server struct {
	svc    *engine.Service
	log    *slog.Logger
	router *gin.Engine
}

func New(svc *engine.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	router := gin.New()
	s := &Server{svc: svc, log: log, router: router}

	router.Use(s.recoverPanics(), s.requestLog())
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := router.Group("/api", requireUser())
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/toggle", s.handleToggle)
		api.POST("/tasks/:id/undo", s.handleUndo)

		api.GET("/stats", s.handleStats)
		api.GET("/history", s.handleHistory)
		api.GET("/badges", s.handleBadges)

		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings", s.handlePutSettings)
		api.POST("/tokens/:token", s.handleRegisterToken)
		api.DELETE("/tokens/:token", s.handleUnregisterToken)

		api.DELETE("/account", s.handleDeleteAccount)
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("api listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
