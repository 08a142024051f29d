package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gyst/internal/engine"
)

// writeError maps engine errors to HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidName),
		errors.Is(err, engine.ErrInvalidFrequency),
		errors.Is(err, engine.ErrInvalidToken):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrTransient):
		status = http.StatusServiceUnavailable
	}
	if status >= 500 {
		s.log.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleListTasks(c *gin.Context) {
	views, err := s.svc.ListTasks(c.Request.Context(), userFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]taskJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toTaskViewJSON(v))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.svc.CreateTask(c.Request.Context(), userFrom(c), engine.CreateTaskInput{
		Name:      req.Name,
		Frequency: req.Frequency,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"task":           toTaskJSON(res.Task),
		"streak_revoked": res.StreakRevoked,
	})
}

func (s *Server) handleGetTask(c *gin.Context) {
	v, err := s.svc.GetTask(c.Request.Context(), userFrom(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskViewJSON(*v))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.svc.UpdateTask(c.Request.Context(), userFrom(c), c.Param("id"), engine.UpdateTaskInput{
		Name:      req.Name,
		Frequency: req.Frequency,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskJSON(*t))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), userFrom(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleToggle(c *gin.Context) {
	res, err := s.svc.ToggleComplete(c.Request.Context(), userFrom(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toToggleJSON(res))
}

// handleUndo answers 200 with action "noop" when there is nothing to undo.
func (s *Server) handleUndo(c *gin.Context) {
	res, err := s.svc.UndoComplete(c.Request.Context(), userFrom(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toToggleJSON(res))
}

// handleStats applies any decay since the last action before answering.
func (s *Server) handleStats(c *gin.Context) {
	st, err := s.svc.RefreshStats(c.Request.Context(), userFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatsJSON(*st))
}

func (s *Server) handleHistory(c *gin.Context) {
	recs, err := s.svc.History(c.Request.Context(), userFrom(c), c.Query("task"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]completionJSON, 0, len(recs))
	for _, r := range recs {
		out = append(out, completionJSON{TaskID: r.ParentID, DaysCompleted: r.DaysCompleted, CompletedAt: r.CompletedAt, XPAwarded: r.XPAwarded})
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

func (s *Server) handleBadges(c *gin.Context) {
	badges, err := s.svc.Badges(c.Request.Context(), userFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]badgeJSON, 0, len(badges))
	for _, b := range badges {
		out = append(out, badgeJSON{ID: b.ID, Name: b.Name, Description: b.Description, Icon: b.Icon, Earned: b.Earned})
	}
	c.JSON(http.StatusOK, gin.H{"badges": out})
}

func (s *Server) handleGetSettings(c *gin.Context) {
	st, err := s.svc.GetSettings(c.Request.Context(), userFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsJSON{Notifications: st.Notifications})
}

func (s *Server) handlePutSettings(c *gin.Context) {
	var req settingsJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := s.svc.UpdateSettings(c.Request.Context(), userFrom(c), req.Notifications)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsJSON{Notifications: st.Notifications})
}

func (s *Server) handleRegisterToken(c *gin.Context) {
	var req tokenRequest
	// body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := s.svc.RegisterToken(c.Request.Context(), userFrom(c), c.Param("token"), req.Platform); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUnregisterToken(c *gin.Context) {
	if err := s.svc.UnregisterToken(c.Request.Context(), userFrom(c), c.Param("token")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	if err := s.svc.DeleteAccount(c.Request.Context(), userFrom(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
