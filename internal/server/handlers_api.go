package server

import (
	"errors"
	"net/http"
	"time"

	"human-bingo/internal/db"
	"human-bingo/internal/logger"
	"human-bingo/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

type joinRequest struct {
	GameID string `json:"game_id" binding:"required"`
	Name   string `json:"name" binding:"required,name"`
}

var joinMessages = bindMessages{
	"GameID": {"required": "game_id is required"},
	"Name": {
		"required": "name is required",
		"name":     "name is invalid",
	},
}

func (s *Server) handleHome(c *gin.Context) {
	templ.Handler(web.Home()).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleJoin(c *gin.Context) {
	var req joinRequest
	if !bindJSON(c, &req, joinMessages, "game_id and name are required") {
		return
	}
	code := normalizeGameCode(req.GameID)
	name, err := validateName(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := s.store.AddPlayer(c.Request.Context(), code, name)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		logger.Log.Warnf("join failed game_id=%s error=%v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not join game"})
		return
	}
	logger.Log.Infof("player joined game_id=%s player_id=%s name=%s", code, player.ID, name)
	c.JSON(http.StatusOK, gin.H{"player_id": player.ID})
}

func (s *Server) handleBoard(c *gin.Context) {
	code := normalizeGameCode(c.Param("game"))
	prompts, err := s.store.ListPrompts(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load board"})
		return
	}
	board := make([]gin.H, 0, len(prompts))
	for _, prompt := range prompts {
		board = append(board, gin.H{"id": prompt.ID, "text": prompt.Text})
	}
	c.JSON(http.StatusOK, board)
}

// handleLeaderboard serves the same ranking the broadcaster pushes, on
// demand and without touching any room.
func (s *Server) handleLeaderboard(c *gin.Context) {
	code := normalizeGameCode(c.Param("game"))
	if _, err := s.store.GetGame(c.Request.Context(), code); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load leaderboard"})
		return
	}
	entries, err := s.leaderboard(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
