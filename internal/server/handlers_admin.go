package server

import (
	"errors"
	"net/http"

	"human-bingo/internal/db"
	"human-bingo/internal/logger"
	"human-bingo/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const maxCodeAttempts = 5

func (s *Server) handleAdminHome(c *gin.Context) {
	templ.Handler(web.AdminHome()).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleAdminCreate(c *gin.Context) {
	name := validateGameName(c.PostForm("name"))
	prompts := parsePromptLines(c.PostForm("prompts"))
	if len(prompts) == 0 {
		c.String(http.StatusBadRequest, "at least one prompt is required")
		return
	}

	// short random codes can collide; regenerate and retry
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := newGameCode(s.cfg.GameCodeLength)
		game, err := s.store.CreateGame(c.Request.Context(), code, name, prompts)
		if errors.Is(err, db.ErrCodeTaken) {
			continue
		}
		if err != nil {
			logger.Log.Warnf("game create failed error=%v", err)
			c.String(http.StatusInternalServerError, "could not create game")
			return
		}
		logger.Log.Infof("game created game_id=%s prompts=%d", game.ID, len(prompts))
		c.Redirect(http.StatusFound, "/admin/"+game.ID)
		return
	}
	c.String(http.StatusInternalServerError, "could not allocate a game code")
}

func (s *Server) handleAdminView(c *gin.Context) {
	code := normalizeGameCode(c.Param("game"))
	game, err := s.store.GetGame(c.Request.Context(), code)
	if err != nil {
		logger.Log.Infof("admin view missing game_id=%s", code)
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	prompts, err := s.store.ListPrompts(c.Request.Context(), code)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load game")
		return
	}
	standings, err := s.leaderboard(c.Request.Context(), code)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load game")
		return
	}

	view := web.AdminGameView{
		GameID:   game.ID,
		GameName: game.Name,
	}
	for _, prompt := range prompts {
		view.Prompts = append(view.Prompts, web.AdminPrompt{ID: prompt.ID, Text: prompt.Text})
	}
	for _, entry := range standings {
		view.Standings = append(view.Standings, web.AdminStanding{Name: entry.Name, Score: entry.Score})
	}
	templ.Handler(web.AdminGame(view)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleAdminDelete(c *gin.Context) {
	code := normalizeGameCode(c.Param("game"))
	if err := s.store.DeleteGame(c.Request.Context(), code); err != nil && !errors.Is(err, db.ErrNotFound) {
		c.String(http.StatusInternalServerError, "could not delete game")
		return
	}
	logger.Log.Infof("game deleted game_id=%s", code)
	c.Redirect(http.StatusFound, "/admin")
}

// handleQR serves a QR code pointing at the join page with the game code
// prefilled.
func (s *Server) handleQR(c *gin.Context) {
	code := normalizeGameCode(c.Param("game"))
	if _, err := s.store.GetGame(c.Request.Context(), code); err != nil {
		c.String(http.StatusNotFound, "game not found")
		return
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	target := scheme + "://" + c.Request.Host + "/?game=" + code
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not render QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
