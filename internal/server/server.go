package server

import (
	"net/http"
	"time"

	"human-bingo/internal/config"
	"human-bingo/internal/db"
	"human-bingo/internal/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Server struct {
	store   *db.Store
	cfg     config.Config
	hub     *wsHub
	metrics *monitor.Metrics
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	metrics := monitor.NewMetrics(cfg.MetricsNamespace)
	return &Server{
		store:   db.NewStore(conn, time.Duration(cfg.StorageTimeoutSeconds)*time.Second),
		cfg:     cfg,
		hub:     newWSHub(metrics),
		metrics: metrics,
	}
}

func (s *Server) Handler() http.Handler {
	registerValidators()
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleHome)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/join", s.handleJoin)
	router.GET("/board/:game", s.handleBoard)
	router.GET("/api/games/:game/leaderboard", s.handleLeaderboard)
	router.GET("/qr/:game", s.handleQR)
	router.GET("/ws", s.handleWebsocket)

	router.GET("/admin", s.handleAdminHome)
	router.POST("/admin/create", s.handleAdminCreate)
	router.GET("/admin/:game", s.handleAdminView)
	router.POST("/admin/:game/delete", s.handleAdminDelete)

	router.Static("/static", "static")
	return router
}
