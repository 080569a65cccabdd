package server

import (
	"context"

	"human-bingo/internal/db"
	"human-bingo/internal/logger"
)

type leaderboardMessage struct {
	Type        string                `json:"type"`
	GameID      string                `json:"game_id"`
	Leaderboard []db.LeaderboardEntry `json:"leaderboard"`
}

func (s *Server) leaderboard(ctx context.Context, gameID string) ([]db.LeaderboardEntry, error) {
	return s.store.TopPlayers(ctx, gameID, s.cfg.LeaderboardLimit)
}

// broadcastLeaderboard computes a fresh ranking and pushes it to every
// connection in the game's room. A failed read here is logged and dropped:
// the committed mark will be reflected in the broadcast that follows the next
// successful one.
func (s *Server) broadcastLeaderboard(gameID string) {
	entries, err := s.leaderboard(context.Background(), gameID)
	if err != nil {
		logger.Log.Warnf("leaderboard read failed game_id=%s error=%v", gameID, err)
		return
	}
	s.metrics.Broadcasts.Inc()
	s.hub.Broadcast(gameID, leaderboardMessage{
		Type:        "leaderboard",
		GameID:      gameID,
		Leaderboard: entries,
	})
}
