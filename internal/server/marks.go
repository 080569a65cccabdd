package server

import (
	"context"
	"errors"

	"human-bingo/internal/db"
	"human-bingo/internal/logger"
)

// handleMarkEvent resolves a raw "player marked prompt" event: validate,
// commit through the store's atomic upsert, then fan the refreshed
// leaderboard out to the game's room. The store transaction is the only
// serialization point; no lock is held across commit and broadcast.
func (s *Server) handleMarkEvent(client *wsClient, msg wsMessage) {
	s.metrics.MarksReceived.Inc()
	if msg.PlayerID == "" || msg.PromptID == "" {
		s.hub.Send(client, errorMessage("player_id and prompt_id are required"))
		return
	}
	partner, err := validatePartner(msg.Partner)
	if err != nil {
		s.hub.Send(client, errorMessage(err.Error()))
		return
	}

	score, gameID, err := s.store.MarkPrompt(context.Background(), msg.PlayerID, msg.PromptID, partner)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.hub.Send(client, errorMessage("player or prompt not found"))
			return
		}
		logger.Log.Warnf("mark failed player_id=%s prompt_id=%s error=%v", msg.PlayerID, msg.PromptID, err)
		s.hub.Send(client, errorMessage("could not record mark, try again"))
		return
	}

	logger.Log.Infof("mark committed game_id=%s player_id=%s prompt_id=%s score=%d",
		gameID, msg.PlayerID, msg.PromptID, score)
	s.broadcastLeaderboard(gameID)
}
