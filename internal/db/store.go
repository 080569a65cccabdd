package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound means a referenced game, player or prompt does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCodeTaken means a freshly generated game code collided; the caller
	// should retry with a new code.
	ErrCodeTaken = errors.New("game code taken")
	// ErrStorage wraps any storage fault other than the above. The failed
	// operation left no partial state and is safe to retry as-is.
	ErrStorage = errors.New("storage failure")
)

// Store is the single shared mutable resource of the engine. Every method is
// one atomic unit with a bounded timeout; concurrent callers never observe a
// mark without its score update or a score mid-update.
type Store struct {
	conn    *gorm.DB
	timeout time.Duration
}

func NewStore(conn *gorm.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{conn: conn, timeout: timeout}
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.timeout)
}

// CreateGame inserts a game with its prompt roster. Prompt identifiers are
// issued here.
func (s *Store) CreateGame(ctx context.Context, id, name string, prompts []string) (*Game, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	game := &Game{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(game).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrCodeTaken
			}
			return err
		}
		for position, text := range prompts {
			prompt := Prompt{
				ID:        uuid.NewString(),
				GameID:    id,
				Position:  position,
				Text:      text,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&prompt).Error; err != nil {
				return err
			}
			game.Prompts = append(game.Prompts, prompt)
		}
		return recordEvent(tx, id, nil, "game_created", map[string]any{
			"name":    name,
			"prompts": len(prompts),
		})
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return game, nil
}

func (s *Store) GetGame(ctx context.Context, id string) (*Game, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var game Game
	if err := s.conn.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &game, nil
}

// DeleteGame removes a game and everything it owns in one transaction.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game Game
		if err := tx.First(&game, "id = ?", id).Error; err != nil {
			return err
		}
		players := tx.Model(&Player{}).Select("id").Where("game_id = ?", id)
		if err := tx.Where("player_id IN (?)", players).Delete(&Mark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&Player{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&Prompt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&Event{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&game).Error; err != nil {
			return err
		}
		// recorded after the purge so the tombstone outlives the game
		return recordEvent(tx, id, nil, "game_deleted", map[string]any{
			"name": game.Name,
		})
	})
	return storageErr(err)
}

// AddPlayer issues a new player identifier for a game.
func (s *Store) AddPlayer(ctx context.Context, gameID, name string) (*Player, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	player := &Player{
		ID:        uuid.NewString(),
		GameID:    gameID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game Game
		if err := tx.First(&game, "id = ?", gameID).Error; err != nil {
			return err
		}
		if err := tx.Create(player).Error; err != nil {
			return err
		}
		return recordEvent(tx, gameID, &player.ID, "player_joined", map[string]any{
			"name": name,
		})
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return player, nil
}

func (s *Store) ListPrompts(ctx context.Context, gameID string) ([]Prompt, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var game Game
	if err := s.conn.WithContext(ctx).First(&game, "id = ?", gameID).Error; err != nil {
		return nil, storageErr(err)
	}
	var prompts []Prompt
	if err := s.conn.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("position ASC").
		Find(&prompts).Error; err != nil {
		return nil, storageErr(err)
	}
	return prompts, nil
}

// MarkPrompt commits a mark event: upsert the (player, prompt) mark, then
// materialize the player's score as a fresh count of their marks. Repeat
// events for the same pair never duplicate the mark; a non-empty partner
// annotation overwrites the stored one, an empty one leaves it untouched.
func (s *Store) MarkPrompt(ctx context.Context, playerID, promptID, partner string) (score int, gameID string, err error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	partner = strings.TrimSpace(partner)
	err = s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player Player
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			return err
		}
		var prompt Prompt
		if err := tx.First(&prompt, "id = ?", promptID).Error; err != nil {
			return err
		}
		if prompt.GameID != player.GameID {
			// a prompt from another game does not exist as far as this
			// player is concerned
			return gorm.ErrRecordNotFound
		}

		now := time.Now().UTC()
		mark := Mark{
			PlayerID:  playerID,
			PromptID:  promptID,
			Partner:   partner,
			CreatedAt: now,
			UpdatedAt: now,
		}
		onConflict := clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "prompt_id"}},
			DoNothing: true,
		}
		if partner != "" {
			onConflict.DoNothing = false
			onConflict.DoUpdates = clause.Assignments(map[string]any{
				"partner":    partner,
				"updated_at": now,
			})
		}
		if err := tx.Clauses(onConflict).Create(&mark).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Mark{}).Where("player_id = ?", playerID).Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Model(&Player{}).Where("id = ?", playerID).
			Updates(map[string]any{"score": count, "updated_at": now}).Error; err != nil {
			return err
		}
		score = int(count)
		gameID = player.GameID
		return recordEvent(tx, player.GameID, &player.ID, "prompt_marked", map[string]any{
			"prompt_id": promptID,
			"score":     score,
		})
	})
	if err != nil {
		return 0, "", storageErr(err)
	}
	return score, gameID, nil
}

// RecomputeScore re-counts a player's marks and stores the result. MarkPrompt
// already does this inside its transaction; this is the standalone repair op.
func (s *Store) RecomputeScore(ctx context.Context, playerID string) (int, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var score int64
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player Player
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			return err
		}
		if err := tx.Model(&Mark{}).Where("player_id = ?", playerID).Count(&score).Error; err != nil {
			return err
		}
		return tx.Model(&Player{}).Where("id = ?", playerID).
			Updates(map[string]any{"score": score, "updated_at": time.Now().UTC()}).Error
	})
	if err != nil {
		return 0, storageErr(err)
	}
	return int(score), nil
}

// TopPlayers returns the ranked leaderboard for a game: score descending, ties
// broken by name ascending, truncated to limit. Pure read.
func (s *Store) TopPlayers(ctx context.Context, gameID string, limit int) ([]LeaderboardEntry, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	entries := make([]LeaderboardEntry, 0, limit)
	err := s.conn.WithContext(ctx).Model(&Player{}).
		Select("id", "name", "score").
		Where("game_id = ?", gameID).
		Order("score DESC, name ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}

func recordEvent(tx *gorm.DB, gameID string, playerID *string, eventType string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := Event{
		GameID:    gameID,
		PlayerID:  playerID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
		CreatedAt: time.Now().UTC(),
	}
	return tx.Create(&event).Error
}

func storageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCodeTaken):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite surfaces constraint errors without a typed code
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
