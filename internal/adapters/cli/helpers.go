package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/eventgames/snakeladders-go/internal/adapters/persistence"
	"github.com/eventgames/snakeladders-go/internal/application/session"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/infrastructure/config"
	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// openRepository loads config, opens the database and wires the state
// repository. The storage probe runs once here: a missing backend degrades
// to an unpersisted game with a single warning.
func openRepository() (*config.Config, *gorm.DB, *persistence.GormStateRepository, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	configureLogging(&cfg.Logging)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open game storage: %w", err)
	}
	if verbose {
		log.Printf("using %s storage", cfg.Database.Type)
	}

	repo := persistence.NewGormStateRepository(db)
	if !repo.Available(context.Background()) {
		log.Println("warning: storage unavailable, this game will not survive a restart")
	}
	return cfg, db, repo, nil
}

// configureLogging points the standard logger at the configured stream.
func configureLogging(cfg *config.LoggingConfig) {
	if cfg.Output == "stderr" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(os.Stdout)
	}
}

// restoreSession boots the store from persistence, clearing a corrupted
// record so the player lands on a fresh setup instead of a crash loop.
func restoreSession(repo *persistence.GormStateRepository) (*session.Service, error) {
	svc, err := session.Restore(context.Background(), repo, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("saved game could not be read and was discarded: %w", err)
	}
	return svc, nil
}

// resolvePlayer matches an id or a (case-insensitive) display name.
func resolvePlayer(state *game.State, idOrName string) (*game.Player, error) {
	for _, p := range state.Players {
		if p.ID == idOrName || strings.EqualFold(p.Name, idOrName) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no player named %q in this game", idOrName)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
